package client

import (
	"context"
	"net/url"
)

// LicenseService handles state licenses nested under a provider.
type LicenseService struct {
	c *Client
}

// List returns all licenses for a provider, ordered by state.
func (s *LicenseService) List(ctx context.Context, providerID string) ([]StateLicense, error) {
	var resp struct {
		Licenses []StateLicense `json:"licenses"`
	}
	if err := s.c.get(ctx, licensePath(providerID, ""), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Licenses, nil
}

// Create adds a license to a provider.
func (s *LicenseService) Create(ctx context.Context, providerID string, req *CreateLicenseRequest) (*StateLicense, error) {
	var license StateLicense
	if err := s.c.post(ctx, licensePath(providerID, ""), req, &license); err != nil {
		return nil, err
	}
	return &license, nil
}

// Update updates a provider's license.
func (s *LicenseService) Update(ctx context.Context, providerID, licenseID string, req *UpdateLicenseRequest) (*StateLicense, error) {
	var license StateLicense
	if err := s.c.put(ctx, licensePath(providerID, licenseID), req, &license); err != nil {
		return nil, err
	}
	return &license, nil
}

// Delete removes a provider's license.
func (s *LicenseService) Delete(ctx context.Context, providerID, licenseID string) error {
	return s.c.del(ctx, licensePath(providerID, licenseID))
}

func licensePath(providerID, licenseID string) string {
	p := "/api/v1/providers/" + url.PathEscape(providerID) + "/licenses"
	if licenseID != "" {
		p += "/" + url.PathEscape(licenseID)
	}
	return p
}
