package client

import (
	"context"
	"net/url"
)

// PhaseService handles credentialing phases nested under a provider.
type PhaseService struct {
	c *Client
}

// List returns all phases for a provider, ordered by sequence.
func (s *PhaseService) List(ctx context.Context, providerID string) ([]CredentialingPhase, error) {
	var resp struct {
		Phases []CredentialingPhase `json:"phases"`
	}
	if err := s.c.get(ctx, phasePath(providerID, ""), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Phases, nil
}

// Create adds a phase to a provider's pipeline.
func (s *PhaseService) Create(ctx context.Context, providerID string, req *CreatePhaseRequest) (*CredentialingPhase, error) {
	var phase CredentialingPhase
	if err := s.c.post(ctx, phasePath(providerID, ""), req, &phase); err != nil {
		return nil, err
	}
	return &phase, nil
}

// Update updates a provider's phase.
func (s *PhaseService) Update(ctx context.Context, providerID, phaseID string, req *UpdatePhaseRequest) (*CredentialingPhase, error) {
	var phase CredentialingPhase
	if err := s.c.put(ctx, phasePath(providerID, phaseID), req, &phase); err != nil {
		return nil, err
	}
	return &phase, nil
}

// Delete removes a provider's phase.
func (s *PhaseService) Delete(ctx context.Context, providerID, phaseID string) error {
	return s.c.del(ctx, phasePath(providerID, phaseID))
}

func phasePath(providerID, phaseID string) string {
	p := "/api/v1/providers/" + url.PathEscape(providerID) + "/phases"
	if phaseID != "" {
		p += "/" + url.PathEscape(phaseID)
	}
	return p
}
