package client

import "context"

// AuthService handles login and token refresh.
type AuthService struct {
	c *Client
}

// Login exchanges credentials for a token pair and stores the access token
// on the client for subsequent requests.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	body := map[string]string{"email": email, "password": password}

	var pair TokenPair
	if err := s.c.post(ctx, "/api/v1/auth/login", body, &pair); err != nil {
		return nil, err
	}

	s.c.SetToken(pair.AccessToken)
	return &pair, nil
}

// Refresh exchanges a refresh token for a fresh pair and stores the new
// access token on the client.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var pair TokenPair
	if err := s.c.post(ctx, "/api/v1/auth/refresh", body, &pair); err != nil {
		return nil, err
	}

	s.c.SetToken(pair.AccessToken)
	return &pair, nil
}
