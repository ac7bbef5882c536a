package apiclient

import (
	"context"
	"fmt"

	"nutrirec-web/models"

	"go.uber.org/zap"
)

// AuthService covers /auth and owns writes to the token store
type AuthService struct {
	c *Client
}

// Login exchanges credentials for a token and stores it
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := s.c.Post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	if err := s.store(ctx, out.Token); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and stores the returned token
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := s.c.Post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	if err := s.store(ctx, out.Token); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) store(ctx context.Context, token string) error {
	if token == "" {
		s.c.logger.Warn("Auth reply carried no token")
		return nil
	}
	if err := s.c.tokens.SetToken(ctx, token); err != nil {
		return fmt.Errorf("storing auth token: %w", err)
	}
	return nil
}

// Profile fetches the user the stored token belongs to
func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	var out models.ProfileResponse
	if err := s.c.Get(ctx, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout forgets the stored token; the API keeps no server-side session
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.c.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clearing auth token: %w", err)
	}
	return nil
}

// HasToken reports whether a token is stored. It does not check validity.
func (s *AuthService) HasToken(ctx context.Context) bool {
	token, err := s.c.tokens.Token(ctx)
	if err != nil {
		s.c.logger.Warn("Reading auth token failed", zap.Error(err))
		return false
	}
	return token != ""
}
