package apiclient

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// TokenStore holds the bearer token of one session
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// UnauthorizedFunc runs after a 401 has cleared the token
type UnauthorizedFunc func(ctx context.Context)

// bearerTransport attaches "Authorization: Bearer <token>" when a token is stored
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenStore
	logger *zap.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Token(req.Context())
	if err != nil {
		t.logger.Warn("Reading auth token failed", zap.Error(err))
	}
	if token == "" {
		return t.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(clone)
}

// unauthorizedTransport is the one place that reacts to 401: it clears the
// stored token and calls the hook, whatever call triggered it. The response
// still reaches the caller unchanged.
type unauthorizedTransport struct {
	next   http.RoundTripper
	tokens TokenStore
	hook   UnauthorizedFunc
	logger *zap.Logger
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	ctx := req.Context()
	t.logger.Info("Remote API rejected credentials, clearing token", zap.String("path", req.URL.Path))
	if clearErr := t.tokens.ClearToken(ctx); clearErr != nil {
		t.logger.Error("Clearing auth token failed", zap.Error(clearErr))
	}
	if t.hook != nil {
		t.hook(ctx)
	}
	return resp, nil
}

// chain builds the transport stack: bearer on the way out, 401 policy on the way back
func chain(base http.RoundTripper, tokens TokenStore, hook UnauthorizedFunc, logger *zap.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTransport{
		next: &unauthorizedTransport{
			next:   base,
			tokens: tokens,
			hook:   hook,
			logger: logger,
		},
		tokens: tokens,
		logger: logger,
	}
}

// noTokens is used until a session binds its own store
type noTokens struct{}

func (noTokens) Token(context.Context) (string, error)  { return "", nil }
func (noTokens) SetToken(context.Context, string) error { return nil }
func (noTokens) ClearToken(context.Context) error       { return nil }
