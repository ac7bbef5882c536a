package handlers

import (
	"context"
	"net/http"
	"time"

	"nutrirec-web/apiclient"
	"nutrirec-web/session"

	"go.uber.org/zap"
)

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Handler serves the browser routes. Every request is bound to one
// session controller through the session cookie.
type Handler struct {
	sessions *session.Registry
	api      *apiclient.Client
	cookie   CookieConfig
	now      func() time.Time
	log      func(ctx context.Context, level string, message string, fields ...zap.Field)
}

// NewHandler creates the page handler. api is the unbound root client, used
// for calls that belong to no session such as health checks.
func NewHandler(sessions *session.Registry, api *apiclient.Client, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = "session_id"
	}
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = 7 * 24 * time.Hour
	}
	return &Handler{
		sessions: sessions,
		api:      api,
		cookie:   cookie,
		now:      time.Now,
		log:      logRequest,
	}
}

// SessionID returns the session id carried by r, if it is well formed
func (h *Handler) SessionID(r *http.Request) (string, bool) {
	return sessionIDFromCookie(r, h.cookie.Name)
}
