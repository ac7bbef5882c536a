package handlers

import (
	"context"
	"net/http"

	"nutrirec-web/models"
	"nutrirec-web/session"

	"go.uber.org/zap"
)

// AuthPage is the data of the login and register pages
type AuthPage struct {
	Redirect string `json:"redirect"`
}

// LoginPage handles GET /login
func (h *Handler) LoginPage(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	h.render(ctx, w, r, entry, http.StatusOK, AuthPage{
		Redirect: session.LoginRedirectTarget(r.URL.Query().Get("redirect")),
	})
}

// Login handles POST /login and returns to the page named by ?redirect
func (h *Handler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}
	target := session.LoginRedirectTarget(r.URL.Query().Get("redirect"))

	if !entry.Controller.Login(ctx, req) {
		h.log(ctx, "info", "Login rejected", zap.String("email", req.Email))
		h.render(ctx, w, r, entry, http.StatusUnauthorized, AuthPage{Redirect: target})
		return
	}

	h.log(ctx, "info", "Login successful", zap.Int("user_id", userID(entry)))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RegisterPage handles GET /register
func (h *Handler) RegisterPage(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	h.render(ctx, w, r, entry, http.StatusOK, AuthPage{Redirect: session.HomePath})
}

// Register handles POST /register. The body may carry confirmPassword; it is
// checked and dropped before the API sees the request.
func (h *Handler) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var form models.RegisterForm
	if err := decodeBody(r, &form); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}
	if !form.DietGoal.Valid() {
		h.badRequest(ctx, w, "Invalid diet goal", nil)
		return
	}

	if !entry.Controller.Register(ctx, form) {
		h.log(ctx, "info", "Registration rejected", zap.String("email", form.Email))
		h.render(ctx, w, r, entry, http.StatusUnprocessableEntity, AuthPage{Redirect: session.HomePath})
		return
	}

	h.log(ctx, "info", "Registration successful", zap.Int("user_id", userID(entry)))
	http.Redirect(w, r, session.HomePath, http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *Handler) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	entry.Controller.Logout(ctx)
	h.log(ctx, "info", "Logged out")

	if !h.followNavigation(ctx, w, r, entry) {
		http.Redirect(w, r, session.HomePath, http.StatusSeeOther)
	}
}

// userID is the id of the session's user for logging, 0 once a concurrent
// request of the same session has logged out
func userID(entry *session.Entry) int {
	if u := entry.Controller.User(); u != nil {
		return u.ID
	}
	return 0
}
