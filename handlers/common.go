package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"nutrirec-web/models"
	"nutrirec-web/session"

	"github.com/google/uuid"
	"github.com/umakantv/go-utils/errs"
	"github.com/umakantv/go-utils/httpserver"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

// logRequest logs with the route details the httpserver put on ctx.
// The session id is carried as the auth client.
func logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	routeName := httpserver.GetRouteName(ctx)
	method := httpserver.GetRouteMethod(ctx)
	path := httpserver.GetRoutePath(ctx)
	auth := httpserver.GetRequestAuth(ctx)

	logMsg := time.Now().Format("2006-01-02 15:04:05") + " - " + routeName + " - " + method + " - " + path
	if auth != nil && auth.Client != "" {
		logMsg += " - session:" + auth.Client
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", method),
		zap.String("path", path),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

func sessionIDFromCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// session resolves the caller's session, issuing a new cookie when the
// request has none, and waits for the session to finish initializing.
func (h *Handler) session(ctx context.Context, w http.ResponseWriter, r *http.Request) *session.Entry {
	id, ok := h.SessionID(r)
	if !ok {
		id = uuid.New().String()
		h.log(ctx, "debug", "Issuing session cookie", zap.String("session_id", id))
	}
	// refresh the expiry on every visit
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cookie.MaxAge / time.Second),
	})

	entry := h.sessions.Get(id)
	entry.Controller.Initialize(ctx)
	return entry
}

// guard applies route protection for the request path. It returns false
// when the response has already been written.
func (h *Handler) guard(ctx context.Context, w http.ResponseWriter, r *http.Request, entry *session.Entry) bool {
	d := entry.Controller.Enforce(r.URL.Path)
	switch d.Action {
	case session.ActionRender:
		return true
	case session.ActionRedirect:
		h.log(ctx, "info", "Redirecting", zap.String("to", d.Location))
		http.Redirect(w, r, d.Location, redirectStatus(r))
	default:
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusServiceUnavailable, errs.NewInternalServerError("Session is still loading"))
	}
	return false
}

// followNavigation performs a navigation the controller asked for while
// handling the request, such as going to /login after a 401.
func (h *Handler) followNavigation(ctx context.Context, w http.ResponseWriter, r *http.Request, entry *session.Entry) bool {
	location, ok := entry.Outbox.TakeNavigation(r.URL.Path)
	if !ok {
		return false
	}
	h.log(ctx, "info", "Following session navigation", zap.String("to", location))
	http.Redirect(w, r, location, redirectStatus(r))
	return true
}

func redirectStatus(r *http.Request) int {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return http.StatusFound
	}
	return http.StatusSeeOther
}

// Page is the JSON model of every browser route
type Page struct {
	Path            string                 `json:"path"`
	User            *models.User           `json:"user"`
	Authenticated   bool                   `json:"authenticated"`
	IsAdmin         bool                   `json:"is_admin"`
	ProfileComplete bool                   `json:"profile_complete"`
	DisplayName     string                 `json:"display_name"`
	Notifications   []session.Notification `json:"notifications"`
	Data            any                    `json:"data,omitempty"`
}

// render drains the session's notifications into a page model and writes it.
// A navigation requested while loading the data wins over the page.
func (h *Handler) render(ctx context.Context, w http.ResponseWriter, r *http.Request, entry *session.Entry, status int, data any) {
	if h.followNavigation(ctx, w, r, entry) {
		return
	}
	ctl := entry.Controller
	writeJSON(w, status, Page{
		Path:            r.URL.Path,
		User:            ctl.User(),
		Authenticated:   ctl.IsAuthenticated(),
		IsAdmin:         ctl.IsAdmin(),
		ProfileComplete: ctl.HasCompletedProfile(),
		DisplayName:     ctl.DisplayName(),
		Notifications:   entry.Outbox.Notifications(),
		Data:            data,
	})
}

// notify queues a notification for the next page of the session
func notify(entry *session.Entry, level session.Level, message string) {
	entry.Outbox.Notify(session.Notification{Level: level, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *Handler) badRequest(ctx context.Context, w http.ResponseWriter, message string, err error) {
	h.log(ctx, "error", message, zap.Error(err))
	writeJSON(w, http.StatusBadRequest, errs.NewValidationError(message))
}
