package handlers

import (
	"context"
	"net/http"

	"nutrirec-web/models"
	"nutrirec-web/session"

	"go.uber.org/zap"
)

// ServiceName is reported by the health endpoint
const ServiceName = "nutrirec-web"

// AdminPage is the data of GET /admin
type AdminPage struct {
	Stats *models.SystemStats `json:"stats,omitempty"`
}

// Admin handles GET /admin; the guard turns away non-admins
func (h *Handler) Admin(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var page AdminPage
	stats, err := entry.Controller.API().Recommendations.SystemStats(ctx)
	if err != nil {
		h.log(ctx, "error", "Failed to load system stats", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memuat data")
	} else {
		page.Stats = stats
	}
	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Sessions  int    `json:"sessions"`
	API       string `json:"api"`
	APIDetail string `json:"api_error,omitempty"`
}

// Health handles GET /health. It reports the remote API's state but
// always answers 200 while this process is serving.
func (h *Handler) Health(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Service:  ServiceName,
		Sessions: h.sessions.Len(),
		API:      "healthy",
	}
	status, err := h.api.Health(ctx)
	switch {
	case err != nil:
		h.log(ctx, "error", "API health check failed", zap.Error(err))
		resp.API = "unreachable"
		resp.APIDetail = err.Error()
	case status.Status != "":
		resp.API = status.Status
	}
	writeJSON(w, http.StatusOK, resp)
}
