package handlers

import (
	"context"
	"errors"
	"net/http"

	"nutrirec-web/apiclient"
	"nutrirec-web/diet"
	"nutrirec-web/models"
	"nutrirec-web/session"

	"go.uber.org/zap"
)

const (
	recommendationLimit = 12
	historyPerPage      = 10
)

var errUnsuccessful = errors.New("API reported unsuccessful recommendations")

// RecommendationsPage is the data of GET /recommendations
type RecommendationsPage struct {
	MethodInfo      *models.MethodInfo              `json:"method_info,omitempty"`
	UserStats       *models.UserRecommendationStats `json:"user_stats,omitempty"`
	Readiness       *models.CollaborativeReadiness  `json:"collaborative_readiness,omitempty"`
	Generated       bool                            `json:"generated"`
	MethodUsed      models.RecommendationMethod     `json:"method_used,omitempty"`
	Condition       string                          `json:"condition,omitempty"`
	Recommendations []diet.Card                     `json:"recommendations"`
}

// Recommendations handles GET /recommendations. With ?generate=1 it also
// asks the API for fresh recommendations, which needs a complete profile.
// ?method= forces one engine and ?condition= asks for foods suited to a
// medical condition code; without either the API picks the engine.
func (h *Handler) Recommendations(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	method := models.RecommendationMethod(query.Get("method"))
	if method != "" && !method.Valid() {
		h.badRequest(ctx, w, "Invalid recommendation method", nil)
		return
	}
	condition := query.Get("condition")

	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	api := entry.Controller.API()

	generate := query.Get("generate") == "1"
	if generate && !entry.Controller.HasCompletedProfile() {
		notify(entry, session.LevelError, "Lengkapi profil Anda terlebih dahulu")
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}

	page := RecommendationsPage{Condition: condition, Recommendations: []diet.Card{}}

	if info, err := api.Recommendations.MethodInfo(ctx); err != nil {
		h.log(ctx, "error", "Failed to load method info", zap.Error(err))
	} else {
		page.MethodInfo = info
	}
	if stats, err := api.Recommendations.UserStats(ctx); err != nil {
		h.log(ctx, "error", "Failed to load user stats", zap.Error(err))
	} else {
		page.UserStats = stats
	}
	if readiness, err := api.Recommendations.ValidateCollaborative(ctx); err != nil {
		h.log(ctx, "error", "Failed to load collaborative readiness", zap.Error(err))
	} else {
		page.Readiness = readiness
	}

	if generate {
		used, foods, err := fetchRecommendations(ctx, api, method, condition)
		if err != nil {
			h.log(ctx, "error", "Failed to get recommendations",
				zap.String("method", string(method)), zap.String("condition", condition), zap.Error(err))
			notify(entry, session.LevelError, "Gagal mendapatkan rekomendasi")
		} else {
			page.Generated = true
			page.MethodUsed = used
			page.Recommendations = diet.NewCards(foods)
			notify(entry, session.LevelSuccess, "Rekomendasi berhasil dibuat!")
			h.log(ctx, "info", "Recommendations generated",
				zap.Int("count", len(page.Recommendations)),
				zap.String("method", string(used)))
		}
	}

	h.render(ctx, w, r, entry, http.StatusOK, page)
}

func fetchRecommendations(ctx context.Context, api *apiclient.Client, method models.RecommendationMethod, condition string) (models.RecommendationMethod, []models.Food, error) {
	params := models.RecommendationParams{Limit: recommendationLimit}

	var (
		list *models.RecommendationList
		err  error
	)
	switch {
	case condition != "":
		list, err = api.Recommendations.ForCondition(ctx, condition, recommendationLimit)
	case method == models.MethodContentBased:
		list, err = api.Recommendations.ContentBased(ctx, params)
	case method == models.MethodCollaborative:
		list, err = api.Recommendations.Collaborative(ctx, params)
	case method == models.MethodHybrid:
		list, err = api.Recommendations.Hybrid(ctx, params)
	default:
		resp, err := api.Recommendations.Smart(ctx, params)
		if err != nil {
			return "", nil, err
		}
		if !resp.Success {
			return "", nil, errUnsuccessful
		}
		return resp.Data.MethodUsed, resp.Data.Recommendations, nil
	}
	if err != nil {
		return "", nil, err
	}

	used := method
	if list.RecommendationType != "" {
		used = models.RecommendationMethod(list.RecommendationType)
	}
	return used, list.Recommendations, nil
}

// HistoryPage is the data of GET /recommendations/history
type HistoryPage struct {
	Items      []models.RecommendationHistoryItem `json:"items"`
	Pagination models.Pagination                  `json:"pagination"`
	Type       string                             `json:"type,omitempty"`
}

// RecommendationHistory handles GET /recommendations/history?page=&per_page=&type=
func (h *Handler) RecommendationHistory(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	query := r.URL.Query()
	params := models.HistoryParams{
		Page:    positiveInt(query.Get("page"), 1),
		PerPage: positiveInt(query.Get("per_page"), historyPerPage),
		Type:    query.Get("type"),
	}
	if params.PerPage > maxFoodsPerPage {
		params.PerPage = maxFoodsPerPage
	}

	page := HistoryPage{Items: []models.RecommendationHistoryItem{}, Type: params.Type}
	history, err := entry.Controller.API().Recommendations.History(ctx, params)
	if err != nil {
		h.log(ctx, "error", "Failed to load recommendation history", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memuat data")
	} else {
		if history.Data.History != nil {
			page.Items = history.Data.History
		}
		page.Pagination = history.Data.Pagination
	}

	h.render(ctx, w, r, entry, http.StatusOK, page)
}
