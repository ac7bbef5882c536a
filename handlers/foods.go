package handlers

import (
	"context"
	"net/http"
	"strconv"

	"nutrirec-web/apiclient"
	"nutrirec-web/diet"
	"nutrirec-web/models"
	"nutrirec-web/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	featuredFoods   = 6
	foodsPerPage    = 12
	maxFoodsPerPage = 100
	similarFoods    = 5
)

// HomePage is the data of GET /
type HomePage struct {
	Featured   []diet.Card           `json:"featured"`
	Categories []models.FoodCategory `json:"categories"`
	MethodInfo *models.MethodInfo    `json:"method_info,omitempty"`
}

// Home handles GET /
func (h *Handler) Home(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	api := entry.Controller.API()

	page := HomePage{Featured: []diet.Card{}, Categories: []models.FoodCategory{}}
	foods, err := api.Foods.List(ctx, models.FoodSearchParams{PerPage: featuredFoods})
	if err == nil {
		var categories []models.FoodCategory
		categories, err = api.Foods.Categories(ctx)
		if err == nil {
			page.Featured = diet.NewCards(foods.Foods)
			page.Categories = categories
		}
	}
	if err != nil {
		h.log(ctx, "error", "Failed to load home data", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memuat data")
	}

	if entry.Controller.IsAuthenticated() {
		if info, err := api.Recommendations.MethodInfo(ctx); err != nil {
			h.log(ctx, "error", "Failed to load method info", zap.Error(err))
		} else {
			page.MethodInfo = info
		}
	}

	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// FoodsPage is the data of GET /foods. Pagination comes from the API as is.
type FoodsPage struct {
	Foods       []diet.Card           `json:"foods"`
	Categories  []models.FoodCategory `json:"categories"`
	Total       int                   `json:"total"`
	Pages       int                   `json:"pages"`
	CurrentPage int                   `json:"current_page"`
	PerPage     int                   `json:"per_page"`
	Search      string                `json:"search,omitempty"`
	CategoryID  int                   `json:"category_id,omitempty"`
}

// Foods handles GET /foods?page=&per_page=&search=&category_id=
func (h *Handler) Foods(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	api := entry.Controller.API()

	query := r.URL.Query()
	params := models.FoodSearchParams{
		Page:       positiveInt(query.Get("page"), 1),
		PerPage:    positiveInt(query.Get("per_page"), foodsPerPage),
		CategoryID: positiveInt(query.Get("category_id"), 0),
		Search:     query.Get("search"),
	}
	if params.PerPage > maxFoodsPerPage {
		params.PerPage = maxFoodsPerPage
	}

	page := FoodsPage{
		Foods:       []diet.Card{},
		Categories:  []models.FoodCategory{},
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
		Search:      params.Search,
		CategoryID:  params.CategoryID,
	}

	if categories, err := api.Foods.Categories(ctx); err != nil {
		h.log(ctx, "error", "Failed to load categories", zap.Error(err))
	} else {
		page.Categories = categories
	}

	foods, err := api.Foods.List(ctx, params)
	if err != nil {
		h.log(ctx, "error", "Failed to load foods", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memuat data makanan")
	} else {
		page.Foods = diet.NewCards(foods.Foods)
		page.Total = foods.Total
		page.Pages = foods.Pages
		page.CurrentPage = foods.CurrentPage
		page.PerPage = foods.PerPage
	}

	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// FoodDetailPage is the data of GET /foods/{food_id}
type FoodDetailPage struct {
	Food        *diet.Card     `json:"food"`
	Suitability diet.Partition `json:"suitability"`
	Similar     []diet.Card    `json:"similar"`
	CanRate     bool           `json:"can_rate"`
	UserRated   *float64       `json:"user_rating,omitempty"`
	UserLiked   *bool          `json:"user_liked,omitempty"`
}

// FoodDetail handles GET /foods/{food_id}. A signed-in visit carrying
// ?history_id= came from a recommendation and is reported as a click.
func (h *Handler) FoodDetail(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	foodID, ok := h.foodID(ctx, w, r)
	if !ok {
		return
	}
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	api := entry.Controller.API()

	page := FoodDetailPage{
		Similar: []diet.Card{},
		CanRate: entry.Controller.IsAuthenticated(),
	}

	food, err := api.Foods.Get(ctx, foodID)
	if err != nil {
		h.log(ctx, "error", "Failed to load food", zap.Int("food_id", foodID), zap.Error(err))
		notify(entry, session.LevelError, "Gagal memuat detail makanan")
		status := http.StatusOK
		if apiclient.IsNotFound(err) {
			status = http.StatusNotFound
		}
		h.render(ctx, w, r, entry, status, page)
		return
	}

	card := diet.NewCard(*food)
	page.Food = &card
	page.Suitability = diet.EvaluateFood(*food)
	page.UserRated = food.UserRating
	page.UserLiked = food.UserLiked

	if historyID := positiveInt(r.URL.Query().Get("history_id"), 0); historyID > 0 && page.CanRate {
		if _, err := api.Recommendations.TrackClick(ctx, historyID); err != nil {
			h.log(ctx, "error", "Failed to track recommendation click", zap.Int("history_id", historyID), zap.Error(err))
		}
	}

	if similar, err := api.Recommendations.SimilarFoods(ctx, foodID, similarFoods); err != nil {
		h.log(ctx, "error", "Failed to load similar foods", zap.Int("food_id", foodID), zap.Error(err))
	} else {
		page.Similar = diet.NewCards(similar.Data.SimilarFoods)
	}

	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// RateRequest is the body of POST /foods/{food_id}/rate. A body with only
// is_liked is a like; otherwise rating must be 1 to 5.
type RateRequest struct {
	Rating  *float64 `json:"rating"`
	IsLiked *bool    `json:"is_liked"`
}

// RateFood handles POST /foods/{food_id}/rate
func (h *Handler) RateFood(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	foodID, ok := h.foodID(ctx, w, r)
	if !ok {
		return
	}
	entry := h.session(ctx, w, r)

	var req RateRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}
	isLike := req.Rating == nil && req.IsLiked != nil

	if !entry.Controller.IsAuthenticated() {
		msg := "Silakan login untuk memberikan rating"
		if isLike {
			msg = "Silakan login untuk menyukai makanan"
		}
		notify(entry, session.LevelError, msg)
		h.render(ctx, w, r, entry, http.StatusUnauthorized, nil)
		return
	}

	body := models.RatingRequest{IsLiked: req.IsLiked}
	if !isLike {
		if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
			h.badRequest(ctx, w, "Rating must be between 1 and 5", nil)
			return
		}
		body.Rating = *req.Rating
	}

	if _, err := entry.Controller.API().Foods.Rate(ctx, foodID, body); err != nil {
		h.log(ctx, "error", "Failed to save rating", zap.Int("food_id", foodID), zap.Error(err))
		msg := "Gagal menyimpan rating"
		if isLike {
			msg = "Gagal menyimpan like"
		}
		notify(entry, session.LevelError, msg)
		h.render(ctx, w, r, entry, http.StatusOK, nil)
		return
	}

	switch {
	case !isLike:
		notify(entry, session.LevelSuccess, "Rating berhasil disimpan!")
	case *req.IsLiked:
		notify(entry, session.LevelSuccess, "Makanan disukai!")
	default:
		notify(entry, session.LevelSuccess, "Like dihapus")
	}
	h.log(ctx, "info", "Rating saved", zap.Int("food_id", foodID), zap.Bool("like", isLike))
	h.render(ctx, w, r, entry, http.StatusOK, body)
}

func (h *Handler) foodID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["food_id"]
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.badRequest(ctx, w, "Invalid food ID", err)
		return 0, false
	}
	return id, true
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
