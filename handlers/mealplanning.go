package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nutrirec-web/apiclient"
	"nutrirec-web/models"
	"nutrirec-web/session"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// MealPlanningPage is the data of the meal planning routes
type MealPlanningPage struct {
	Date     string                  `json:"date"`
	HasPlan  bool                    `json:"has_plan"`
	Plan     *models.DailyMealPlan   `json:"meal_plan"`
	Progress *PlanProgress           `json:"progress,omitempty"`
	Today    *models.TodayMealStatus `json:"today,omitempty"`
	Tips     []string                `json:"tips,omitempty"`
	Approach models.MealPlanApproach `json:"approach"`

	MealTimes   *models.MealTimeRecommendations `json:"meal_times,omitempty"`
	Suggestions *models.QuickMealSuggestions    `json:"quick_suggestions,omitempty"`
}

// PlanProgress summarizes the completion of a day
type PlanProgress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

func progressOf(plan *models.DailyMealPlan) *PlanProgress {
	if plan == nil || plan.CompletionStatus == nil {
		return &PlanProgress{Total: 3}
	}
	done := plan.CompletionStatus.Completed()
	return &PlanProgress{Completed: done, Total: 3, Percent: float64(done) / 3 * 100}
}

// planDate validates a YYYY-MM-DD date, defaulting to today
func (h *Handler) planDate(s string) (string, bool) {
	if s == "" {
		return h.now().Format(dateLayout), true
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", false
	}
	return s, true
}

// MealPlanning handles GET /mealplanning?date=YYYY-MM-DD. A missing plan is
// an empty page, not an error.
func (h *Handler) MealPlanning(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	date, ok := h.planDate(r.URL.Query().Get("date"))
	if !ok {
		h.badRequest(ctx, w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	api := entry.Controller.API()

	page := MealPlanningPage{Date: date, Approach: models.ApproachBalanced}
	daily, err := api.MealPlanning.Daily(ctx, date)
	switch {
	case apiclient.IsNotFound(err):
		h.log(ctx, "debug", "No meal plan for date", zap.String("date", date))
	case err != nil:
		h.log(ctx, "error", "Failed to load meal plan", zap.String("date", date), zap.Error(err))
		notify(entry, session.LevelError, apiclient.ErrorMessage(err))
	case daily.MealPlan != nil:
		page.HasPlan = true
		page.Plan = daily.MealPlan
		if daily.MealPlan.Approach != "" {
			page.Approach = daily.MealPlan.Approach
		}
	}
	page.Progress = progressOf(page.Plan)

	if today, err := api.MealPlanning.TodayStatus(ctx); err != nil {
		h.log(ctx, "error", "Failed to load today status", zap.Error(err))
	} else {
		page.Today = today
	}
	if times, err := api.MealPlanning.MealTimes(ctx); err != nil {
		h.log(ctx, "error", "Failed to load meal times", zap.Error(err))
	} else {
		page.MealTimes = times
	}
	if suggestions, err := api.MealPlanning.QuickSuggestions(ctx); err != nil {
		h.log(ctx, "error", "Failed to load quick suggestions", zap.Error(err))
	} else {
		page.Suggestions = suggestions
	}

	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// GeneratePlanRequest is the body of POST /mealplanning/generate
type GeneratePlanRequest struct {
	Date            string                  `json:"date"`
	Approach        models.MealPlanApproach `json:"approach"`
	ForceRegenerate bool                    `json:"force_regenerate"`
}

// GenerateMealPlan handles POST /mealplanning/generate
func (h *Handler) GenerateMealPlan(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var req GeneratePlanRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}
	date, ok := h.planDate(req.Date)
	if !ok {
		h.badRequest(ctx, w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}
	if req.Approach == "" {
		req.Approach = models.ApproachBalanced
	}
	if !req.Approach.Valid() {
		h.badRequest(ctx, w, "Invalid approach", nil)
		return
	}

	page := MealPlanningPage{Date: date, Approach: req.Approach}
	resp, err := entry.Controller.API().MealPlanning.GenerateDaily(ctx, models.GenerateMealPlanRequest{
		Date:            date,
		Approach:        req.Approach,
		ForceRegenerate: req.ForceRegenerate,
	})
	if err != nil {
		h.log(ctx, "error", "Failed to generate meal plan", zap.String("date", date), zap.Error(err))
		notify(entry, session.LevelError, apiclient.ErrorMessage(err))
		page.Progress = progressOf(nil)
		h.render(ctx, w, r, entry, http.StatusOK, page)
		return
	}

	plan := resp.MealPlan
	page.HasPlan = true
	page.Plan = &plan
	page.Tips = resp.Tips
	page.Progress = progressOf(&plan)
	if resp.Message != "" {
		notify(entry, session.LevelSuccess, resp.Message)
	}
	h.log(ctx, "info", "Meal plan generated", zap.String("date", date), zap.String("approach", string(req.Approach)))
	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// CompleteMealRequest is the body of POST /mealplanning/complete. Without
// "completed" the meal's current status is flipped.
type CompleteMealRequest struct {
	Date      string          `json:"date"`
	MealType  models.MealType `json:"meal_type"`
	Completed *bool           `json:"completed"`
}

// CompleteMeal handles POST /mealplanning/complete
func (h *Handler) CompleteMeal(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var req CompleteMealRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}
	date, ok := h.planDate(req.Date)
	if !ok {
		h.badRequest(ctx, w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}
	if !req.MealType.Valid() {
		h.badRequest(ctx, w, "Invalid meal type", nil)
		return
	}
	api := entry.Controller.API()

	page := MealPlanningPage{Date: date, Approach: models.ApproachBalanced}
	daily, err := api.MealPlanning.Daily(ctx, date)
	if err != nil || daily.MealPlan == nil {
		h.log(ctx, "error", "No plan to complete", zap.String("date", date), zap.Error(err))
		if err != nil && !apiclient.IsNotFound(err) {
			notify(entry, session.LevelError, apiclient.ErrorMessage(err))
		} else {
			notify(entry, session.LevelError, "Belum ada rencana makan untuk tanggal ini")
		}
		page.Progress = progressOf(nil)
		h.render(ctx, w, r, entry, http.StatusOK, page)
		return
	}
	plan := daily.MealPlan
	page.HasPlan = true
	page.Plan = plan
	if plan.Approach != "" {
		page.Approach = plan.Approach
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	} else if plan.CompletionStatus != nil {
		completed = !plan.CompletionStatus.Get(req.MealType)
	}

	resp, err := api.MealPlanning.MarkCompleted(ctx, models.MealCompletionRequest{
		Date:      date,
		MealType:  req.MealType,
		Completed: &completed,
	})
	if err != nil {
		h.log(ctx, "error", "Failed to update completion", zap.String("meal", string(req.MealType)), zap.Error(err))
		notify(entry, session.LevelError, apiclient.ErrorMessage(err))
	} else {
		status := resp.CompletionStatus
		if status == nil {
			updated := models.CompletionStatus{}
			if plan.CompletionStatus != nil {
				updated = *plan.CompletionStatus
			}
			setCompletion(&updated, req.MealType, completed)
			status = &updated
		}
		plan.CompletionStatus = status
		rate := resp.CompletionRate
		plan.CompletionRate = &rate
	}
	page.Progress = progressOf(plan)

	h.render(ctx, w, r, entry, http.StatusOK, page)
}

func setCompletion(s *models.CompletionStatus, meal models.MealType, done bool) {
	switch meal {
	case models.MealBreakfast:
		s.Breakfast = done
	case models.MealLunch:
		s.Lunch = done
	case models.MealDinner:
		s.Dinner = done
	}
}

// WeeklyPlanPage is the data of the weekly meal planning routes
type WeeklyPlanPage struct {
	StartDate string                  `json:"start_date"`
	Plan      *models.WeeklyMealPlan  `json:"weekly_plan,omitempty"`
	Progress  *models.WeeklyProgress  `json:"weekly_progress,omitempty"`
	Approach  models.MealPlanApproach `json:"approach"`
}

// WeeklyMealPlanning handles GET /mealplanning/week?start=YYYY-MM-DD
func (h *Handler) WeeklyMealPlanning(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	start, ok := h.planDate(r.URL.Query().Get("start"))
	if !ok {
		h.badRequest(ctx, w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	api := entry.Controller.API()

	page := WeeklyPlanPage{StartDate: start, Approach: models.ApproachBalanced}
	if plan, err := api.MealPlanning.Weekly(ctx, start); err != nil {
		h.log(ctx, "error", "Failed to load weekly plan", zap.String("start", start), zap.Error(err))
		notify(entry, session.LevelError, apiclient.ErrorMessage(err))
	} else {
		page.Plan = plan
		if plan.Approach != "" {
			page.Approach = plan.Approach
		}
	}
	if progress, err := api.MealPlanning.WeeklyProgress(ctx, start); err != nil {
		h.log(ctx, "error", "Failed to load weekly progress", zap.String("start", start), zap.Error(err))
	} else {
		page.Progress = progress
	}

	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// GenerateWeekRequest is the body of POST /mealplanning/week/generate
type GenerateWeekRequest struct {
	StartDate string                  `json:"start_date"`
	Approach  models.MealPlanApproach `json:"approach"`
}

// GenerateWeeklyMealPlan handles POST /mealplanning/week/generate
func (h *Handler) GenerateWeeklyMealPlan(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var req GenerateWeekRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}
	start, ok := h.planDate(req.StartDate)
	if !ok {
		h.badRequest(ctx, w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}
	if req.Approach == "" {
		req.Approach = models.ApproachBalanced
	}
	if !req.Approach.Valid() {
		h.badRequest(ctx, w, "Invalid approach", nil)
		return
	}

	page := WeeklyPlanPage{StartDate: start, Approach: req.Approach}
	plan, err := entry.Controller.API().MealPlanning.GenerateWeekly(ctx, models.GenerateWeeklyRequest{
		StartDate: start,
		Approach:  req.Approach,
	})
	if err != nil {
		h.log(ctx, "error", "Failed to generate weekly plan", zap.String("start", start), zap.Error(err))
		notify(entry, session.LevelError, apiclient.ErrorMessage(err))
	} else {
		page.Plan = plan
		if plan.Message != "" {
			notify(entry, session.LevelSuccess, plan.Message)
		}
		h.log(ctx, "info", "Weekly plan generated", zap.String("start", start), zap.String("approach", string(req.Approach)))
	}

	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// UpdateMealRequest is the body of POST /mealplanning/meal
type UpdateMealRequest struct {
	Date     string          `json:"date"`
	MealType models.MealType `json:"meal_type"`
	MealData json.RawMessage `json:"meal_data"`
}

// UpdatePlannedMeal handles POST /mealplanning/meal, replacing one meal of
// a day's plan.
func (h *Handler) UpdatePlannedMeal(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var req UpdateMealRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}
	date, ok := h.planDate(req.Date)
	if !ok {
		h.badRequest(ctx, w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}
	if !req.MealType.Valid() {
		h.badRequest(ctx, w, "Invalid meal type", nil)
		return
	}
	if len(req.MealData) == 0 {
		h.badRequest(ctx, w, "Meal data is required", nil)
		return
	}

	page := MealPlanningPage{Date: date, Approach: models.ApproachBalanced}
	resp, err := entry.Controller.API().MealPlanning.UpdateMeal(ctx, date, req.MealType, req.MealData)
	if err != nil {
		h.log(ctx, "error", "Failed to update meal", zap.String("date", date), zap.String("meal", string(req.MealType)), zap.Error(err))
		notify(entry, session.LevelError, apiclient.ErrorMessage(err))
		page.Progress = progressOf(nil)
		h.render(ctx, w, r, entry, http.StatusOK, page)
		return
	}

	plan := resp.UpdatedPlan
	page.HasPlan = true
	page.Plan = &plan
	if plan.Approach != "" {
		page.Approach = plan.Approach
	}
	page.Progress = progressOf(&plan)
	if resp.Message != "" {
		notify(entry, session.LevelSuccess, resp.Message)
	}
	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// PreferencesPage is the data of /mealplanning/preferences
type PreferencesPage struct {
	Preferences models.MealPreferences `json:"preferences"`
}

// MealPreferences handles GET /mealplanning/preferences
func (h *Handler) MealPreferences(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var page PreferencesPage
	prefs, err := entry.Controller.API().MealPlanning.Preferences(ctx)
	if err != nil {
		h.log(ctx, "error", "Failed to load meal preferences", zap.Error(err))
		notify(entry, session.LevelError, apiclient.ErrorMessage(err))
	} else {
		page.Preferences = *prefs
	}
	h.render(ctx, w, r, entry, http.StatusOK, page)
}

// UpdateMealPreferences handles POST /mealplanning/preferences
func (h *Handler) UpdateMealPreferences(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var prefs models.MealPreferences
	if err := decodeBody(r, &prefs); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}

	page := PreferencesPage{Preferences: prefs}
	resp, err := entry.Controller.API().MealPlanning.UpdatePreferences(ctx, prefs)
	if err != nil {
		h.log(ctx, "error", "Failed to update meal preferences", zap.Error(err))
		notify(entry, session.LevelError, apiclient.ErrorMessage(err))
	} else {
		page.Preferences = resp.Preferences
		msg := resp.Message
		if msg == "" {
			msg = "Preferensi berhasil disimpan"
		}
		notify(entry, session.LevelSuccess, msg)
	}
	h.render(ctx, w, r, entry, http.StatusOK, page)
}
