package apiclient

import (
	"context"
	"encoding/json"
	"net/url"

	"nutrirec-web/models"
)

// MealPlanningService covers /meal-planning
type MealPlanningService struct {
	c *Client
}

// GenerateDaily asks the API to build a plan for one day
func (s *MealPlanningService) GenerateDaily(ctx context.Context, req models.GenerateMealPlanRequest) (*models.GenerateMealPlanResponse, error) {
	var out models.GenerateMealPlanResponse
	if err := s.c.Post(ctx, "/meal-planning/generate-plan", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateWeekly builds plans for seven days from req.StartDate
func (s *MealPlanningService) GenerateWeekly(ctx context.Context, req models.GenerateWeeklyRequest) (*models.WeeklyMealPlan, error) {
	var out models.WeeklyMealPlan
	if err := s.c.Post(ctx, "/meal-planning/generate-weekly-plan", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Daily returns the plan for date (YYYY-MM-DD). A missing plan is a 404 error.
func (s *MealPlanningService) Daily(ctx context.Context, date string) (*models.DailyPlanResponse, error) {
	var out models.DailyPlanResponse
	if err := s.c.Get(ctx, "/meal-planning/plan/"+url.PathEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Weekly returns the plans of the week starting at startDate
func (s *MealPlanningService) Weekly(ctx context.Context, startDate string) (*models.WeeklyMealPlan, error) {
	var out models.WeeklyMealPlan
	if err := s.c.Get(ctx, "/meal-planning/plans/week/"+url.PathEscape(startDate), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkCompleted flips the completion flag of one meal
func (s *MealPlanningService) MarkCompleted(ctx context.Context, req models.MealCompletionRequest) (*models.MealCompletionResponse, error) {
	var out models.MealCompletionResponse
	if err := s.c.Post(ctx, "/meal-planning/mark-completed", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TodayStatus summarizes today's plan and progress
func (s *MealPlanningService) TodayStatus(ctx context.Context) (*models.TodayMealStatus, error) {
	var out models.TodayMealStatus
	if err := s.c.Get(ctx, "/meal-planning/today-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMeal replaces one meal of a day's plan
func (s *MealPlanningService) UpdateMeal(ctx context.Context, date string, meal models.MealType, mealData json.RawMessage) (*models.UpdateMealResponse, error) {
	var out models.UpdateMealResponse
	path := "/meal-planning/plan/" + url.PathEscape(date) + "/meal/" + url.PathEscape(string(meal))
	if err := s.c.Put(ctx, path, models.UpdateMealRequest{MealData: mealData}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeeklyProgress reports completion over the week starting at startDate
func (s *MealPlanningService) WeeklyProgress(ctx context.Context, startDate string) (*models.WeeklyProgress, error) {
	var out models.WeeklyProgress
	if err := s.c.Get(ctx, "/meal-planning/progress/weekly/"+url.PathEscape(startDate), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MealTimes returns recommended meal times
func (s *MealPlanningService) MealTimes(ctx context.Context) (*models.MealTimeRecommendations, error) {
	var out models.MealTimeRecommendations
	if err := s.c.Get(ctx, "/meal-planning/meal-times", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QuickSuggestions returns meal ideas for the current time of day
func (s *MealPlanningService) QuickSuggestions(ctx context.Context) (*models.QuickMealSuggestions, error) {
	var out models.QuickMealSuggestions
	if err := s.c.Get(ctx, "/meal-planning/quick-suggestions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Preferences returns the stored meal preferences
func (s *MealPlanningService) Preferences(ctx context.Context) (*models.MealPreferences, error) {
	var out models.MealPreferencesResponse
	if err := s.c.Get(ctx, "/meal-planning/preferences", nil, &out); err != nil {
		return nil, err
	}
	return &out.Preferences, nil
}

// UpdatePreferences replaces the stored meal preferences
func (s *MealPlanningService) UpdatePreferences(ctx context.Context, prefs models.MealPreferences) (*models.MealPreferencesResponse, error) {
	var out models.MealPreferencesResponse
	body := map[string]models.MealPreferences{"preferences": prefs}
	if err := s.c.Put(ctx, "/meal-planning/preferences", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
