package server

import (
	"context"
	"net/http"

	"nutrirec-web/handlers"
)

type page struct {
	name    string
	method  string
	path    string
	handler func(ctx context.Context, w http.ResponseWriter, r *http.Request)
}

// pages lists every route. Access is decided per session by the route
// table, so none of them asks the server for auth.
func pages(h *handlers.Handler) []page {
	return []page{
		{"HealthCheck", "GET", "/health", h.Health},

		{"Home", "GET", "/", h.Home},
		{"ListFoods", "GET", "/foods", h.Foods},
		{"FoodDetail", "GET", "/foods/{food_id}", h.FoodDetail},
		{"RateFood", "POST", "/foods/{food_id}/rate", h.RateFood},
		{"Favorites", "GET", "/favorites", h.Favorites},

		{"Recommendations", "GET", "/recommendations", h.Recommendations},
		{"RecommendationHistory", "GET", "/recommendations/history", h.RecommendationHistory},

		{"MealPlanning", "GET", "/mealplanning", h.MealPlanning},
		{"GenerateMealPlan", "POST", "/mealplanning/generate", h.GenerateMealPlan},
		{"CompleteMeal", "POST", "/mealplanning/complete", h.CompleteMeal},
		{"UpdatePlannedMeal", "POST", "/mealplanning/meal", h.UpdatePlannedMeal},
		{"WeeklyMealPlanning", "GET", "/mealplanning/week", h.WeeklyMealPlanning},
		{"GenerateWeeklyMealPlan", "POST", "/mealplanning/week/generate", h.GenerateWeeklyMealPlan},
		{"MealPreferences", "GET", "/mealplanning/preferences", h.MealPreferences},
		{"UpdateMealPreferences", "POST", "/mealplanning/preferences", h.UpdateMealPreferences},

		{"Profile", "GET", "/profile", h.Profile},
		{"UpdateProfile", "POST", "/profile", h.UpdateProfile},
		{"UpdateMedicalConditions", "POST", "/profile/medical-conditions", h.UpdateMedicalConditions},

		{"LoginPage", "GET", "/login", h.LoginPage},
		{"Login", "POST", "/login", h.Login},
		{"RegisterPage", "GET", "/register", h.RegisterPage},
		{"Register", "POST", "/register", h.Register},
		{"Logout", "POST", "/logout", h.Logout},

		{"Admin", "GET", "/admin", h.Admin},
	}
}
