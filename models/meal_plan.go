package models

import "encoding/json"

// MealType is one of the three daily meals
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// Valid reports whether m is a known meal
func (m MealType) Valid() bool {
	return m == MealBreakfast || m == MealLunch || m == MealDinner
}

// MealPlanApproach is how calories are spread over the day
type MealPlanApproach string

const (
	ApproachBalanced       MealPlanApproach = "balanced"
	ApproachBreakfastHeavy MealPlanApproach = "breakfast_heavy"
	ApproachLunchHeavy     MealPlanApproach = "lunch_heavy"
)

// Valid reports whether a is a known approach
func (a MealPlanApproach) Valid() bool {
	return a == ApproachBalanced || a == ApproachBreakfastHeavy || a == ApproachLunchHeavy
}

// MealFood is one item of a planned meal
type MealFood struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Portion  string  `json:"portion"`
}

// MealPlan is a single planned meal
type MealPlan struct {
	Name          string     `json:"name"`
	Foods         []MealFood `json:"foods"`
	TotalCalories float64    `json:"total_calories"`
	Description   string     `json:"description"`
}

// CompletionStatus tracks which meals of a day were eaten
type CompletionStatus struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

// Get returns the status of one meal
func (c CompletionStatus) Get(m MealType) bool {
	switch m {
	case MealBreakfast:
		return c.Breakfast
	case MealLunch:
		return c.Lunch
	case MealDinner:
		return c.Dinner
	}
	return false
}

// Completed counts the meals marked as eaten
func (c CompletionStatus) Completed() int {
	n := 0
	for _, done := range []bool{c.Breakfast, c.Lunch, c.Dinner} {
		if done {
			n++
		}
	}
	return n
}

// DailyMealPlan is the plan for one date
type DailyMealPlan struct {
	Breakfast           MealPlan          `json:"breakfast_plan"`
	Lunch               MealPlan          `json:"lunch_plan"`
	Dinner              MealPlan          `json:"dinner_plan"`
	TotalTargetCalories float64           `json:"total_target_calories"`
	Approach            MealPlanApproach  `json:"approach"`
	CompletionStatus    *CompletionStatus `json:"completion_status,omitempty"`
	CompletionRate      *float64          `json:"completion_rate,omitempty"`
}

// GenerateMealPlanRequest is the body of POST /meal-planning/generate-plan
type GenerateMealPlanRequest struct {
	Date            string           `json:"date,omitempty"`
	Approach        MealPlanApproach `json:"approach,omitempty"`
	ForceRegenerate bool             `json:"force_regenerate,omitempty"`
}

// GenerateMealPlanResponse is the reply of the plan generator
type GenerateMealPlanResponse struct {
	Message  string        `json:"message"`
	MealPlan DailyMealPlan `json:"meal_plan"`
	Tips     []string      `json:"tips"`
}

// GenerateWeeklyRequest is the body of POST /meal-planning/generate-weekly-plan
type GenerateWeeklyRequest struct {
	StartDate string           `json:"start_date,omitempty"`
	Approach  MealPlanApproach `json:"approach,omitempty"`
}

// DailyPlanResponse is returned by GET /meal-planning/plan/{date}
type DailyPlanResponse struct {
	Date     string         `json:"date"`
	MealPlan *DailyMealPlan `json:"meal_plan"`
}

// DailyMealPlanWithDate is one day of a weekly plan
type DailyMealPlanWithDate struct {
	Date     string         `json:"date"`
	DayName  string         `json:"day_name"`
	MealPlan *DailyMealPlan `json:"meal_plan"`
	HasPlan  bool           `json:"has_plan"`
}

// WeeklyMealPlan covers seven consecutive days
type WeeklyMealPlan struct {
	Message     string                  `json:"message,omitempty"`
	StartDate   string                  `json:"start_date"`
	EndDate     string                  `json:"end_date"`
	WeeklyPlans []DailyMealPlanWithDate `json:"weekly_plans"`
	Approach    MealPlanApproach        `json:"approach"`
}

// MealCompletionRequest is the body of POST /meal-planning/mark-completed
type MealCompletionRequest struct {
	Date      string   `json:"date,omitempty"`
	MealType  MealType `json:"meal_type"`
	Completed *bool    `json:"completed,omitempty"`
}

// MealCompletionResponse reports the day's progress after a change
type MealCompletionResponse struct {
	Message          string            `json:"message"`
	CompletionRate   float64           `json:"completion_rate"`
	CompletedMeals   int               `json:"completed_meals"`
	TotalMeals       int               `json:"total_meals"`
	CompletionStatus *CompletionStatus `json:"completion_status,omitempty"`
}

// TodayMealStatus is returned by GET /meal-planning/today-status
type TodayMealStatus struct {
	Date             string            `json:"date"`
	HasPlan          bool              `json:"has_plan"`
	CompletionStatus *CompletionStatus `json:"completion_status,omitempty"`
	CompletionRate   *float64          `json:"completion_rate,omitempty"`
	CompletedMeals   *int              `json:"completed_meals,omitempty"`
	NextMeal         MealType          `json:"next_meal,omitempty"`
	MealPlan         *DailyMealPlan    `json:"meal_plan,omitempty"`
	Message          string            `json:"message,omitempty"`
}

// UpdateMealRequest is the body of PUT /meal-planning/plan/{date}/meal/{type}
type UpdateMealRequest struct {
	MealData json.RawMessage `json:"meal_data"`
}

// UpdateMealResponse is returned after a single meal is replaced
type UpdateMealResponse struct {
	Message     string        `json:"message"`
	UpdatedPlan DailyMealPlan `json:"updated_plan"`
}

// DailyProgress is one day of the weekly progress report
type DailyProgress struct {
	Date             string           `json:"date"`
	DayName          string           `json:"day_name"`
	HasPlan          bool             `json:"has_plan"`
	CompletionRate   float64          `json:"completion_rate"`
	CompletionStatus CompletionStatus `json:"completion_status"`
}

// WeeklyProgress is returned by GET /meal-planning/progress/weekly/{start}
type WeeklyProgress struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Progress  struct {
		Daily []DailyProgress `json:"daily_progress"`
		Stats struct {
			TotalDays      int     `json:"total_days"`
			CompletedDays  int     `json:"completed_days"`
			CompletionRate float64 `json:"completion_rate"`
			MealBreakdown  struct {
				Breakfast int `json:"breakfast"`
				Lunch     int `json:"lunch"`
				Dinner    int `json:"dinner"`
			} `json:"meal_breakdown"`
		} `json:"weekly_stats"`
	} `json:"weekly_progress"`
}

// MealTimeRecommendations is returned by GET /meal-planning/meal-times
type MealTimeRecommendations struct {
	RecommendedTimes struct {
		Breakfast string `json:"breakfast"`
		Lunch     string `json:"lunch"`
		Dinner    string `json:"dinner"`
	} `json:"recommended_times"`
	Tips []string `json:"tips"`
}

// MealSuggestion lists quick ideas for one meal
type MealSuggestion struct {
	MealType    MealType `json:"meal_type"`
	Suggestions []string `json:"suggestions"`
}

// QuickMealSuggestions is returned by GET /meal-planning/quick-suggestions
type QuickMealSuggestions struct {
	CurrentTime    string         `json:"current_time"`
	SuggestedMeal  MealSuggestion `json:"suggested_meal"`
	AllSuggestions struct {
		Morning   MealSuggestion `json:"morning"`
		Afternoon MealSuggestion `json:"afternoon"`
		Evening   MealSuggestion `json:"evening"`
	} `json:"all_suggestions"`
}

// MealPreferences are the user's stored meal preferences
type MealPreferences struct {
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	Allergies           []string `json:"allergies,omitempty"`
	PreferredCuisine    []string `json:"preferred_cuisine,omitempty"`
	FavoriteFoods       []string `json:"favorite_foods,omitempty"`
	AvoidFoods          []string `json:"avoid_foods,omitempty"`
	MealTiming          *struct {
		Breakfast string `json:"breakfast,omitempty"`
		Lunch     string `json:"lunch,omitempty"`
		Dinner    string `json:"dinner,omitempty"`
	} `json:"meal_timing,omitempty"`
	PortionPreference string `json:"portion_preference,omitempty"`
}

// MealPreferencesResponse wraps preferences on read and write
type MealPreferencesResponse struct {
	Message     string          `json:"message,omitempty"`
	Preferences MealPreferences `json:"preferences"`
}
