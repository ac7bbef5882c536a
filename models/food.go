package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Food is a catalog entry; nutrient values are per 100 g.
// Optional nutrients are pointers so that "not measured" stays distinct from zero.
type Food struct {
	ID               int               `json:"food_id"`
	Name             string            `json:"nama_makanan"`
	Water            *float64          `json:"air,omitempty"`
	Energy           float64           `json:"energi"`
	Protein          *float64          `json:"protein,omitempty"`
	Fat              *float64          `json:"lemak,omitempty"`
	Carbohydrate     *float64          `json:"karbohidrat,omitempty"`
	Fiber            *float64          `json:"serat,omitempty"`
	Sodium           *float64          `json:"natrium,omitempty"`
	Potassium        *float64          `json:"kalium,omitempty"`
	CategoryID       int               `json:"category_id"`
	CategoryName     string            `json:"category_name,omitempty"`
	GlycemicIndex    *float64          `json:"estimated_gi,omitempty"`
	HealthScore      *float64          `json:"health_score,omitempty"`
	NutritionProfile *NutritionProfile `json:"nutrition_profile,omitempty"`
	DietSuitability  DietTags          `json:"diet_suitability,omitempty"`
	IsActive         bool              `json:"is_active"`
	Category         *FoodCategory     `json:"category,omitempty"`
	SimilarityScore  *float64          `json:"similarity_score,omitempty"`
	UserRating       *float64          `json:"user_rating,omitempty"`
	UserLiked        *bool             `json:"user_liked,omitempty"`
}

// NutritionProfile holds the API's boolean nutrient flags
type NutritionProfile struct {
	HighProtein   bool `json:"high_protein"`
	HighFiber     bool `json:"high_fiber"`
	LowCalorie    bool `json:"low_calorie"`
	LowSodium     bool `json:"low_sodium"`
	HighPotassium bool `json:"high_potassium"`
}

// FoodCategory groups foods in the catalog
type FoodCategory struct {
	ID          int    `json:"category_id"`
	Name        string `json:"category_name"`
	Code        string `json:"category_code"`
	Description string `json:"description,omitempty"`
}

// DietTags is the normalized form of the API's diet_suitability field.
// The field arrives as a comma-separated string, a list of strings, or an
// object wrapping a list; all three decode to the same ordered tag list.
type DietTags []string

// UnmarshalJSON normalizes every known shape. Unknown shapes decode to no tags.
func (t *DietTags) UnmarshalJSON(data []byte) error {
	*t = NormalizeDietSuitability(data)
	return nil
}

// NormalizeDietSuitability turns a raw diet_suitability value into trimmed, non-empty tags
func NormalizeDietSuitability(raw json.RawMessage) DietTags {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return cleanTags(strings.Split(s, ","))
	case '[':
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		return cleanTags(list)
	case '{':
		return cleanTags(firstWrappedList(raw))
	}
	return nil
}

// firstWrappedList returns the first list-valued member of an object, in document order
func firstWrappedList(raw json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}
		var list []string
		if err := json.Unmarshal(value, &list); err == nil && list != nil {
			return list
		}
	}
	return nil
}

func cleanTags(in []string) DietTags {
	out := make(DietTags, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FoodSearchParams are the query parameters of GET /foods/
type FoodSearchParams struct {
	Page       int
	PerPage    int
	CategoryID int
	Search     string
}

// FoodsResponse is one page of the catalog.
// Pagination fields are authoritative; callers never synthesize them.
type FoodsResponse struct {
	Foods       []Food `json:"foods"`
	Total       int    `json:"total"`
	Pages       int    `json:"pages"`
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
}

// FoodResponse is returned by GET /foods/{id}
type FoodResponse struct {
	Food Food `json:"food"`
}

// CategoriesResponse is returned by GET /foods/categories
type CategoriesResponse struct {
	Categories []FoodCategory `json:"categories"`
}

// RatingRequest is the body of POST /foods/{id}/rate
type RatingRequest struct {
	Rating  float64 `json:"rating"`
	IsLiked *bool   `json:"is_liked,omitempty"`
}

// UserRating is one rating made by the current user
type UserRating struct {
	ID              int             `json:"rating_id"`
	UserID          int             `json:"user_id"`
	FoodID          int             `json:"food_id"`
	Rating          *float64        `json:"rating,omitempty"`
	IsLiked         *bool           `json:"is_liked,omitempty"`
	InteractionType string          `json:"interaction_type,omitempty"`
	Confidence      *float64        `json:"confidence,omitempty"`
	Context         json.RawMessage `json:"context,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	FoodName        string          `json:"food_name,omitempty"`
}

// RatingsResponse is returned by GET /foods/my-ratings
type RatingsResponse struct {
	Ratings []UserRating `json:"ratings"`
}
