package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RoleAdmin is the role value the API uses for administrators
const RoleAdmin = "admin"

// ActivityLevel is the self-reported physical activity level
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Valid reports whether a is one of the levels the API accepts
func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// DietGoal is the weight goal of a user.
// The API has used two tokens for "gain" across revisions; both decode to
// DietGoalGain and DietGoalGain always encodes as "menambah".
type DietGoal string

const (
	DietGoalLose     DietGoal = "menurunkan"
	DietGoalMaintain DietGoal = "menjaga"
	DietGoalGain     DietGoal = "menambah"

	dietGoalGainAlias = "menaikkan"
)

// ParseDietGoal maps a wire token onto the canonical goal
func ParseDietGoal(s string) (DietGoal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(DietGoalLose):
		return DietGoalLose, nil
	case string(DietGoalMaintain):
		return DietGoalMaintain, nil
	case string(DietGoalGain), dietGoalGainAlias:
		return DietGoalGain, nil
	}
	return "", fmt.Errorf("unknown diet goal %q", s)
}

// Valid reports whether g is empty or one of the canonical goals
func (g DietGoal) Valid() bool {
	switch g {
	case "", DietGoalLose, DietGoalMaintain, DietGoalGain:
		return true
	}
	return false
}

// UnmarshalJSON maps every token the API has used for a goal onto the
// canonical value. Unknown tokens are kept as sent so that a new goal on
// the API side never breaks decoding of a whole user; callers that need a
// known goal check Valid.
func (g *DietGoal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDietGoal(s)
	if err != nil {
		*g = DietGoal(strings.TrimSpace(s))
		return nil
	}
	*g = parsed
	return nil
}

// Gender uses the API's single-letter codes
type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

// User is the profile record returned by the API.
// BMR and TargetCalories are computed server-side and never sent back.
type User struct {
	ID              int              `json:"user_id"`
	Email           string           `json:"email"`
	Name            string           `json:"nama"`
	Age             int              `json:"umur,omitempty"`
	Gender          Gender           `json:"jenis_kelamin,omitempty"`
	Height          float64          `json:"tinggi_badan,omitempty"`
	Weight          float64          `json:"berat_badan,omitempty"`
	TargetWeight    float64          `json:"target_berat,omitempty"`
	Activity        ActivityLevel    `json:"aktivitas,omitempty"`
	DietGoal        DietGoal         `json:"diet_goal,omitempty"`
	Allergies       string           `json:"alergi,omitempty"`
	BMR             float64          `json:"bmr,omitempty"`
	TargetCalories  float64          `json:"target_kalori,omitempty"`
	IsActive        bool             `json:"is_active"`
	Role            string           `json:"role"`
	MealPreferences *MealPreferences `json:"meal_preferences,omitempty"`
}

// ProfileComplete reports whether the fields needed for recommendations are filled in
func (u *User) ProfileComplete() bool {
	if u == nil {
		return false
	}
	return u.Name != "" && u.Age != 0 && u.Gender != "" && u.Height != 0 && u.Weight != 0
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm is what the register page submits; ConfirmPassword never leaves this service
type RegisterForm struct {
	Name            string        `json:"nama"`
	Email           string        `json:"email"`
	Password        string        `json:"password"`
	ConfirmPassword string        `json:"confirmPassword,omitempty"`
	Age             int           `json:"umur,omitempty"`
	Gender          Gender        `json:"jenis_kelamin,omitempty"`
	Height          float64       `json:"tinggi_badan,omitempty"`
	Weight          float64       `json:"berat_badan,omitempty"`
	TargetWeight    float64       `json:"target_berat,omitempty"`
	Activity        ActivityLevel `json:"aktivitas,omitempty"`
	DietGoal        DietGoal      `json:"diet_goal,omitempty"`
	Allergies       string        `json:"alergi,omitempty"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name         string        `json:"nama"`
	Email        string        `json:"email"`
	Password     string        `json:"password"`
	Age          int           `json:"umur,omitempty"`
	Gender       Gender        `json:"jenis_kelamin,omitempty"`
	Height       float64       `json:"tinggi_badan,omitempty"`
	Weight       float64       `json:"berat_badan,omitempty"`
	TargetWeight float64       `json:"target_berat,omitempty"`
	Activity     ActivityLevel `json:"aktivitas,omitempty"`
	DietGoal     DietGoal      `json:"diet_goal,omitempty"`
	Allergies    string        `json:"alergi,omitempty"`
}

// Request drops the confirmation field
func (f RegisterForm) Request() RegisterRequest {
	return RegisterRequest{
		Name:         f.Name,
		Email:        f.Email,
		Password:     f.Password,
		Age:          f.Age,
		Gender:       f.Gender,
		Height:       f.Height,
		Weight:       f.Weight,
		TargetWeight: f.TargetWeight,
		Activity:     f.Activity,
		DietGoal:     f.DietGoal,
		Allergies:    f.Allergies,
	}
}

// LoginResponse is returned by both login and register
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// ProfileResponse is returned by GET /auth/profile
type ProfileResponse struct {
	User User `json:"user"`
}

// ProfileUpdate is the body of PUT /users/profile.
// BMR and target calories are omitted on purpose; the API derives them.
type ProfileUpdate struct {
	Name         string        `json:"nama,omitempty"`
	Age          int           `json:"umur,omitempty"`
	Gender       Gender        `json:"jenis_kelamin,omitempty"`
	Height       float64       `json:"tinggi_badan,omitempty"`
	Weight       float64       `json:"berat_badan,omitempty"`
	TargetWeight float64       `json:"target_berat,omitempty"`
	Activity     ActivityLevel `json:"aktivitas,omitempty"`
	DietGoal     DietGoal      `json:"diet_goal,omitempty"`
	Allergies    string        `json:"alergi,omitempty"`
}

// ProfileUpdateResponse is returned by PUT /users/profile
type ProfileUpdateResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Severity of a medical condition
type Severity string

const (
	SeverityMild     Severity = "ringan"
	SeverityModerate Severity = "sedang"
	SeveritySevere   Severity = "berat"
)

// MedicalCondition is one entry of the condition catalog
type MedicalCondition struct {
	ID           int    `json:"condition_id"`
	Name         string `json:"condition_name"`
	Code         string `json:"condition_code"`
	Description  string `json:"description,omitempty"`
	DietaryFocus string `json:"dietary_focus,omitempty"`
}

// UserMedicalCondition is a condition attached to the current user
type UserMedicalCondition struct {
	ID       int      `json:"condition_id"`
	Name     string   `json:"condition_name"`
	Code     string   `json:"condition_code"`
	Severity Severity `json:"severity"`
	Notes    string   `json:"notes,omitempty"`
}

// ConditionSelection is one entry of UpdateMedicalConditionsRequest
type ConditionSelection struct {
	ID       int      `json:"condition_id"`
	Severity Severity `json:"severity,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// UpdateMedicalConditionsRequest replaces the user's conditions
type UpdateMedicalConditionsRequest struct {
	Conditions []ConditionSelection `json:"conditions"`
}

// MedicalConditionsResponse is returned by GET /users/medical-conditions
type MedicalConditionsResponse struct {
	Conditions []MedicalCondition `json:"conditions"`
}

// MyMedicalConditionsResponse is returned by GET /users/my-medical-conditions
type MyMedicalConditionsResponse struct {
	Conditions           []UserMedicalCondition `json:"conditions"`
	HasMedicalConditions bool                   `json:"has_medical_conditions"`
	Message              string                 `json:"message"`
}

// MessageResponse is the generic {"message": "..."} reply
type MessageResponse struct {
	Message string `json:"message"`
}
