package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDietSuitability_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want DietTags
	}{
		{"comma separated string", `"A, B, C"`, DietTags{"A", "B", "C"}},
		{"list", `["A","B","C"]`, DietTags{"A", "B", "C"}},
		{"wrapped list", `{"diets":["A"," B ","C"]}`, DietTags{"A", "B", "C"}},
		{"first list member wins", `{"note":"x","tags":["A"],"more":["B"]}`, DietTags{"A"}},
		{"empty pieces dropped", `" , A,,B ,"`, DietTags{"A", "B"}},
		{"null", `null`, nil},
		{"number", `42`, nil},
		{"list of numbers", `[1,2]`, nil},
		{"empty string", `""`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDietSuitability(json.RawMessage(tt.raw)))
		})
	}
}

func TestFood_DecodesEveryDietSuitabilityShape(t *testing.T) {
	bodies := []string{
		`{"food_id":1,"nama_makanan":"Tahu","energi":80,"diet_suitability":"vegan, diabetes"}`,
		`{"food_id":1,"nama_makanan":"Tahu","energi":80,"diet_suitability":["vegan","diabetes"]}`,
		`{"food_id":1,"nama_makanan":"Tahu","energi":80,"diet_suitability":{"suitable_for":["vegan","diabetes"]}}`,
	}
	for _, body := range bodies {
		var f Food
		require.NoError(t, json.Unmarshal([]byte(body), &f))
		assert.Equal(t, DietTags{"vegan", "diabetes"}, f.DietSuitability, body)
		assert.Nil(t, f.Sodium)
	}
}

func TestDietGoal_AcceptsBothGainTokens(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":1,"nama":"Ann","diet_goal":"menaikkan"}`), &u))
	assert.Equal(t, DietGoalGain, u.DietGoal)

	out, err := json.Marshal(ProfileUpdate{DietGoal: u.DietGoal})
	require.NoError(t, err)
	assert.JSONEq(t, `{"diet_goal":"menambah"}`, string(out))

	_, err = ParseDietGoal("bulking")
	assert.Error(t, err)
}

func TestDietGoal_UnknownTokenKeepsUserDecodable(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":1,"nama":"Ann","diet_goal":"gain"}`), &u))

	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, DietGoal("gain"), u.DietGoal)
	assert.False(t, u.DietGoal.Valid())
	assert.True(t, DietGoalGain.Valid())
	assert.True(t, DietGoal("").Valid())
}

func TestUser_ProfileComplete(t *testing.T) {
	u := &User{Name: "Ann", Age: 30, Gender: GenderFemale, Height: 160, Weight: 55}
	assert.True(t, u.ProfileComplete())

	u.Weight = 0
	assert.False(t, u.ProfileComplete())

	var none *User
	assert.False(t, none.ProfileComplete())
}

func TestRegisterForm_RequestDropsConfirmation(t *testing.T) {
	form := RegisterForm{Name: "Ann", Email: "a@x.com", Password: "secret", ConfirmPassword: "secret"}

	out, err := json.Marshal(form.Request())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.NotContains(t, fields, "confirmPassword")
	assert.Equal(t, "secret", fields["password"])
}

func TestCompletionStatus(t *testing.T) {
	c := CompletionStatus{Breakfast: true, Dinner: true}
	assert.Equal(t, 2, c.Completed())
	assert.True(t, c.Get(MealDinner))
	assert.False(t, c.Get(MealLunch))
}
