package diet

import (
	"strings"

	"nutrirec-web/models"
)

// cardTagLimit is how many diet tags a food card shows
const cardTagLimit = 3

// boilerplate words carry no information on a label ("raw", "dish")
var boilerplate = map[string]struct{}{
	"mentah":  {},
	"masakan": {},
}

// DisplayLabel strips boilerplate words from a tag or food name.
// Only for rendering: rules and search always see the original text.
func DisplayLabel(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, drop := boilerplate[strings.ToLower(strings.Trim(f, ",.;:"))]; drop {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// DisplayLabels maps DisplayLabel over tags and drops labels left empty
func DisplayLabels(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if l := DisplayLabel(t); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Normalize accepts a raw diet_suitability JSON value in any of its shapes
func Normalize(raw []byte) []string {
	return models.NormalizeDietSuitability(raw)
}

// GICategory buckets an estimated glycemic index the way the food card labels it
func GICategory(gi float64) string {
	switch {
	case gi <= 55:
		return "Rendah"
	case gi <= 70:
		return "Sedang"
	default:
		return "Tinggi"
	}
}

// HealthScoreBand grades a health score; 0 means unknown
func HealthScoreBand(score float64) string {
	switch {
	case score == 0:
		return "unknown"
	case score >= 80:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "poor"
	}
}

// Card is a food annotated for display
type Card struct {
	models.Food
	DisplayName     string   `json:"display_name"`
	Tags            []string `json:"tags"`
	SafeTags        []string `json:"safe_tags"`
	WarningTags     []string `json:"warning_tags"`
	GlycemicBand    string   `json:"glycemic_band,omitempty"`
	HealthScoreBand string   `json:"health_score_band"`
}

// NewCard evaluates f and prepares its labels
func NewCard(f models.Food) Card {
	p := EvaluateFood(f)
	tags := DisplayLabels(f.DietSuitability)
	if len(tags) > cardTagLimit {
		tags = tags[:cardTagLimit]
	}

	c := Card{
		Food:            f,
		DisplayName:     DisplayLabel(f.Name),
		Tags:            tags,
		SafeTags:        DisplayLabels(p.Safe),
		WarningTags:     DisplayLabels(p.Warning),
		HealthScoreBand: HealthScoreBand(valueOr0(f.HealthScore)),
	}
	if c.DisplayName == "" {
		c.DisplayName = f.Name
	}
	if f.GlycemicIndex != nil {
		c.GlycemicBand = GICategory(*f.GlycemicIndex)
	}
	return c
}

// NewCards annotates every food; each one is evaluated on its own values
func NewCards(foods []models.Food) []Card {
	cards := make([]Card, 0, len(foods))
	for _, f := range foods {
		cards = append(cards, NewCard(f))
	}
	return cards
}
