// Package diet decides, for a single food, which of its diet tags are safe and
// which deserve a caution badge. Everything here is a pure function of its inputs.
package diet

import (
	"strings"

	"nutrirec-web/models"
)

// Thresholds for the nutrient rules, per 100 g
const (
	SodiumLimitMg   = 200.0
	EnergyLimitKcal = 200.0
	ObesityGILimit  = 70.0
	DiabetesGILimit = 55.0
)

// Nutrients are the values the rules look at. Zero means "not measured" as well.
type Nutrients struct {
	SodiumMg      float64
	EnergyKcal    float64
	GlycemicIndex float64
}

// Partition splits a food's tags; both slices keep the input order
type Partition struct {
	Safe    []string `json:"safe"`
	Warning []string `json:"warning"`
}

// rule flags a tag when its text contains any keyword and risky reports true
type rule struct {
	keywords []string
	risky    func(Nutrients) bool
}

var rules = []rule{
	{
		keywords: []string{"hypertension", "heart"},
		risky:    func(n Nutrients) bool { return n.SodiumMg > SodiumLimitMg },
	},
	{
		keywords: []string{"obesity"},
		risky: func(n Nutrients) bool {
			return n.EnergyKcal > EnergyLimitKcal || n.GlycemicIndex > ObesityGILimit
		},
	},
	{
		keywords: []string{"diabetes"},
		risky:    func(n Nutrients) bool { return n.GlycemicIndex > DiabetesGILimit },
	},
}

// Evaluate partitions tags into safe and warning for a food with nutrients n
func Evaluate(tags []string, n Nutrients) Partition {
	p := Partition{
		Safe:    make([]string, 0, len(tags)),
		Warning: make([]string, 0),
	}
	for _, tag := range tags {
		if Risky(tag, n) {
			p.Warning = append(p.Warning, tag)
		} else {
			p.Safe = append(p.Safe, tag)
		}
	}
	return p
}

// Risky reports whether any rule matching tag fires for n
func Risky(tag string, n Nutrients) bool {
	lower := strings.ToLower(tag)
	for _, r := range rules {
		if containsAny(lower, r.keywords) && r.risky(n) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// NutrientsOf reads the rule inputs off a food; missing values become 0
func NutrientsOf(f models.Food) Nutrients {
	return Nutrients{
		SodiumMg:      valueOr0(f.Sodium),
		EnergyKcal:    f.Energy,
		GlycemicIndex: valueOr0(f.GlycemicIndex),
	}
}

// EvaluateFood runs Evaluate over the food's own tags
func EvaluateFood(f models.Food) Partition {
	return Evaluate(f.DietSuitability, NutrientsOf(f))
}

func valueOr0(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
