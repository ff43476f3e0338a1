// ABOUTME: Nutrient enum and per-nutrient value containers.
// ABOUTME: Accessors go through a fixed switch, never through field names.
package models

import "math"

// Nutrient identifies one of the four tracked macro values.
type Nutrient int

const (
	Calories Nutrient = iota
	Protein
	Fat
	Carbohydrate
)

// NutrientCount is the number of tracked nutrients.
const NutrientCount = 4

// AllNutrients lists nutrients in their canonical order.
var AllNutrients = [NutrientCount]Nutrient{Calories, Protein, Fat, Carbohydrate}

// String returns the lower-case name used in output and JSON keys.
func (n Nutrient) String() string {
	switch n {
	case Calories:
		return "calories"
	case Protein:
		return "protein"
	case Fat:
		return "fat"
	case Carbohydrate:
		return "carbohydrate"
	default:
		return "unknown"
	}
}

// Unit returns the display unit for the nutrient.
func (n Nutrient) Unit() string {
	if n == Calories {
		return "kcal"
	}
	return "g"
}

// NutrientValues holds one float per nutrient.
type NutrientValues struct {
	Calories     float64 `json:"calories" yaml:"calories"`
	Protein      float64 `json:"protein" yaml:"protein"`
	Fat          float64 `json:"fat" yaml:"fat"`
	Carbohydrate float64 `json:"carbohydrate" yaml:"carbohydrate"`
}

// Get returns the value for n.
func (v NutrientValues) Get(n Nutrient) float64 {
	switch n {
	case Calories:
		return v.Calories
	case Protein:
		return v.Protein
	case Fat:
		return v.Fat
	case Carbohydrate:
		return v.Carbohydrate
	}
	return 0
}

// Set stores x for n.
func (v *NutrientValues) Set(n Nutrient, x float64) {
	switch n {
	case Calories:
		v.Calories = x
	case Protein:
		v.Protein = x
	case Fat:
		v.Fat = x
	case Carbohydrate:
		v.Carbohydrate = x
	}
}

// Add returns the element-wise sum of v and o.
func (v NutrientValues) Add(o NutrientValues) NutrientValues {
	return NutrientValues{
		Calories:     v.Calories + o.Calories,
		Protein:      v.Protein + o.Protein,
		Fat:          v.Fat + o.Fat,
		Carbohydrate: v.Carbohydrate + o.Carbohydrate,
	}
}

// Scale returns v multiplied by f.
func (v NutrientValues) Scale(f float64) NutrientValues {
	return NutrientValues{
		Calories:     v.Calories * f,
		Protein:      v.Protein * f,
		Fat:          v.Fat * f,
		Carbohydrate: v.Carbohydrate * f,
	}
}

// Round1 rounds every value to one decimal place.
func (v NutrientValues) Round1() NutrientValues {
	return NutrientValues{
		Calories:     Round1(v.Calories),
		Protein:      Round1(v.Protein),
		Fat:          Round1(v.Fat),
		Carbohydrate: Round1(v.Carbohydrate),
	}
}

// NutrientFlags holds one boolean per nutrient.
type NutrientFlags struct {
	Calories     bool `json:"calories" yaml:"calories"`
	Protein      bool `json:"protein" yaml:"protein"`
	Fat          bool `json:"fat" yaml:"fat"`
	Carbohydrate bool `json:"carbohydrate" yaml:"carbohydrate"`
}

// Get returns the flag for n.
func (f NutrientFlags) Get(n Nutrient) bool {
	switch n {
	case Calories:
		return f.Calories
	case Protein:
		return f.Protein
	case Fat:
		return f.Fat
	case Carbohydrate:
		return f.Carbohydrate
	}
	return false
}

// Set stores b for n.
func (f *NutrientFlags) Set(n Nutrient, b bool) {
	switch n {
	case Calories:
		f.Calories = b
	case Protein:
		f.Protein = b
	case Fat:
		f.Fat = b
	case Carbohydrate:
		f.Carbohydrate = b
	}
}

// Count returns how many flags are set.
func (f NutrientFlags) Count() int {
	c := 0
	for _, n := range AllNutrients {
		if f.Get(n) {
			c++
		}
	}
	return c
}

// NutrientLabels holds one string per nutrient (trend labels).
type NutrientLabels struct {
	Calories     string `json:"calories" yaml:"calories"`
	Protein      string `json:"protein" yaml:"protein"`
	Fat          string `json:"fat" yaml:"fat"`
	Carbohydrate string `json:"carbohydrate" yaml:"carbohydrate"`
}

// Get returns the label for n.
func (l NutrientLabels) Get(n Nutrient) string {
	switch n {
	case Calories:
		return l.Calories
	case Protein:
		return l.Protein
	case Fat:
		return l.Fat
	case Carbohydrate:
		return l.Carbohydrate
	}
	return ""
}

// Set stores s for n.
func (l *NutrientLabels) Set(n Nutrient, s string) {
	switch n {
	case Calories:
		l.Calories = s
	case Protein:
		l.Protein = s
	case Fat:
		l.Fat = s
	case Carbohydrate:
		l.Carbohydrate = s
	}
}

// Round1 rounds x to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
