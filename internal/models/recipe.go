// ABOUTME: Recipe represents a recipe from the catalog API
// ABOUTME: Affinity keys combine tags with prefixed cuisine and meal-type labels
package models

// Recipe represents a recipe
type Recipe struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Cuisine    string   `json:"cuisine"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
	MealType   []string `json:"mealType"`
	Rating     float64  `json:"rating"`
}

// AffinityKeys returns the interest keys a like on this recipe contributes to:
// every tag, plus "cuisine:<cuisine>" and "meal:<type>" for each meal type.
func (r Recipe) AffinityKeys() []string {
	keys := append([]string(nil), r.Tags...)
	if r.Cuisine != "" {
		keys = append(keys, "cuisine:"+r.Cuisine)
	}
	for _, m := range r.MealType {
		keys = append(keys, "meal:"+m)
	}
	return keys
}
