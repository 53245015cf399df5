// ABOUTME: Product represents a product from the catalog API
// ABOUTME: Affinity keys are a prefixed category label followed by the product's tags
package models

// Product represents a product
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
}

// AffinityKeys returns the interest keys a like on this product contributes to:
// "category:<category>" (omitted when the category is empty), then every tag.
func (p Product) AffinityKeys() []string {
	var keys []string
	if p.Category != "" {
		keys = append(keys, "category:"+p.Category)
	}
	return append(keys, p.Tags...)
}
