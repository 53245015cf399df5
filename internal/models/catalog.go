// ABOUTME: Catalog identifies which item collection a like or recommendation targets
// ABOUTME: Parsed from CLI arguments and MCP tool inputs
package models

import "fmt"

// Catalog identifies a likable item collection
type Catalog string

const (
	CatalogPost    Catalog = "post"
	CatalogRecipe  Catalog = "recipe"
	CatalogProduct Catalog = "product"
)

// Catalogs lists all known catalogs in display order
func Catalogs() []Catalog {
	return []Catalog{CatalogPost, CatalogRecipe, CatalogProduct}
}

// ParseCatalog converts a user-supplied string into a Catalog
func ParseCatalog(s string) (Catalog, error) {
	switch s {
	case "post", "posts":
		return CatalogPost, nil
	case "recipe", "recipes":
		return CatalogRecipe, nil
	case "product", "products":
		return CatalogProduct, nil
	}
	return "", fmt.Errorf("unknown catalog %q (expected post, recipe, or product)", s)
}
