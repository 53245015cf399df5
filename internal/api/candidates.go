// ABOUTME: Catalog-generic adapters from API pages to ranker inputs
// ABOUTME: Shared by the CLI commands and the MCP handlers
package api

import (
	"context"
	"fmt"

	"github.com/tastekit/taste/internal/models"
)

// FetchCandidates fetches one page of the catalog and returns the item
// ids in listing order together with each item's affinity keys.
func (c *Client) FetchCandidates(ctx context.Context, catalog models.Catalog, limit, skip int) ([]int, map[int][]string, error) {
	ids := []int{}
	keys := make(map[int][]string)

	switch catalog {
	case models.CatalogPost:
		page, err := c.FetchPosts(ctx, limit, skip)
		if err != nil {
			return nil, nil, err
		}
		for _, post := range page.Posts {
			ids = append(ids, post.ID)
			keys[post.ID] = post.AffinityKeys()
		}
	case models.CatalogRecipe:
		page, err := c.FetchRecipes(ctx, limit, skip)
		if err != nil {
			return nil, nil, err
		}
		for _, recipe := range page.Recipes {
			ids = append(ids, recipe.ID)
			keys[recipe.ID] = recipe.AffinityKeys()
		}
	case models.CatalogProduct:
		page, err := c.FetchProducts(ctx, limit, skip)
		if err != nil {
			return nil, nil, err
		}
		for _, product := range page.Products {
			ids = append(ids, product.ID)
			keys[product.ID] = product.AffinityKeys()
		}
	default:
		return nil, nil, fmt.Errorf("unknown catalog %q", catalog)
	}

	return ids, keys, nil
}

// FetchItemKeys fetches a single catalog item and returns its affinity keys
func (c *Client) FetchItemKeys(ctx context.Context, catalog models.Catalog, id int) ([]string, error) {
	switch catalog {
	case models.CatalogPost:
		post, err := c.FetchPost(ctx, id)
		if err != nil {
			return nil, err
		}
		return post.AffinityKeys(), nil
	case models.CatalogRecipe:
		recipe, err := c.FetchRecipe(ctx, id)
		if err != nil {
			return nil, err
		}
		return recipe.AffinityKeys(), nil
	case models.CatalogProduct:
		product, err := c.FetchProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		return product.AffinityKeys(), nil
	}
	return nil, fmt.Errorf("unknown catalog %q", catalog)
}
