// ABOUTME: MCP tool definitions and registration for the taste server
// ABOUTME: Defines JSON schemas for the 6 like/recommendation tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/tastekit/taste/internal/api"
	"github.com/tastekit/taste/internal/config"
	"github.com/tastekit/taste/internal/storage"
)

var catalogProperty = map[string]interface{}{
	"type":        "string",
	"description": "Catalog to operate on: post, recipe, or product",
	"enum":        []string{"post", "recipe", "product"},
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage, client *api.Client, cfg *config.Config) *Handlers {
	handlers := &Handlers{
		storage: store,
		client:  client,
		cfg:     cfg,
	}

	// 1. like_item - record a like for the logged-in user
	server.AddTool(mcp.Tool{
		Name:        "like_item",
		Description: "Like a catalog item for the logged-in user. Updates the user's affinity scores for the item's tags, category, cuisine, and meal types.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"catalog": catalogProperty,
				"item_id": map[string]interface{}{
					"type":        "number",
					"description": "Id of the item to like",
				},
			},
			Required: []string{"catalog", "item_id"},
		},
	}, handlers.LikeItem)

	// 2. unlike_item - remove a like (affinity scores are kept)
	server.AddTool(mcp.Tool{
		Name:        "unlike_item",
		Description: "Remove a like for the logged-in user. Accumulated affinity scores are kept; only the liked-items list changes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"catalog": catalogProperty,
				"item_id": map[string]interface{}{
					"type":        "number",
					"description": "Id of the item to unlike",
				},
			},
			Required: []string{"catalog", "item_id"},
		},
	}, handlers.UnlikeItem)

	// 3. list_liked_items - the user's liked ids per catalog
	server.AddTool(mcp.Tool{
		Name:        "list_liked_items",
		Description: "List the ids of every item the logged-in user currently likes in a catalog.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"catalog": catalogProperty,
			},
			Required: []string{"catalog"},
		},
	}, handlers.ListLikedItems)

	// 4. recommend_items - affinity-ranked recommendations
	server.AddTool(mcp.Tool{
		Name:        "recommend_items",
		Description: "Recommend unliked catalog items for the logged-in user, ranked by accumulated affinity. Items with zero affinity are never returned.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"catalog": catalogProperty,
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of recommendations (default: 6)",
					"default":     6,
				},
			},
			Required: []string{"catalog"},
		},
	}, handlers.RecommendItems)

	// 5. get_taste_profile - raw affinity scores per catalog
	server.AddTool(mcp.Tool{
		Name:        "get_taste_profile",
		Description: "Get the logged-in user's affinity scores per catalog: tag, category, cuisine, and meal-type keys with their accumulated like counts.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetTasteProfile)

	// 6. recommend_users - device-scoped account suggestions
	server.AddTool(mcp.Tool{
		Name:        "recommend_users",
		Description: "Recommend accounts for this device based on past login selections, most frequently chosen first. Works before any login.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RecommendUsers)

	return handlers
}
