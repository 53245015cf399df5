// ABOUTME: MCP tool handler implementations for the taste server
// ABOUTME: Session-gated like operations and device-scoped recommendations
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tastekit/taste/internal/api"
	"github.com/tastekit/taste/internal/config"
	"github.com/tastekit/taste/internal/core"
	"github.com/tastekit/taste/internal/models"
	"github.com/tastekit/taste/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage *storage.Storage
	client  *api.Client
	cfg     *config.Config
}

// currentUserID resolves the logged-in user from the saved session
func (h *Handlers) currentUserID() (int, error) {
	session, err := models.LoadSession(h.cfg.DataDir)
	if err != nil {
		return 0, fmt.Errorf("loading session: %w", err)
	}
	if session == nil {
		return 0, fmt.Errorf("not logged in; run `taste login` first")
	}
	return session.ID, nil
}

// catalogArg extracts and validates the catalog argument
func catalogArg(request mcp.CallToolRequest) (models.Catalog, *mcp.CallToolResult) {
	raw, err := request.RequireString("catalog")
	if err != nil {
		return "", mcp.NewToolResultError("catalog argument is required and must be a string")
	}
	catalog, err := models.ParseCatalog(raw)
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return catalog, nil
}

// LikeItem handles the like_item tool
func (h *Handlers) LikeItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog, errResult := catalogArg(request)
	if errResult != nil {
		return errResult, nil
	}

	itemID := request.GetInt("item_id", 0)
	if itemID <= 0 {
		return mcp.NewToolResultError("item_id argument is required and must be a positive number"), nil
	}

	userID, err := h.currentUserID()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	keys, err := h.client.FetchItemKeys(ctx, catalog, itemID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching %s %d: %v", catalog, itemID, err)), nil
	}

	if err := h.storage.Likes(catalog).AddLike(userID, itemID, keys); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recording like: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"catalog":       string(catalog),
		"item_id":       itemID,
		"affinity_keys": keys,
		"liked":         true,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// UnlikeItem handles the unlike_item tool
func (h *Handlers) UnlikeItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog, errResult := catalogArg(request)
	if errResult != nil {
		return errResult, nil
	}

	itemID := request.GetInt("item_id", 0)
	if itemID <= 0 {
		return mcp.NewToolResultError("item_id argument is required and must be a positive number"), nil
	}

	userID, err := h.currentUserID()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.storage.Likes(catalog).RemoveLike(userID, itemID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("removing like: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"catalog": string(catalog),
		"item_id": itemID,
		"liked":   false,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListLikedItems handles the list_liked_items tool
func (h *Handlers) ListLikedItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog, errResult := catalogArg(request)
	if errResult != nil {
		return errResult, nil
	}

	userID, err := h.currentUserID()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ids, err := h.storage.Likes(catalog).LikedIDs(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing likes: %v", err)), nil
	}
	if ids == nil {
		ids = []int{}
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"catalog":  string(catalog),
		"item_ids": ids,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RecommendItems handles the recommend_items tool
func (h *Handlers) RecommendItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog, errResult := catalogArg(request)
	if errResult != nil {
		return errResult, nil
	}

	limit := request.GetInt("limit", h.cfg.RecommendedItems)

	userID, err := h.currentUserID()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	candidates, keysByID, err := h.client.FetchCandidates(ctx, catalog, h.cfg.PageLimit, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching candidates: %v", err)), nil
	}

	scores, err := h.storage.Likes(catalog).Scores(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading scores: %v", err)), nil
	}

	liked, err := h.storage.LikedSet(catalog, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading likes: %v", err)), nil
	}

	recommended := core.RankByAffinity(candidates,
		func(id int) []string { return keysByID[id] },
		scores, liked, limit)
	if recommended == nil {
		recommended = []int{}
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"catalog":  string(catalog),
		"item_ids": recommended,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetTasteProfile handles the get_taste_profile tool
func (h *Handlers) GetTasteProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := h.currentUserID()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	profile := make(map[string]map[string]int)
	for _, catalog := range models.Catalogs() {
		scores, err := h.storage.Likes(catalog).Scores(userID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading %s scores: %v", catalog, err)), nil
		}
		profile[string(catalog)] = scores
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"user_id": userID,
		"scores":  profile,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RecommendUsers handles the recommend_users tool
func (h *Handlers) RecommendUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := h.storage.RecommendedUserIDs(h.cfg.RecommendedUsers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking selections: %v", err)), nil
	}
	if ids == nil {
		ids = []int{}
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"device_id": h.storage.DeviceID(),
		"user_ids":  ids,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
