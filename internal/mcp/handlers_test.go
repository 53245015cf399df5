// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Exercises the like/recommend tools against in-memory storage and a fake API

package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tastekit/taste/internal/api"
	"github.com/tastekit/taste/internal/config"
	"github.com/tastekit/taste/internal/models"
	"github.com/tastekit/taste/internal/storage"
)

func newTestHandlers(t *testing.T, loggedIn bool) *Handlers {
	t.Helper()

	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	mux := http.NewServeMux()
	mux.HandleFunc("/posts/10", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 10, "tags": ["tech", "ai"]}`))
	})
	mux.HandleFunc("/posts/11", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 11, "tags": ["tech"]}`))
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"posts": [
			{"id": 10, "tags": ["tech", "ai"]},
			{"id": 11, "tags": ["tech"]},
			{"id": 12, "tags": ["tech"]},
			{"id": 13, "tags": ["gardening"]}
		], "total": 4, "skip": 0, "limit": 20}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	dataDir := t.TempDir()
	if loggedIn {
		session := &models.Session{ID: 1, Username: "emilys", LoginAt: time.Now()}
		if err := session.Save(dataDir); err != nil {
			t.Fatalf("saving test session: %v", err)
		}
	}

	client := api.NewClient(&api.ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 0,
		RetryDelay: time.Millisecond,
	})

	return &Handlers{
		storage: store,
		client:  client,
		cfg: &config.Config{
			DataDir:          dataDir,
			PageLimit:        20,
			RecommendedItems: 6,
			RecommendedUsers: 3,
		},
	}
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestLikeItem_RecordsLikeAndScores(t *testing.T) {
	h := newTestHandlers(t, true)

	result, err := h.LikeItem(context.Background(), callRequest("like_item", map[string]interface{}{
		"catalog": "post",
		"item_id": float64(10),
	}))
	if err != nil {
		t.Fatalf("LikeItem() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("LikeItem() returned tool error: %s", resultText(t, result))
	}

	var response struct {
		Catalog      string   `json:"catalog"`
		ItemID       int      `json:"item_id"`
		AffinityKeys []string `json:"affinity_keys"`
		Liked        bool     `json:"liked"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !response.Liked || response.ItemID != 10 {
		t.Errorf("response = %+v", response)
	}
	if !reflect.DeepEqual(response.AffinityKeys, []string{"tech", "ai"}) {
		t.Errorf("AffinityKeys = %v, want [tech ai]", response.AffinityKeys)
	}

	scores, err := h.storage.Likes(models.CatalogPost).Scores(1)
	if err != nil {
		t.Fatalf("Scores() error = %v", err)
	}
	if scores["tech"] != 1 || scores["ai"] != 1 {
		t.Errorf("scores = %v, want tech:1 ai:1", scores)
	}
}

func TestLikeItem_NotLoggedIn(t *testing.T) {
	h := newTestHandlers(t, false)

	result, err := h.LikeItem(context.Background(), callRequest("like_item", map[string]interface{}{
		"catalog": "post",
		"item_id": float64(10),
	}))
	if err != nil {
		t.Fatalf("LikeItem() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("LikeItem() should return a tool error when not logged in")
	}
	if !strings.Contains(resultText(t, result), "not logged in") {
		t.Errorf("error text = %q", resultText(t, result))
	}
}

func TestLikeItem_BadArguments(t *testing.T) {
	h := newTestHandlers(t, true)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing catalog", map[string]interface{}{"item_id": float64(10)}},
		{"unknown catalog", map[string]interface{}{"catalog": "movie", "item_id": float64(10)}},
		{"missing item id", map[string]interface{}{"catalog": "post"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.LikeItem(context.Background(), callRequest("like_item", tt.args))
			if err != nil {
				t.Fatalf("LikeItem() error = %v", err)
			}
			if !result.IsError {
				t.Error("LikeItem() should return a tool error")
			}
		})
	}
}

func TestUnlikeItem_KeepsScores(t *testing.T) {
	h := newTestHandlers(t, true)

	if err := h.storage.Likes(models.CatalogPost).AddLike(1, 10, []string{"tech", "ai"}); err != nil {
		t.Fatalf("AddLike() error = %v", err)
	}

	result, err := h.UnlikeItem(context.Background(), callRequest("unlike_item", map[string]interface{}{
		"catalog": "post",
		"item_id": float64(10),
	}))
	if err != nil {
		t.Fatalf("UnlikeItem() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("UnlikeItem() returned tool error: %s", resultText(t, result))
	}

	ids, err := h.storage.Likes(models.CatalogPost).LikedIDs(1)
	if err != nil {
		t.Fatalf("LikedIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("LikedIDs() = %v, want empty", ids)
	}

	scores, err := h.storage.Likes(models.CatalogPost).Scores(1)
	if err != nil {
		t.Fatalf("Scores() error = %v", err)
	}
	if scores["tech"] != 1 {
		t.Errorf("scores after unlike = %v, want tech kept at 1", scores)
	}
}

func TestListLikedItems(t *testing.T) {
	h := newTestHandlers(t, true)

	for _, id := range []int{10, 11} {
		if err := h.storage.Likes(models.CatalogPost).AddLike(1, id, nil); err != nil {
			t.Fatalf("AddLike() error = %v", err)
		}
	}

	result, err := h.ListLikedItems(context.Background(), callRequest("list_liked_items", map[string]interface{}{
		"catalog": "post",
	}))
	if err != nil {
		t.Fatalf("ListLikedItems() error = %v", err)
	}

	var response struct {
		ItemIDs []int `json:"item_ids"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !reflect.DeepEqual(response.ItemIDs, []int{10, 11}) {
		t.Errorf("ItemIDs = %v, want [10 11]", response.ItemIDs)
	}
}

func TestRecommendItems_RanksUnlikedByAffinity(t *testing.T) {
	h := newTestHandlers(t, true)

	// Likes 10 (tech+ai) and 11 (tech): tech=2, ai=1.
	// Candidates 12 (tech → 2) recommended; 13 (gardening → 0) dropped.
	for _, like := range []struct {
		id   int
		keys []string
	}{
		{10, []string{"tech", "ai"}},
		{11, []string{"tech"}},
	} {
		if err := h.storage.Likes(models.CatalogPost).AddLike(1, like.id, like.keys); err != nil {
			t.Fatalf("AddLike() error = %v", err)
		}
	}

	result, err := h.RecommendItems(context.Background(), callRequest("recommend_items", map[string]interface{}{
		"catalog": "post",
	}))
	if err != nil {
		t.Fatalf("RecommendItems() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("RecommendItems() returned tool error: %s", resultText(t, result))
	}

	var response struct {
		ItemIDs []int `json:"item_ids"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !reflect.DeepEqual(response.ItemIDs, []int{12}) {
		t.Errorf("ItemIDs = %v, want [12]", response.ItemIDs)
	}
}

func TestGetTasteProfile(t *testing.T) {
	h := newTestHandlers(t, true)

	if err := h.storage.Likes(models.CatalogRecipe).AddLike(1, 3, []string{"pasta", "cuisine:Italian"}); err != nil {
		t.Fatalf("AddLike() error = %v", err)
	}

	result, err := h.GetTasteProfile(context.Background(), callRequest("get_taste_profile", nil))
	if err != nil {
		t.Fatalf("GetTasteProfile() error = %v", err)
	}

	var response struct {
		UserID int                       `json:"user_id"`
		Scores map[string]map[string]int `json:"scores"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.UserID != 1 {
		t.Errorf("UserID = %d, want 1", response.UserID)
	}
	if response.Scores["recipe"]["cuisine:Italian"] != 1 {
		t.Errorf("Scores = %v", response.Scores)
	}
}

func TestRecommendUsers_NoLoginRequired(t *testing.T) {
	h := newTestHandlers(t, false)

	for _, userID := range []int{5, 5, 3} {
		if err := h.storage.RecordSelection(userID); err != nil {
			t.Fatalf("RecordSelection() error = %v", err)
		}
	}

	result, err := h.RecommendUsers(context.Background(), callRequest("recommend_users", nil))
	if err != nil {
		t.Fatalf("RecommendUsers() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("RecommendUsers() returned tool error: %s", resultText(t, result))
	}

	var response struct {
		UserIDs []int `json:"user_ids"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !reflect.DeepEqual(response.UserIDs, []int{5, 3}) {
		t.Errorf("UserIDs = %v, want [5 3]", response.UserIDs)
	}
}
