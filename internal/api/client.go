// ABOUTME: HTTP client for the DummyJSON catalog API
// ABOUTME: Paginated list fetches, single-item lookups, and login
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tastekit/taste/internal/models"
	"github.com/tastekit/taste/internal/util"
)

// DefaultBaseURL is the public demo API
const DefaultBaseURL = "https://dummyjson.com"

// ClientConfig holds configuration for the catalog client
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    DefaultBaseURL,
		Timeout:    15 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// Client talks to the catalog API
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a catalog client with the given configuration
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}
}

// PostPage is one page of the posts listing
type PostPage struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// RecipePage is one page of the recipes listing
type RecipePage struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int             `json:"total"`
	Skip    int             `json:"skip"`
	Limit   int             `json:"limit"`
}

// ProductPage is one page of the products listing
type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// UserPage is one page of the user directory
type UserPage struct {
	Users []models.User `json:"users"`
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// FetchPosts fetches one page of posts
func (c *Client) FetchPosts(ctx context.Context, limit, skip int) (*PostPage, error) {
	var page PostPage
	if err := c.getJSON(ctx, fmt.Sprintf("/posts?limit=%d&skip=%d", limit, skip), &page); err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	return &page, nil
}

// FetchPost fetches a single post by id
func (c *Client) FetchPost(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d", id), &post); err != nil {
		return nil, fmt.Errorf("fetching post %d: %w", id, err)
	}
	return &post, nil
}

// FetchRecipes fetches one page of recipes
func (c *Client) FetchRecipes(ctx context.Context, limit, skip int) (*RecipePage, error) {
	var page RecipePage
	if err := c.getJSON(ctx, fmt.Sprintf("/recipes?limit=%d&skip=%d", limit, skip), &page); err != nil {
		return nil, fmt.Errorf("fetching recipes: %w", err)
	}
	return &page, nil
}

// FetchRecipe fetches a single recipe by id
func (c *Client) FetchRecipe(ctx context.Context, id int) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.getJSON(ctx, fmt.Sprintf("/recipes/%d", id), &recipe); err != nil {
		return nil, fmt.Errorf("fetching recipe %d: %w", id, err)
	}
	return &recipe, nil
}

// FetchProducts fetches one page of products
func (c *Client) FetchProducts(ctx context.Context, limit, skip int) (*ProductPage, error) {
	var page ProductPage
	if err := c.getJSON(ctx, fmt.Sprintf("/products?limit=%d&skip=%d", limit, skip), &page); err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	return &page, nil
}

// FetchProduct fetches a single product by id
func (c *Client) FetchProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, fmt.Errorf("fetching product %d: %w", id, err)
	}
	return &product, nil
}

// FetchUsers fetches one page of the user directory
func (c *Client) FetchUsers(ctx context.Context, limit, skip int) (*UserPage, error) {
	var page UserPage
	if err := c.getJSON(ctx, fmt.Sprintf("/users?limit=%d&skip=%d", limit, skip), &page); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return &page, nil
}

// Login authenticates against the API and returns the session identity.
// Authentication failures surface the server's message.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Session, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("login failed: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("login failed: status %d", resp.StatusCode)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	session.LoginAt = time.Now()

	return &session, nil
}

// getJSON performs a GET with retries on transport errors and 5xx responses
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("status %d from %s", resp.StatusCode, path)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return fmt.Errorf("status %d from %s", resp.StatusCode, path)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decoding response from %s: %w", path, err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
