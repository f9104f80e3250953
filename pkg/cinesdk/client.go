package cinesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a small HTTP client for the cine service. The integration
// tests drive the server through it, and it doubles as a Go SDK.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// token is the bearer token attached to authenticated requests.
	// Set by Signin or SetToken.
	token string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken installs an existing session token for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token, empty if unauthenticated.
func (c *Client) Token() string {
	return c.token
}

// Signup registers a new account and returns the created profile.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	var user UserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/signup", req, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Signin authenticates and stores the returned session token on the
// client, so subsequent calls are authenticated.
func (c *Client) Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error) {
	var resp SigninResponse
	if err := c.doJSON(ctx, http.MethodPost, "/signin", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

// UpdatePassword changes the password of the authenticated user.
func (c *Client) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	var status StatusResponse
	return c.doJSON(ctx, http.MethodPut, "/update-password", req, &status, http.StatusOK)
}

// GetInfo fetches the authenticated user's profile.
func (c *Client) GetInfo(ctx context.Context) (*UserResponse, error) {
	var user UserResponse
	if err := c.doJSON(ctx, http.MethodGet, "/info", nil, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListFavorites fetches the authenticated user's favorites in insertion
// order.
func (c *Client) ListFavorites(ctx context.Context) ([]FavoriteResponse, error) {
	var resp ListFavoritesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/favorites", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// AddFavorite bookmarks a catalog title and returns the stored record.
func (c *Client) AddFavorite(ctx context.Context, req AddFavoriteRequest) (*FavoriteResponse, error) {
	var fav FavoriteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/favorites", req, &fav, http.StatusCreated); err != nil {
		return nil, err
	}
	return &fav, nil
}

// RemoveFavorite deletes a favorite by id.
func (c *Client) RemoveFavorite(ctx context.Context, favoriteID string) error {
	var status StatusResponse
	path := "/favorites/" + url.PathEscape(favoriteID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, &status, http.StatusOK)
}

// doJSON performs a request with an optional JSON body, decodes the
// expected-status response into target, and maps everything else through
// parseErrorResponse.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	reqBody, target any,
	expectedStatus int,
) error {
	var body io.Reader
	if reqBody != nil {
		buf, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, target, expectedStatus)
}
