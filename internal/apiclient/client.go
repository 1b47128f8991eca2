// Package apiclient provides an HTTP client for the catalog API. It
// implements the service interfaces the view layer consumes, so a UI can be
// wired straight to a running backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/ui"
)

// Client is an HTTP client for the catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// Option configures the client.
type Option func(*Client)

// New creates a new API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokens resumes a previously issued session.
func WithTokens(accessToken, refreshToken string) Option {
	return func(c *Client) {
		c.accessToken = accessToken
		c.refreshToken = refreshToken
	}
}

// APIError is returned when the server responds with a non-success status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

type authResponse struct {
	User   *models.User         `json:"user"`
	Tokens models.SessionTokens `json:"tokens"`
}

// Login authenticates against the API and stores the issued tokens for
// subsequent requests.
func (c *Client) Login(ctx context.Context, creds ui.Credentials) (models.User, error) {
	payload := map[string]string{
		"username": creds.Username,
		"password": creds.Password,
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", payload, &resp); err != nil {
		return models.User{}, err
	}
	if resp.User == nil {
		return models.User{}, fmt.Errorf("api: login response missing user")
	}

	c.mu.Lock()
	c.accessToken = resp.Tokens.AccessToken
	c.refreshToken = resp.Tokens.RefreshToken
	c.mu.Unlock()

	return *resp.User, nil
}

// Logout revokes the current session and forgets the stored tokens.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()

	err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", map[string]string{"refreshToken": refresh}, nil)

	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()

	return err
}

// Refresh exchanges the stored refresh token for a new session pair.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refreshToken": refresh}, &resp); err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken = resp.Tokens.AccessToken
	c.refreshToken = resp.Tokens.RefreshToken
	c.mu.Unlock()

	return nil
}

// List fetches the public catalog.
func (c *Client) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/v1/profiles", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Add creates a catalog profile.
func (c *Client) Add(ctx context.Context, profile models.Profile) (models.Profile, error) {
	var created models.Profile
	if err := c.do(ctx, http.MethodPost, "/api/v1/profiles", profile, &created); err != nil {
		return models.Profile{}, err
	}
	return created, nil
}

// Update replaces a catalog profile.
func (c *Client) Update(ctx context.Context, profile models.Profile) (models.Profile, error) {
	var updated models.Profile
	if err := c.do(ctx, http.MethodPut, "/api/v1/profiles/"+profile.ID, profile, &updated); err != nil {
		return models.Profile{}, err
	}
	return updated, nil
}

// Delete removes a catalog profile.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/profiles/"+id, nil, nil)
}

// ToggleLike flips the caller's like on a profile and returns it with fresh
// counters.
func (c *Client) ToggleLike(ctx context.Context, id string) (models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPost, "/api/v1/profiles/"+id+"/like", nil, &profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// PrivateProfiles exposes the restricted catalog as a service the view layer
// can consume.
func (c *Client) PrivateProfiles() ui.PrivateProfileService {
	return privateProfileService{c}
}

type privateProfileService struct {
	c *Client
}

func (s privateProfileService) List(ctx context.Context) ([]models.PrivateProfile, error) {
	var profiles []models.PrivateProfile
	if err := s.c.do(ctx, http.MethodGet, "/api/v1/private-profiles", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s privateProfileService) Create(ctx context.Context, profile models.PrivateProfile) (models.PrivateProfile, error) {
	var created models.PrivateProfile
	if err := s.c.do(ctx, http.MethodPost, "/api/v1/private-profiles", profile, &created); err != nil {
		return models.PrivateProfile{}, err
	}
	return created, nil
}

func (s privateProfileService) Update(ctx context.Context, profile models.PrivateProfile) (models.PrivateProfile, error) {
	var updated models.PrivateProfile
	if err := s.c.do(ctx, http.MethodPut, "/api/v1/private-profiles/"+profile.ID, profile, &updated); err != nil {
		return models.PrivateProfile{}, err
	}
	return updated, nil
}

func (s privateProfileService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/v1/private-profiles/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

var (
	_ ui.AuthService    = (*Client)(nil)
	_ ui.ProfileService = (*Client)(nil)
)
