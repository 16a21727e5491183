// Package client talks to the Travlr REST API on behalf of the admin tools.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/xyz-asif/travlr/internal/features/auth"
	"github.com/xyz-asif/travlr/internal/features/trips"
	"github.com/xyz-asif/travlr/internal/pkg/jwt"
	"github.com/xyz-asif/travlr/internal/pkg/response"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

// DefaultBaseURL matches the local development server.
const DefaultBaseURL = "http://localhost:3000/api"

// TokenStore persists the session token between runs.
type TokenStore interface {
	Token() (string, error)
	SaveToken(token string) error
}

// APIError is a non-2xx reply from the API.
type APIError struct {
	response.APIResponse
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Is maps status codes onto the shared sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case apperrors.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case apperrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case apperrors.ErrValidation:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// Client is the trip data service. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore loads and persists the session token.
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.tokens = s }
}

// New builds a client for baseURL, e.g. http://localhost:3000/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to load token: %w", err)
		}
		if expired(tok, time.Now()) {
			if err := c.tokens.SaveToken(""); err != nil {
				return nil, fmt.Errorf("failed to discard expired token: %w", err)
			}
			tok = ""
		}
		c.token = tok
	}
	return c, nil
}

// expired reports whether tok carries an exp at or before now. Tokens whose
// claims cannot be read are left for the server to judge.
func expired(tok string, now time.Time) bool {
	if tok == "" {
		return false
	}
	exp, err := jwt.PeekExpiry(tok)
	if err != nil {
		return false
	}
	return !exp.After(now)
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the session token and persists it when a store is set.
func (c *Client) SetToken(token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.tokens == nil {
		return nil
	}
	return c.tokens.SaveToken(token)
}

// GetTrips lists every trip. The API answers 404 when there are none.
func (c *Client) GetTrips(ctx context.Context) ([]trips.TripResponse, error) {
	var out []trips.TripResponse
	if err := c.do(ctx, http.MethodGet, "/trips", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTrip fetches one trip by code.
func (c *Client) GetTrip(ctx context.Context, code string) (*trips.TripResponse, error) {
	var out trips.TripResponse
	if err := c.do(ctx, http.MethodGet, "/trips/"+url.PathEscape(code), nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddTrip creates a trip. Requires a token.
func (c *Client) AddTrip(ctx context.Context, req trips.TripRequest) (*trips.TripResponse, error) {
	var out trips.TripResponse
	if err := c.do(ctx, http.MethodPost, "/trips", req, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTrip updates the trip named by req.Code. Requires a token.
func (c *Client) UpdateTrip(ctx context.Context, req trips.TripRequest) (*trips.TripResponse, error) {
	if req.Code == nil || strings.TrimSpace(*req.Code) == "" {
		return nil, apperrors.NewFieldError("code", apperrors.ReasonRequired, "Trip code is required")
	}
	return c.UpdateTripByCode(ctx, *req.Code, req)
}

// UpdateTripByCode updates code, which may differ from req.Code on a rename.
func (c *Client) UpdateTripByCode(ctx context.Context, code string, req trips.TripRequest) (*trips.TripResponse, error) {
	var out trips.TripResponse
	if err := c.do(ctx, http.MethodPut, "/trips/"+url.PathEscape(code), req, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs in and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/login", auth.LoginRequest{Email: email, Password: password})
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	return c.authenticate(ctx, "/register", auth.RegisterRequest{Name: name, Email: email, Password: password})
}

// Logout forgets the session token.
func (c *Client) Logout() error {
	return c.SetToken("")
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (string, error) {
	var out auth.TokenResponse
	if err := c.do(ctx, http.MethodPost, path, body, false, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("server returned an empty token")
	}
	if err := c.SetToken(out.Token); err != nil {
		return "", fmt.Errorf("failed to save token: %w", err)
	}
	return out.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, authenticated bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		tok := c.Token()
		if tok == "" {
			return fmt.Errorf("%w: not logged in", apperrors.ErrUnauthorized)
		}
		if expired(tok, time.Now()) {
			_ = c.SetToken("")
			return fmt.Errorf("%w: session expired, log in again", apperrors.ErrUnauthorized)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{}
		if json.Unmarshal(data, &apiErr.APIResponse) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
