package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenSource provides the bearer token for authenticated calls. The token
// is read through it on every request, never cached inside the client, so a
// sign-in or logout in between calls takes effect immediately.
type TokenSource interface {
	Token() (string, error)
}

// Client is the façade over the notification platform API: one method per
// REST operation, each performing exactly one HTTP call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRequestRate caps outgoing requests per second.
func WithRequestRate(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient builds a façade against baseURL. tokens may be nil for a client
// that only signs in.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(10), 1),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignIn exchanges credentials for the admin profile and a bearer token.
// It is the only call made without an Authorization header.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	var out SignInResponse
	if err := c.do(ctx, "signin", http.MethodPost, "/api/auth/signin", false, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Category operations

func (c *Client) AllCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, "allcategorys", http.MethodGet, "/api/category/allcategorys", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddCategory(ctx context.Context, category Category) (*Category, error) {
	var out Category
	if err := c.do(ctx, "addcategory", http.MethodPost, "/api/category/addcategory", true, category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, category Category) (*Category, error) {
	var out Category
	if err := c.do(ctx, "updatecategory", http.MethodPost, "/api/category/updatecategory", true, category, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeCategoryStatus toggles the active flag server-side.
func (c *Client) ChangeCategoryStatus(ctx context.Context, id int64) (*Category, error) {
	var out Category
	path := fmt.Sprintf("/api/category/statuschange/%d", id)
	if err := c.do(ctx, "statuschange", http.MethodPut, path, true, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Collaborator operations

func (c *Client) AllCollaborators(ctx context.Context) ([]Collaborator, error) {
	var out []Collaborator
	if err := c.do(ctx, "allcollaborators", http.MethodGet, "/api/collaborator/allcollaborators", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddCollaborator(ctx context.Context, collaborator Collaborator) (*Collaborator, error) {
	var out Collaborator
	if err := c.do(ctx, "addcollaborator", http.MethodPost, "/api/collaborator/addcollaborator", true, collaborator, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCollaborator(ctx context.Context, collaborator Collaborator) (*Collaborator, error) {
	var out Collaborator
	if err := c.do(ctx, "updatecollaborator", http.MethodPost, "/api/collaborator/updatecollaborator", true, collaborator, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DisableCollaborator toggles the active flag server-side (the endpoint
// name is historical, it both disables and re-enables).
func (c *Client) DisableCollaborator(ctx context.Context, id string) (*Collaborator, error) {
	var out Collaborator
	path := "/api/collaborator/disablecollaborator/" + id
	if err := c.do(ctx, "disablecollaborator", http.MethodPut, path, true, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notification operations

func (c *Client) AllNotifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.do(ctx, "getallnotifications", http.MethodGet, "/api/notification/getallnotifications", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AllTemplates(ctx context.Context) ([]Template, error) {
	var out []Template
	if err := c.do(ctx, "getalltemplates", http.MethodGet, "/api/notification/getalltemplates", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendNotification(ctx context.Context, notification Notification) (*Notification, error) {
	var out Notification
	if err := c.do(ctx, "sendnotification", http.MethodPost, "/api/notification/sendnotification", true, notification, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EnableNotification(ctx context.Context, id int64) (*Notification, error) {
	var out Notification
	path := fmt.Sprintf("/api/notification/enablenotification/%d", id)
	if err := c.do(ctx, "enablenotification", http.MethodPut, path, true, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNotification removes a notification. The server exposes this as a
// PUT with an empty body.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/notification/deletenotification/%d", id)
	return c.do(ctx, "deletenotification", http.MethodPut, path, true, struct{}{}, nil)
}

// do performs a single JSON request/response cycle. authed calls read the
// bearer token fresh from the token source. Non-2xx responses become a
// typed *Error with the server message when one is present.
func (c *Client) do(ctx context.Context, op, method, path string, authed bool, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var reader *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reader = bytes.NewBuffer(jsonData)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if c.tokens == nil {
			return &Error{Op: op, Status: http.StatusUnauthorized, Message: "no token source configured"}
		}
		token, err := c.tokens.Token()
		if err != nil {
			return &Error{Op: op, Status: http.StatusUnauthorized, Message: "not signed in"}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("api request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close() // Ensure the response body is closed

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Op: op, Status: resp.StatusCode}
		var eb errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil {
			apiErr.Message = eb.Message
		}
		c.log.Warn("api request failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}
