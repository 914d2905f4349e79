// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hearth-estates/hearth/lib/schema"
)

// maxResponseBytes caps how much of a response body the client will
// read. Listing payloads are a few hundred KB at most; anything
// larger indicates a server fault, not data.
const maxResponseBytes = 8 << 20

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the API root (e.g., "https://api.hearth.example/api").
	BaseURL string

	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is an unauthenticated API client. It holds the base URL and
// HTTP transport, shared across Sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new unauthenticated API client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Register creates a new account. The server assigns CUSTOMER or
// PROPERTY_OWNER per the request; self-registration as ADMIN is
// refused here without a network call, matching the server's rule.
func (c *Client) Register(ctx context.Context, request RegisterRequest) error {
	if request.Email == "" || request.Password == "" || request.Name == "" {
		return fmt.Errorf("api: name, email, and password are required")
	}
	if request.Role == schema.RoleAdmin {
		return fmt.Errorf("api: cannot register as ADMIN")
	}
	if _, err := c.doRequest(ctx, http.MethodPost, "/users/register", "", request, nil); err != nil {
		return fmt.Errorf("api: registration failed: %w", err)
	}
	return nil
}

// Login authenticates with email and password, returning an
// authenticated Session holding the bearer token and the principal
// identity from the login response.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("api: email and password are required")
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	var auth AuthResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("api: failed to parse login response: %w", err)
	}

	c.logger.Info("logged in",
		"user_id", auth.UserID,
		"role", auth.UserRole,
	)

	return &Session{
		client:    c,
		token:     auth.Token,
		principal: auth.Principal(),
	}, nil
}

// SessionFromToken resumes a Session from a previously issued token
// and its principal. The token is not validated here — the first
// authenticated call fails if it is expired or revoked.
func (c *Client) SessionFromToken(principal schema.Principal, token string) *Session {
	return &Session{
		client:    c,
		token:     token,
		principal: principal,
	}
}

// SearchProperties lists properties matching the query. The query is
// built by the listing package's Filter; empty filter fields are
// omitted rather than sent as wildcards, and the server does all of
// the filtering. The result is a finite snapshot — re-query to
// refresh.
func (c *Client) SearchProperties(ctx context.Context, query url.Values) ([]schema.Property, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/properties", "", nil, query)
	if err != nil {
		return nil, fmt.Errorf("api: property search failed: %w", err)
	}

	var properties []schema.Property
	if err := json.Unmarshal(body, &properties); err != nil {
		return nil, fmt.Errorf("api: failed to parse property list: %w", err)
	}
	return properties, nil
}

// GetProperty fetches a single listing by ID.
func (c *Client) GetProperty(ctx context.Context, id int64) (*schema.Property, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/properties/"+strconv.FormatInt(id, 10), "", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching property %d: %w", id, err)
	}

	var property schema.Property
	if err := json.Unmarshal(body, &property); err != nil {
		return nil, fmt.Errorf("api: failed to parse property: %w", err)
	}
	return &property, nil
}

// Contact submits the public contact form.
func (c *Client) Contact(ctx context.Context, request ContactRequest) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/public/contact", "", request, nil); err != nil {
		return fmt.Errorf("api: contact submission failed: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request and returns the response body.
// On 2xx, returns the body. On any other status, returns a *Error
// carrying the status code and the server's message. token may be
// empty for unauthenticated endpoints; query may be nil.
//
// Every request carries a fresh X-Request-ID so a failure in the
// client log can be matched to the server's log line.
func (c *Client) doRequest(ctx context.Context, method, path, token string, requestBody any, query url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	request.Header.Set("X-Request-ID", requestID)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	c.logger.Debug("request failed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
	)

	// Error bodies are JSON with the message under "error" or
	// "message". A non-JSON body still produces a classified *Error,
	// with the raw body as the message.
	var parsed errorBody
	message := strings.TrimSpace(string(responseBody))
	if err := json.Unmarshal(responseBody, &parsed); err == nil && parsed.text() != "" {
		message = parsed.text()
	}
	return nil, &Error{
		StatusCode: response.StatusCode,
		Message:    message,
		RequestID:  requestID,
	}
}

// doRequestRaw performs a request with a caller-built body and
// content type (multipart image upload).
func (c *Client) doRequestRaw(ctx context.Context, method, path, token, contentType string, body io.Reader) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	request.Header.Set("X-Request-ID", requestID)
	request.Header.Set("Content-Type", contentType)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	var parsed errorBody
	message := strings.TrimSpace(string(responseBody))
	if err := json.Unmarshal(responseBody, &parsed); err == nil && parsed.text() != "" {
		message = parsed.text()
	}
	return nil, &Error{
		StatusCode: response.StatusCode,
		Message:    message,
		RequestID:  requestID,
	}
}
