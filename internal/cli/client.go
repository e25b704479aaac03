package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP client for the fijas API
type Client struct {
	baseURL    string
	httpClient *http.Client
	// debug receives a trace of each request when set
	debug io.Writer
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetDebugWriter enables request tracing to w
func (c *Client) SetDebugWriter(w io.Writer) {
	c.debug = w
}

// APIError represents an error response from the API
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error implements error
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request
func (c *Client) Do(method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.debug != nil {
		fmt.Fprintf(c.debug, "> %s %s\n", method, req.URL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.debug != nil {
		fmt.Fprintf(c.debug, "< %s\n", resp.Status)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			errResp.Error.Status = resp.StatusCode
			return &errResp.Error
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}

// CreateRoom calls POST /api/v1/rooms
func (c *Client) CreateRoom(code, password, username string) (Room, error) {
	var room Room
	err := c.Post("/api/v1/rooms", map[string]string{
		"code":     code,
		"password": password,
		"username": username,
	}, &room)
	return room, err
}

// GetRoom calls GET /api/v1/rooms/{code}
func (c *Client) GetRoom(code string) (Room, error) {
	var room Room
	err := c.Get("/api/v1/rooms/"+url.PathEscape(code), &room)
	return room, err
}

// JoinRoom calls POST /api/v1/rooms/{code}/join
func (c *Client) JoinRoom(code, password, username string) (JoinResult, error) {
	var result JoinResult
	err := c.Post("/api/v1/rooms/"+url.PathEscape(code)+"/join", map[string]string{
		"password": password,
		"username": username,
	}, &result)
	return result, err
}

// SetSecret calls POST /api/v1/rooms/{roomId}/secret/{playerId}
func (c *Client) SetSecret(roomID, playerID, secret string) error {
	return c.Post(fmt.Sprintf("/api/v1/rooms/%s/secret/%s", url.PathEscape(roomID), url.PathEscape(playerID)),
		map[string]string{"secret": secret}, nil)
}

// MakeGuess calls POST /api/v1/rooms/{roomId}/guess/{playerId}
func (c *Client) MakeGuess(roomID, playerID, guess string) (GuessResult, error) {
	var result GuessResult
	err := c.Post(fmt.Sprintf("/api/v1/rooms/%s/guess/%s", url.PathEscape(roomID), url.PathEscape(playerID)),
		map[string]string{"guess": guess}, &result)
	return result, err
}

// Health calls GET /api/v1/health
func (c *Client) Health() (HealthResult, error) {
	var result HealthResult
	err := c.Get("/api/v1/health", &result)
	return result, err
}
