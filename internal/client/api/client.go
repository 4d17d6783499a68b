// Package api implements the HTTP+JSON client for the NoteKeeper server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/imironov/notekeeper/internal/client/models"
)

var (
	// ErrUnauthorized is returned when the server rejects the credentials
	// or the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned for a note id the server does not know,
	// including notes owned by another user.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when the server rejects the request body.
	ErrValidation = errors.New("validation error")
	// ErrConflict is returned when registering a username that is taken.
	ErrConflict = errors.New("already exists")
)

// Client talks to a single NoteKeeper server. After a successful Login the
// bearer token is kept in memory and attached to every /notes request.
// The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// IsLoggedIn reports whether a token from a previous Login is held.
// It does not check whether the token is still accepted by the server.
func (c *Client) IsLoggedIn() bool {
	return c.token != ""
}

// Logout drops the held token.
func (c *Client) Logout() {
	c.token = ""
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// apiError maps a non-2xx response to a sentinel, keeping the server's
// message for display.
func apiError(status int, body []byte) error {
	var resp errorResponse
	msg := ""
	if err := json.Unmarshal(body, &resp); err == nil {
		msg = resp.Error
	}

	var sentinel error
	switch status {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusBadRequest:
		sentinel = ErrValidation
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		return fmt.Errorf("server returned %d: %s", status, msg)
	}
	if msg == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}

// do sends one request and decodes a 2xx JSON body into out (if out != nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var buf bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Ping checks server liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

// Register creates an account. The password is wiped from memory by the
// caller; here it only passes through the request body.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", credentialsRequest{Username: username, Password: password}, nil)
}

// Login authenticates and stores the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", credentialsRequest{Username: username, Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	in := map[string]string{"title": title, "content": content}
	var note models.Note
	if err := c.do(ctx, http.MethodPost, "/notes", in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote sends a partial update: nil fields are omitted from the body
// and keep their stored values on the server.
func (c *Client) UpdateNote(ctx context.Context, id string, title, content, status *string) (*models.Note, error) {
	in := map[string]*string{}
	if title != nil {
		in["title"] = title
	}
	if content != nil {
		in["content"] = content
	}
	if status != nil {
		in["status"] = status
	}

	var note models.Note
	if err := c.do(ctx, http.MethodPut, "/notes/"+id, in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+id, nil, nil)
}
