package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pharloom/echoes/internal/domain"
)

const requestTimeout = 5 * time.Second

// Client talks to the sessions backend. Every call is best effort from the
// caller's point of view: local state stays authoritative and callers are
// expected to log and drop failures.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for the given base URL. An empty token sends
// unauthenticated requests.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether a backend URL is set.
func (c *Client) Configured() bool { return c.baseURL != "" }

type createSessionResponse struct {
	SessionID string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
}

// CreateSession registers a new session and returns the backend's id for it.
func (c *Client) CreateSession(ctx context.Context, plan domain.SessionPlan) (string, error) {
	var resp createSessionResponse
	err := c.do(ctx, http.MethodPost, "/sessions", map[string]any{"plan": plan}, &resp)
	if err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", &domain.APIError{Op: "create session", Err: fmt.Errorf("empty session id")}
	}
	return resp.SessionID, nil
}

// AppendEvent mirrors one session event to the backend.
func (c *Client) AppendEvent(ctx context.Context, sessionID string, ev domain.SessionEvent) error {
	path := fmt.Sprintf("/sessions/%s/events", url.PathEscape(sessionID))
	body := map[string]any{"type": ev.Type, "ts": ev.TS}
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// Areas fetches the backend's area catalog.
func (c *Client) Areas(ctx context.Context) ([]domain.Area, error) {
	var areas []domain.Area
	if err := c.do(ctx, http.MethodGet, "/areas", nil, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

// Home is the backend's aggregate view for the home screen.
type Home struct {
	Streaks  domain.Streaks         `json:"streaks"`
	Recent   []domain.StoredSession `json:"recent"`
	AreaIDs  []string               `json:"areaIds"`
	ServerTS time.Time              `json:"serverTs"`
}

// HomeView fetches the backend's aggregate home view.
func (c *Client) HomeView(ctx context.Context) (*Home, error) {
	var home Home
	if err := c.do(ctx, http.MethodGet, "/home", nil, &home); err != nil {
		return nil, err
	}
	return &home, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.APIError{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.APIError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.APIError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.APIError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}
