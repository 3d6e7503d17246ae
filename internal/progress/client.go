package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SessionHeader carries Session.ID on every request.
const SessionHeader = "X-Session-ID"

// maxBody bounds how much of a response is read.
const maxBody = 1 << 20

type progressResponse struct {
	Success  bool               `json:"success"`
	Progress map[string]float64 `json:"progress"`
	Error    string             `json:"error"`
}

// Client talks to the skill tracker API on behalf of one session.
type Client struct {
	session Session
	http    *http.Client
}

// NewClient returns a client with the given per-request timeout.
func NewClient(s Session, timeout time.Duration) *Client {
	return &Client{
		session: s,
		http:    &http.Client{Timeout: timeout},
	}
}

// Session returns the session the client was built with.
func (c *Client) Session() Session { return c.session }

// Progress fetches GET /api/get-progress/<user_id>.
func (c *Client) Progress(ctx context.Context) (map[string]float64, error) {
	endpoint := c.session.BaseURL + "/api/get-progress/" + url.PathEscape(c.session.UserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(SessionHeader, c.session.ID.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnavailable, endpoint, resp.StatusCode)
	}

	var body progressResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if !body.Success {
		return nil, fmt.Errorf("%w: %s", ErrRejected, body.Error)
	}
	if body.Progress == nil {
		body.Progress = map[string]float64{}
	}
	return body.Progress, nil
}
