// Package progress fetches skill progress mappings from the skill tracker API.
package progress

import (
	"strings"

	"github.com/google/uuid"
)

// Session is the per-run context every API call carries: which server, which
// user, and an id the server can correlate requests by.
type Session struct {
	BaseURL string
	UserID  string
	ID      uuid.UUID
}

// NewSession creates a session with a fresh id.
func NewSession(baseURL, userID string) Session {
	return Session{
		BaseURL: strings.TrimRight(baseURL, "/"),
		UserID:  userID,
		ID:      uuid.New(),
	}
}
