// Package session holds the signed-in state handed explicitly to handlers
// and view builders.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// User is the account a session belongs to.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// DisplayName is what the header shows: the first name, else the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.EmailAddress
}

// Session is the per-request view of who is signed in. The zero value is
// an anonymous visitor.
type Session struct {
	ID        string    `json:"id"`
	User      *User     `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Authenticated() bool {
	return s.User != nil
}

// Email returns the signed-in address or "".
func (s Session) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.EmailAddress
}

// Store persists sessions between requests. Get returns ErrNotFound for
// unknown or expired ids.
type Store interface {
	Save(ctx context.Context, sess Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

var errEmptyID = errors.New("session ID cannot be empty")
var errExpired = errors.New("session is expired")
