// Package auth carries the request-scoped session built by the session middleware.
package auth

import (
	"context"

	"github.com/yigit/uniportal/internal/app/models"
)

// SessionKey is the gin context key holding the *Session
const SessionKey = "session"

type sessionCtxKey struct{}

// CurrentUser is the identity proven by the access token
type CurrentUser struct {
	ID    int64
	Email string
	Role  string
}

// Session is built once per request. Profile is nil when it could not be read.
type Session struct {
	CurrentUser *CurrentUser
	Profile     *models.User
	Loading     bool
}

// IsAuthenticated reports whether the request carried a valid access token
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.CurrentUser != nil
}

// IsAdmin is decided by the stored profile, never by the token claims
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Profile.IsAdmin()
}

// UserID returns the authenticated user id, or 0
func (s *Session) UserID() int64 {
	if !s.IsAuthenticated() {
		return 0
	}
	return s.CurrentUser.ID
}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFrom returns the session of ctx, or an anonymous one.
// A *gin.Context works too since it resolves string keys from its key store.
func SessionFrom(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionCtxKey{}).(*Session); ok && s != nil {
		return s
	}
	if s, ok := ctx.Value(SessionKey).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}
