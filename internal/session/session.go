// Package session carries the current-user identity that every screen
// controller receives explicitly. The identity comes from a backend-issued
// access token; this package only reads it, it never mints or verifies
// credentials of its own.
package session

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoIdentity = errors.New("access token carries no email identity")

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the explicit session context handed to each controller.
// A zero Session means "not signed in".
type Session struct {
	Email string
	Token string
}

func (s Session) SignedIn() bool {
	return s.Email != ""
}

// FromToken builds a Session from a backend-issued access token. The token
// was verified by the backend when it was issued; here it is only decoded
// to recover the email identity the screens key their fetches on.
func FromToken(token string) (Session, error) {
	claims := &Claims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Session{}, err
	}

	if claims.Email == "" {
		return Session{}, ErrNoIdentity
	}

	return Session{Email: claims.Email, Token: token}, nil
}

type contextKey string

const sessionKey contextKey = "session"

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}
