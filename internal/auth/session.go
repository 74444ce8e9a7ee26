package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"todolist-backend/internal/domain"
)

// Session is the resolved identity of a caller. The sign-in flow (the
// OAuth handshake lives outside this service) mints a signed token
// carrying these fields; everything here only verifies it.
type Session struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type contextKey struct{}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, contextKey{}, session)
}

// FromContext extracts the session placed by the middleware. The second
// return value is false for anonymous requests.
func FromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(contextKey{}).(Session)
	return session, ok && session.UserID != ""
}

// Verifier checks session tokens against the shared session secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for HS256 session tokens.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// ParseToken verifies the signature and expiry of a session token and
// returns the session it carries. Tokens without a subject are invalid.
func (v *Verifier) ParseToken(raw string) (*Session, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid session token", domain.ErrUnauthenticated)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: session token has no subject", domain.ErrUnauthenticated)
	}

	session := &Session{UserID: sub}
	if name, ok := claims["name"].(string); ok {
		session.Name = name
	}
	if picture, ok := claims["picture"].(string); ok {
		session.AvatarURL = picture
	}
	return session, nil
}

// MintToken signs a session token for the given session. Used by the
// sign-in callback and by tests.
func (v *Verifier) MintToken(session Session) (string, error) {
	if session.UserID == "" {
		return "", errors.New("cannot mint a session token without a user id")
	}
	claims := jwt.MapClaims{
		"sub":     session.UserID,
		"name":    session.Name,
		"picture": session.AvatarURL,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
