package auth

// This file implements the session token: a signed, tamper-evident HS256
// token carrying only the user identifier, delivered as an HttpOnly cookie.
// The token is pure identity; the user row behind it is re-read on every
// request, so a session never serves stale account state.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/chickenblog-go/apperror"
	"github.com/user/chickenblog-go/config"
)

// sessionCookieName is the cookie the session token travels in.
const sessionCookieName = "blog_session"

// SessionClaims is the payload of the session token.
type SessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// Sessions issues and resolves session tokens. The signing secret and the
// token lifetime come from configuration; the lifetime bounds the cookie both
// in the browser (Max-Age) and cryptographically (exp claim), so a replayed
// cookie dies with the token.
type Sessions struct {
	secret   []byte
	lifetime time.Duration
}

// NewSessions creates a session manager from the session configuration.
func NewSessions(cfg *config.SessionConfig) *Sessions {
	return &Sessions{
		secret:   []byte(cfg.Secret),
		lifetime: cfg.Lifetime,
	}
}

// Issue starts a session for the given user by setting the signed session
// cookie on the response.
func (s *Sessions) Issue(w http.ResponseWriter, userID int) error {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "chickenblog",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return apperror.NewInternalError("failed to sign session token", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear ends the session by expiring the cookie. The token itself is not
// revocable; once the cookie is gone the caller resolves to anonymous.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID resolves the session cookie on the request back to a user
// identifier. Any failure (no cookie, bad signature, expired, wrong signing
// method, zero id) is an AuthError; callers treat that as anonymous.
func (s *Sessions) UserID(r *http.Request) (int, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return 0, apperror.NewAuthError("no session cookie", err)
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		// Refuse any signing method other than HMAC; accepting the token's
		// self-declared algorithm would defeat the signature check.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, apperror.NewAuthError("invalid session token", err)
	}
	if !token.Valid {
		return 0, apperror.NewAuthError("invalid session token", nil)
	}
	if claims.UserID == 0 {
		return 0, apperror.NewAuthError("session token has no user", nil)
	}

	return claims.UserID, nil
}
