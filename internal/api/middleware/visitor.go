package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// VisitorHeader carries the visitor token in requests and responses.
	VisitorHeader = "X-Visitor-Token"
	// VisitorCookie carries the same token for browser clients.
	VisitorCookie = "sf_visitor"
	// ContextVisitorID is the echo context key holding the visitor id.
	ContextVisitorID = "visitor_id"
)

// Visitor identifies the caller by a signed token and injects the visitor id
// into the context. A missing or invalid token is replaced by a fresh one,
// returned in both the response header and cookie. The token only picks the
// visitor's storefront state; it is not an authorization boundary.
func Visitor(secret string, ttl time.Duration) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, ok := parseVisitor(readToken(c), key); ok {
				c.Set(ContextVisitorID, id)
				return next(c)
			}

			id := uuid.NewString()
			signed, err := issueVisitor(id, key, ttl)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not issue visitor token")
			}

			c.Response().Header().Set(VisitorHeader, signed)
			c.SetCookie(&http.Cookie{
				Name:     VisitorCookie,
				Value:    signed,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(ContextVisitorID, id)
			return next(c)
		}
	}
}

// visitorClaims is the token payload. VisitorID keys the storefront state.
type visitorClaims struct {
	VisitorID string `json:"vid"`
	jwt.RegisteredClaims
}

func readToken(c echo.Context) string {
	if h := strings.TrimSpace(c.Request().Header.Get(VisitorHeader)); h != "" {
		return h
	}
	if ck, err := c.Cookie(VisitorCookie); err == nil {
		return ck.Value
	}
	return ""
}

func parseVisitor(token string, key []byte) (string, bool) {
	if token == "" {
		return "", false
	}
	claims := &visitorClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return key, nil
	})
	if err != nil || !tkn.Valid || claims.VisitorID == "" {
		return "", false
	}
	return claims.VisitorID, true
}

func issueVisitor(id string, key []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := visitorClaims{
		VisitorID:        id,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
