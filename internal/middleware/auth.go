package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/travlr/internal/pkg/jwt"
	"github.com/xyz-asif/travlr/internal/pkg/response"
)

// Context keys set by Auth.
const (
	ContextClaims = "auth"
	ContextUserID = "userID"
	ContextEmail  = "email"
)

var (
	ErrMissingAuthHeader = errors.New("authorization header required")
	ErrMissingToken      = errors.New("bearer token missing")
	ErrTokenInvalid      = errors.New("token validation failed")
)

// ExtractBearerToken returns the token from an Authorization header value.
// The scheme is matched case-insensitively; anything other than
// "Bearer <token>" yields ErrMissingToken.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthHeader
	}

	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", ErrMissingToken
	}
	return fields[1], nil
}

// Auth verifies the bearer token against secret and stores its claims on the context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := ExtractBearerToken(c.GetHeader("Authorization"))
		switch {
		case errors.Is(err, ErrMissingAuthHeader):
			response.Unauthorized(c, "Authorization header required", "MISSING_AUTH_HEADER")
			c.Abort()
			return
		case err != nil:
			response.Unauthorized(c, "Bearer token missing", "MISSING_TOKEN")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenString, secret)
		if err != nil {
			response.Forbidden(c, "Token validation failed", "TOKEN_INVALID")
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Auth, if any.
func ClaimsFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
