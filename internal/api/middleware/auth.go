package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"scribe/internal/api/errors"
)

// Auth failure details
const (
	DetailNotAuthenticated   = "Not authenticated"
	DetailInvalidCredentials = "Invalid authentication credentials"
)

// TokenKey is the gin context key holding the accepted bearer token
const TokenKey = "bearer_token"

// BearerAuth requires an "Authorization: Bearer <token>" header.
// With an empty allow list any non-empty token is accepted.
func BearerAuth(tokens []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			unauthorized(c, DetailNotAuthenticated)
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			unauthorized(c, DetailNotAuthenticated)
			return
		}

		token = strings.TrimSpace(token)
		if token == "" || !allowed(tokens, token) {
			unauthorized(c, DetailInvalidCredentials)
			return
		}

		c.Set(TokenKey, token)
		c.Next()
	}
}

func allowed(tokens []string, token string) bool {
	if len(tokens) == 0 {
		return true
	}
	for _, t := range tokens {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			return true
		}
	}
	return false
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	HandleError(c, errors.NewUnauthorizedError(detail))
}
