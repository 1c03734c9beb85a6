package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/community-api/internal/logger"
	"github.com/gravadigital/community-api/internal/response"
)

const (
	// ContextUserID is the gin context key holding the member id
	ContextUserID = "user_id"

	bearerPrefix = "Bearer "
)

// Middleware authenticates requests that carry a bearer token. Requests
// without one continue anonymously; a token that fails verification is
// rejected with 401. A nil verifier leaves every request anonymous.
func Middleware(v *Verifier) gin.HandlerFunc {
	log := logger.WithContext("component", "auth")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if v == nil {
			log.Debug("Ignoring bearer token, verifier not configured", "path", c.Request.URL.Path)
			c.Next()
			return
		}

		if !strings.HasPrefix(header, bearerPrefix) {
			response.UnauthorizedError(c, "authorization header must use the Bearer scheme")
			c.Abort()
			return
		}

		claims, err := v.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			log.Debug("Rejected bearer token", "path", c.Request.URL.Path, "error", err)
			message := "invalid session token"
			if errors.Is(err, ErrExpiredToken) {
				message = "session token expired"
			}
			response.UnauthorizedError(c, message)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequireUser rejects anonymous requests with 401
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFromContext(c.Request.Context()); !ok {
			response.UnauthorizedError(c, "sign in required")
			c.Abort()
			return
		}
		c.Next()
	}
}
