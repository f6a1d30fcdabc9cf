package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/auth"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

type TokenVerifier interface {
	VerifyToken(raw string) (auth.Identity, error)
}

// AuthMiddleware requires a bearer token. A missing token aborts with 401,
// an unverifiable one with 403.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := verifier.VerifyToken(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			e := apperr.From(err)
			c.AbortWithStatusJSON(e.Status, gin.H{"error": e.Message, "code": e.Code})
			return
		}

		c.Set(UserIDKey, id.UserID)
		c.Set(UsernameKey, id.Username)
		c.Next()
	}
}

// Identity returns the caller set by AuthMiddleware.
func Identity(c *gin.Context) (auth.Identity, bool) {
	userID := c.GetInt(UserIDKey)
	if userID <= 0 {
		return auth.Identity{}, false
	}
	return auth.Identity{UserID: userID, Username: c.GetString(UsernameKey)}, true
}

// bearerToken extracts the token from "Bearer <token>". Any other non-empty
// header is passed through whole so it fails verification instead of
// reading as missing.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, token, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return header
}
