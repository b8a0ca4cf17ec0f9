package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/auth"
	"github.com/jengzang/fox-tracks-go/pkg/response"
)

// ContextKeySubject holds the authenticated token subject
const ContextKeySubject = "auth.subject"

// JWTAuth requires a valid "Authorization: Bearer <token>" header signed with secret
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(secret, token)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Next()
	}
}
