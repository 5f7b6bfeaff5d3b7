package middleware

import (
	"net/http"

	"dineqr-be/internal/auth"

	"github.com/gin-gonic/gin"
)

// Auth parses the access token when present and stores the staff claims in
// the request context. Anonymous requests pass through untouched; route
// groups that need a staff member use RequireRole.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := auth.WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole aborts with 401 when no staff member is authenticated and 403
// when the role does not match.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
