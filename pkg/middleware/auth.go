package middleware

import (
	"net/http"
	"strings"

	"vidtube/internal/entity"
	"vidtube/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// UserResolver loads the account a verified token points at. The
// returned user carries no credential fields.
type UserResolver interface {
	GetUser(userID string) (*entity.User, error)
}

// AuthMiddleware accepts the access token from the accessToken cookie
// or an Authorization bearer header and attaches user_id and the
// resolved user to the context.
func AuthMiddleware(jwtService *jwt.Service, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "unauthorized request")
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid access token")
			return
		}

		user, err := users.GetUser(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "invalid access token")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is
// present and continues anonymously otherwise.
func OptionalAuthMiddleware(jwtService *jwt.Service, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			c.Next()
			return
		}

		if user, err := users.GetUser(claims.UserID); err == nil {
			c.Set("user_id", user.ID)
			c.Set("user", user)
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"message":    message,
	})
	c.Abort()
}
