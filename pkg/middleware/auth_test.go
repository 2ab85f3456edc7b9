package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/internal/entity"
	"vidtube/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	users map[string]*entity.User
}

func (r stubResolver) GetUser(userID string) (*entity.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, assert.AnError
	}
	return u, nil
}

func newTestService() *jwt.Service {
	return jwt.NewService("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func resolverWith(userID string) stubResolver {
	return stubResolver{users: map[string]*entity.User{
		userID: {ID: userID, Username: "tester"},
	}}
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	jwtService := newTestService()
	token, _ := jwtService.GenerateAccessToken("user-123")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService, resolverWith("user-123")))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	jwtService := newTestService()
	token, _ := jwtService.GenerateAccessToken("user-123")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService, resolverWith("user-123")))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	router := setupTestRouter()
	router.Use(AuthMiddleware(newTestService(), resolverWith("user-123")))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	router := setupTestRouter()
	router.Use(AuthMiddleware(newTestService(), resolverWith("user-123")))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "InvalidFormat token")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupTestRouter()
	router.Use(AuthMiddleware(newTestService(), resolverWith("user-123")))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestService()
	refresh, _ := jwtService.GenerateRefreshToken("user-123")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService, resolverWith("user-123")))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	jwtService := newTestService()
	token, _ := jwtService.GenerateAccessToken("deleted-user")

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService, stubResolver{users: map[string]*entity.User{}}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware_Anonymous(t *testing.T) {
	router := setupTestRouter()
	router.Use(OptionalAuthMiddleware(newTestService(), resolverWith("user-123")))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestOptionalAuthMiddleware_WithToken(t *testing.T) {
	jwtService := newTestService()
	token, _ := jwtService.GenerateAccessToken("user-123")

	router := setupTestRouter()
	router.Use(OptionalAuthMiddleware(jwtService, resolverWith("user-123")))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
}
