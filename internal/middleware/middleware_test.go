package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dineqr-be/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(RequestID())

	t.Run("Generated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", "req-abc")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, "req-abc", rr.Header().Get("X-Request-ID"))
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth())
	r.GET("/me", func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c.Request.Context())
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.Name)
	})

	t.Run("Anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, "anonymous", rr.Body.String())
	})

	t.Run("Authenticated", func(t *testing.T) {
		token, err := auth.GenerateToken(3, "Ravi", "waiter")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, "Ravi", rr.Body.String())
	})

	t.Run("GarbageTokenIsAnonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, "anonymous", rr.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth())
	r.GET("/admin", RequireRole("admin"), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("NoToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("WrongRole", func(t *testing.T) {
		token, err := auth.GenerateToken(3, "Ravi", "waiter")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Allowed", func(t *testing.T) {
		token, err := auth.GenerateToken(1, "Admin", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRateLimit_Strict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit())
	r.POST("/api/auth/login", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	var last int
	// Strict tier allows a burst of 5; the sixth immediate request is rejected.
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		last = rr.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
