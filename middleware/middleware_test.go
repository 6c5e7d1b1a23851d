package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"digibook/config"
	"digibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:80", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": " 10.0.0.9 "}, "1.1.1.1:80", "10.0.0.9"},
		{"remote addr", nil, "192.168.1.4:5555", "192.168.1.4"},
		{"garbage forwarded", map[string]string{"X-Forwarded-For": "unknown"}, "192.168.1.4:5555", "192.168.1.4"},
		{"garbage forwarded falls to real ip", map[string]string{"X-Forwarded-For": "nope", "X-Real-IP": "10.0.0.3"}, "1.1.1.1:80", "10.0.0.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.header {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2, nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.1.1.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.1.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthAdminMiddleware(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "admin-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	r := gin.New()
	r.GET("/admin", JWTAuthAdminMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("adminID"))
	})

	admin, err := utils.GenerateToken("ops", utils.RoleAdmin, time.Hour)
	require.NoError(t, err)
	viewer, err := utils.GenerateToken("guest", "viewer", time.Hour)
	require.NoError(t, err)

	cases := map[string]struct {
		auth string
		want int
	}{
		"missing header": {"", http.StatusUnauthorized},
		"not bearer":     {"Basic abc", http.StatusUnauthorized},
		"garbage token":  {"Bearer abc.def.ghi", http.StatusUnauthorized},
		"wrong role":     {"Bearer " + viewer, http.StatusForbidden},
		"admin":          {"Bearer " + admin, http.StatusOK},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Equal(t, "ops", w.Body.String())
			}
		})
	}
}
