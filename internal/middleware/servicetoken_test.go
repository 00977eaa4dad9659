package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/gvone/gvone-api/internal/config"
)

func newTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{ServiceTokenSecret: secret}
	r := gin.New()
	r.GET("/internal", ServiceToken(cfg), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestServiceToken_NoHeader(t *testing.T) {
	r := newTestRouter("test-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internal", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Service token required", body["message"])
}

func TestServiceToken_BadScheme(t *testing.T) {
	r := newTestRouter("test-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internal", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestServiceToken_WrongSecret(t *testing.T) {
	r := newTestRouter("test-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internal", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "cron"))
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestServiceToken_Valid(t *testing.T) {
	r := newTestRouter("test-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/internal", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "cron"))
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
}
