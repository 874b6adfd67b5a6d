package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmac277/webgen4/internal/pkg/jwt"
	"github.com/cmac277/webgen4/internal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "test-secret-key-for-middleware"

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func newAuthRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/test", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": ok})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_Success(t *testing.T) {
	router := newAuthRouter(Auth(testJWTSecret))

	token, err := jwt.GenerateToken(123, testJWTSecret, 24)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result["authenticated"].(bool))
	assert.Equal(t, float64(123), result["user_id"])
}

func TestAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter(Auth(testJWTSecret))

	w := doRequest(router, "")
	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_NoBearerPrefix(t *testing.T) {
	router := newAuthRouter(Auth(testJWTSecret))

	token, err := jwt.GenerateToken(123, testJWTSecret, 24)
	require.NoError(t, err)

	w := doRequest(router, token)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	router := newAuthRouter(Auth(testJWTSecret))

	w := doRequest(router, "Bearer invalid-token")
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	router := newAuthRouter(Auth(testJWTSecret))

	token, err := jwt.GenerateToken(123, "different-secret", 24)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	router := newAuthRouter(Auth(testJWTSecret))

	// Zero expiry hours produces an immediately expired token
	token, err := jwt.GenerateToken(123, testJWTSecret, 0)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestOptionalAuth_WithValidToken(t *testing.T) {
	router := newAuthRouter(OptionalAuth(testJWTSecret))

	token, err := jwt.GenerateToken(456, testJWTSecret, 24)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result["authenticated"].(bool))
	assert.Equal(t, float64(456), result["user_id"])
}

func TestOptionalAuth_WithoutToken(t *testing.T) {
	router := newAuthRouter(OptionalAuth(testJWTSecret))

	w := doRequest(router, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result["authenticated"].(bool))
}

func TestOptionalAuth_WithInvalidToken(t *testing.T) {
	router := newAuthRouter(OptionalAuth(testJWTSecret))

	// Invalid token falls back to anonymous instead of failing
	w := doRequest(router, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result["authenticated"].(bool))
}
