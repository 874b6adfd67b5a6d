package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func TestSuccess(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		Success(c, gin.H{"key": "value"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestSuccessPage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		items := []string{"item1", "item2", "item3"}
		SuccessPage(c, 3, 1, 10, items)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(1), data["page"])
	assert.Equal(t, float64(10), data["page_size"])
}

func TestError_DefaultMessages(t *testing.T) {
	tests := []struct {
		name    string
		handler gin.HandlerFunc
		code    int
		message string
	}{
		{"param error", func(c *gin.Context) { ParamError(c, "") }, CodeParamError, "参数错误"},
		{"auth error", func(c *gin.Context) { AuthError(c, "") }, CodeAuthFailed, "认证失败"},
		{"not found", func(c *gin.Context) { NotFoundError(c, "") }, CodeResourceNotFound, "资源不存在"},
		{"server error", func(c *gin.Context) { ServerError(c, "") }, CodeServerError, "服务器内部错误"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", tt.handler)

			req := httptest.NewRequest("GET", "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			resp := parseResponse(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestError_CustomMessage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		NotFoundError(c, "视频不存在")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeResourceNotFound, resp.Code)
	assert.Equal(t, "视频不存在", resp.Message)
}
