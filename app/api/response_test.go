package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kamara/atlas/internal/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handler(c)

	var resp Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSuccessResponse(t *testing.T) {
	w, resp := perform(t, func(c *gin.Context) {
		SuccessResponse(c, http.StatusOK, "ok", gin.H{"x": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
	assert.Nil(t, resp.Error)
}

func TestListResponse(t *testing.T) {
	w, resp := perform(t, func(c *gin.Context) {
		ListResponse(c, "countries", []string{"USA", "CAN"}, 2)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	meta := resp.Meta.(map[string]interface{})
	assert.Equal(t, float64(2), meta["count"])
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		handler  gin.HandlerFunc
		wantCode int
		wantErr  string
	}{
		{"validation", func(c *gin.Context) { ValidationErrorResponse(c, "bad") }, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad request", func(c *gin.Context) { BadRequestResponse(c, "bad") }, http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", func(c *gin.Context) { NotFoundResponse(c, "Country") }, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", func(c *gin.Context) { UnauthorizedResponse(c) }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(c *gin.Context) { ForbiddenResponse(c, "no") }, http.StatusForbidden, "FORBIDDEN"},
		{"internal", func(c *gin.Context) { InternalErrorResponse(c, "boom") }, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"bad gateway", func(c *gin.Context) { BadGatewayResponse(c, "upstream") }, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"conflict", func(c *gin.Context) { ConflictResponse(c, "dup") }, http.StatusConflict, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := perform(t, tt.handler)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/healthz", nil)

	HealthCheck(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestCorsMiddlewarePreflight(t *testing.T) {
	r := gin.New()
	r.Use(CorsMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(logger.NewNullLogger()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
