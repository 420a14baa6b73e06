package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequestWithDetails(c, "prompt: is required", gin.H{"field": "prompt"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, ErrCodeInvalidInput, body["code"])
	assert.Equal(t, "prompt: is required", body["error"])
	assert.Equal(t, map[string]any{"field": "prompt"}, body["details"])
}

func TestDefaultMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		send   func(*gin.Context)
		status int
		code   string
	}{
		{func(c *gin.Context) { BadGateway(c, "") }, http.StatusBadGateway, ErrCodeGenerationFailed},
		{func(c *gin.Context) { TooManyRequests(c, "") }, http.StatusTooManyRequests, ErrCodeRateLimited},
		{func(c *gin.Context) { ExportFailed(c) }, http.StatusInternalServerError, ErrCodeExportFailed},
		{func(c *gin.Context) { NotFound(c, "") }, http.StatusNotFound, ErrCodeNotFound},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		tc.send(c)

		assert.Equal(t, tc.status, w.Code)

		var body APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Message)
		assert.False(t, body.Success)
	}
}
