package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"padang/internal/notifications"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithRedirectDrainsNotices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(notifications.Middleware())
	engine.GET("/", func(c *gin.Context) {
		notifications.Warn(c.Request.Context(), "Failed to load booked slots. Please try again later.")
		RespondWithRedirect(c, "success", http.StatusOK, "ok", gin.H{"x": 1}, nil, NewRedirect("/payment", 2*time.Second))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body StandardApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, body.StatusCode)
	require.Len(t, body.Notices, 1)
	assert.Equal(t, notifications.LevelWarning, body.Notices[0].Level)
	require.NotNil(t, body.Redirect)
	assert.Equal(t, "/payment", body.Redirect.To)
	assert.Equal(t, int64(2000), body.Redirect.AfterMs)
}

func TestNewRedirectEmptyPath(t *testing.T) {
	assert.Nil(t, NewRedirect("", time.Second))
}
