package notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrayCollectsAndDrains(t *testing.T) {
	ctx, tray := NewContext(context.Background())

	Warn(ctx, "Failed to load teams. Please try again later.")
	Success(ctx, "Team registered successfully!")
	Warn(ctx, "Failed to load teams. Please try again later.")

	notices := tray.Drain()
	require.Len(t, notices, 2, "duplicate notice is collapsed")
	assert.Equal(t, LevelWarning, notices[0].Level)
	assert.Equal(t, LevelSuccess, notices[1].Level)
	assert.NotEmpty(t, notices[0].ID)

	assert.Empty(t, tray.Drain())
}

func TestPushWithoutTrayIsDropped(t *testing.T) {
	assert.NotPanics(t, func() {
		Error(context.Background(), "nobody listening")
	})
	assert.Nil(t, FromContext(context.Background()))
	var nilTray *Tray
	assert.Nil(t, nilTray.Drain())
}

func TestMiddlewareAttachesTray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware())

	var got []Notice
	engine.GET("/", func(c *gin.Context) {
		Info(c.Request.Context(), "hello")
		got = FromContext(c.Request.Context()).Drain()
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Message)
}
