package notifications

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Tray collects the notices raised while handling one request
type Tray struct {
	mu      sync.Mutex
	notices []Notice
}

type trayKey struct{}

// NewContext returns a context carrying a fresh tray
func NewContext(ctx context.Context) (context.Context, *Tray) {
	tray := &Tray{}
	return context.WithValue(ctx, trayKey{}, tray), tray
}

// FromContext returns the tray attached to ctx, or nil
func FromContext(ctx context.Context) *Tray {
	tray, _ := ctx.Value(trayKey{}).(*Tray)
	return tray
}

// Push adds a notice to the tray attached to ctx. Without a tray the notice is dropped.
func Push(ctx context.Context, level Level, message string) {
	tray := FromContext(ctx)
	if tray == nil {
		return
	}
	tray.Add(level, message)
}

func Info(ctx context.Context, message string)    { Push(ctx, LevelInfo, message) }
func Success(ctx context.Context, message string) { Push(ctx, LevelSuccess, message) }
func Warn(ctx context.Context, message string)    { Push(ctx, LevelWarning, message) }
func Error(ctx context.Context, message string)   { Push(ctx, LevelError, message) }

// Add appends a notice, skipping an exact duplicate of one already queued
func (t *Tray) Add(level Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, n := range t.notices {
		if n.Level == level && n.Message == message {
			return
		}
	}
	t.notices = append(t.notices, Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
	})
}

// Drain returns the queued notices and empties the tray
func (t *Tray) Drain() []Notice {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.notices
	t.notices = nil
	return out
}

// Middleware attaches a tray to every request context
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := NewContext(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
