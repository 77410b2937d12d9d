package response

import (
	"time"

	"padang/internal/notifications"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	RespondWithRedirect(c, status, code, message, data, errors, nil)
}

// RespondWithRedirect writes the standard envelope, draining queued notices into it
func RespondWithRedirect(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}, redirect *Redirect) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
		Notices:    notifications.FromContext(c.Request.Context()).Drain(),
		Redirect:   redirect,
	})
}

// NewRedirect builds a redirect to path after delay; nil when path is empty
func NewRedirect(path string, delay time.Duration) *Redirect {
	if path == "" {
		return nil
	}
	return &Redirect{To: path, AfterMs: delay.Milliseconds()}
}
