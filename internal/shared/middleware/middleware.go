package middleware

import (
	"net/http"
	"time"

	"padang/internal/shared/config"
	"padang/internal/shared/utils/response"
	"padang/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionIDKey    = "session_id"
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// SessionCookie identifies the browser session, issuing a new cookie when the
// request carries none or an unparseable one
func SessionCookie(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sessionID, int(cfg.CookieMaxAge.Seconds()), "/", "", cfg.CookieSecure, true)
		}
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by SessionCookie
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// RequireSession rejects requests that reached a handler without a session id
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSessionID(c) == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "session cookie is required", nil, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestID propagates or generates a request id
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger logs every request once it has been served
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		reqLogger := l
		if requestID := c.GetString(RequestIDKey); requestID != "" {
			reqLogger = reqLogger.WithRequestID(requestID)
		}
		if sessionID := GetSessionID(c); sessionID != "" {
			reqLogger = reqLogger.WithSessionID(sessionID)
		}
		reqLogger.LogHTTPRequest(c, duration)

		if last := c.Errors.Last(); last != nil && c.Writer.Status() >= http.StatusInternalServerError {
			reqLogger.LogHTTPError(c, last.Err, c.Writer.Status())
		}
	}
}
