package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"padang/internal/shared/utils/response"
	"padang/pkg/logger"
	"padang/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Middleware applies the sliding-window limit matching the route. m may be nil.
func Middleware(rateLimiter *RateLimiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.Request.Method, c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Redis trouble should not take the booking flow down with it
			logger.GetDefault().WithError(err).Warn("rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			m.RecordRateLimited(string(limitType))
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getRateLimitType(method, path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"),
		strings.HasPrefix(path, "/metrics"):
		return RateLimitTypeHealth

	// Writes with external consequence
	case method == http.MethodPost && (strings.HasSuffix(path, "/payment/confirm") ||
		strings.HasSuffix(path, "/register-team") ||
		strings.HasSuffix(path, "/registration")):
		return RateLimitTypeBookingCritical

	case strings.Contains(path, "/select"),
		strings.Contains(path, "/proceed"),
		strings.Contains(path, "/payment"),
		strings.Contains(path, "/registration"),
		strings.Contains(path, "/session"):
		return RateLimitTypeBooking

	case strings.Contains(path, "/venues"),
		strings.Contains(path, "/teams"),
		strings.Contains(path, "/booked-slots"),
		strings.Contains(path, "/swagger"),
		strings.Contains(path, "/openapi.json"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// getClientIP extracts real client IP
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
