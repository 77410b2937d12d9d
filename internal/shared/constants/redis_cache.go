package constants

import (
	"fmt"
	"time"
)

// Redis key layout for the booking flow
// Pattern: padang:{module}:{operation}:{identifier}:{params?}

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "padang"
)

// ================== SESSION MODULE ==================

// Session Keys
const (
	CACHE_KEY_SESSION_STATE    = CACHE_PREFIX + ":session:state:"    // + session-id
	CACHE_KEY_SESSION_INFLIGHT = CACHE_PREFIX + ":session:inflight:" // + session-id:operation
)

// Session TTL floors, applied when config leaves a value unset
const (
	TTL_SESSION_STATE_MIN = 5 * time.Minute
	TTL_INFLIGHT_MIN      = 5 * time.Second
)

// ================== TEAMS MODULE (reference remote store) ==================

const (
	CACHE_KEY_BOOKED_SLOTS = CACHE_PREFIX + ":teams:booked-slots"
	TTL_BOOKED_SLOTS       = 30 * time.Second
)

// ================== RATE LIMIT MODULE ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + ip:type
)

// ================== KEY BUILDERS ==================

// BuildSessionStateKey returns the key holding a session's booking state
func BuildSessionStateKey(sessionID string) string {
	return CACHE_KEY_SESSION_STATE + sessionID
}

// BuildInFlightKey returns the key flagging an in-flight operation of a session
func BuildInFlightKey(sessionID, operation string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_SESSION_INFLIGHT, sessionID, operation)
}

// BuildRateLimitKey returns the sliding-window key for a client and limit type
func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_RATE_LIMIT, clientIP, limitType)
}
