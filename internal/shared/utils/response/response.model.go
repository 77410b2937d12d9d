package response

import "padang/internal/notifications"

type StandardApiResponse struct {
	Status     string                 `json:"status"`             // "success" or "error"
	StatusCode int                    `json:"status_code"`        // HTTP status code
	Message    string                 `json:"message"`            // Human-readable message
	Data       interface{}            `json:"data,omitempty"`     // Payload for success
	Errors     interface{}            `json:"errors,omitempty"`   // Validation or error details
	Notices    []notifications.Notice `json:"notices,omitempty"`  // Messages for the user-facing message surface
	Redirect   *Redirect              `json:"redirect,omitempty"` // Navigation the client should perform
}

// Redirect tells the client where to go next and how long to wait first
type Redirect struct {
	To      string `json:"to"`
	AfterMs int64  `json:"after_ms"`
}
