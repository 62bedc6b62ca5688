package retail

import "encoding/json"

const fallbackMessage = "Request failed"

// Error is the single failure kind returned by the client. It carries only
// a human-readable message.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// newError picks the body's "message" field, then the cause's message, then
// the fallback.
func newError(body []byte, cause error) *Error {
	if len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return &Error{Message: payload.Message}
		}
	}
	if cause != nil && cause.Error() != "" {
		return &Error{Message: cause.Error()}
	}
	return &Error{Message: fallbackMessage}
}
