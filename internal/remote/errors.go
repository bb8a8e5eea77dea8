package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthExpired is returned when a request still gets 401 after the
	// one transparent refresh-and-retry.
	ErrAuthExpired = errors.New("authentication expired")
)

// APIError is a normalized non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// normalizeErrorBody extracts a displayable message from the various error
// payload shapes the backend produces. Checked in priority order: "message",
// "detail", first field-keyed validation list, raw string body, fallback.
func normalizeErrorBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "request failed"
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return trimmed
	}

	for _, key := range []string{"message", "detail", "error"} {
		if raw, ok := payload[key]; ok {
			var msg string
			if json.Unmarshal(raw, &msg) == nil && msg != "" {
				return msg
			}
		}
	}

	// Field-keyed validation errors: {"table_number": ["This field is required."]}
	for field, raw := range payload {
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 {
			return field + ": " + msgs[0]
		}
	}

	return "request failed"
}
