package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx backend response. Data keeps the raw decoded body so
// field-level validation messages (Django style, keyed by field name) stay
// recoverable.
type APIError struct {
	Message string
	Status  int
	Data    map[string]any

	sessionExpired bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vrisa api: %s (status %d)", e.Message, e.Status)
}

// SessionExpired reports whether this was a 401 on an authenticated endpoint.
// Callers must destroy the local session and redirect to the landing route.
// A 401 from the login endpoint itself never sets this.
func (e *APIError) SessionExpired() bool { return e.sessionExpired }

// IsSessionExpired checks any error for the forced-logout condition.
func IsSessionExpired(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.SessionExpired()
}

func parseAPIError(status int, raw []byte, path string) *APIError {
	e := &APIError{
		Status:         status,
		Message:        http.StatusText(status),
		sessionExpired: status == http.StatusUnauthorized && !strings.Contains(path, "/login"),
	}

	var data map[string]any
	if json.Unmarshal(raw, &data) == nil {
		e.Data = data
		for _, key := range []string{"message", "detail", "error"} {
			if msg, ok := data[key].(string); ok && msg != "" {
				e.Message = msg
				break
			}
		}
	}
	return e
}

// FieldErrors flattens the validation payload into displayable lines:
// "field: message, message" for named fields, bare messages for
// non_field_errors. Keys are sorted, non-field errors first.
func (e *APIError) FieldErrors() []string {
	if len(e.Data) == 0 {
		return nil
	}

	var lines []string
	if msgs := joinMessages(e.Data["non_field_errors"]); msgs != "" {
		lines = append(lines, msgs)
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		switch k {
		case "non_field_errors", "message", "detail", "error":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if msgs := joinMessages(e.Data[k]); msgs != "" {
			lines = append(lines, k+": "+msgs)
		}
	}
	return lines
}

func joinMessages(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
