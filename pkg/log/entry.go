package log

import (
	"encoding/json"
	"strings"
	"time"
)

// Redacted replaces the value of any sensitive field.
const Redacted = "[REDACTED]"

// sensitiveKeys are field names whose values never reach a transporter.
// Matching is case-insensitive on the whole key.
var sensitiveKeys = map[string]struct{}{
	"authorization": {},
	"bearer_token":  {},
	"credentials":   {},
	"token":         {},
	"password":      {},
	"secret":        {},
}

// IsSensitiveKey reports whether values logged under key are redacted.
func IsSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// Entry is one structured log record.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Caller    string
	RequestID string
	Message   string
	Fields    map[string]any
}

// NewEntry stamps a new entry with the current time.
func NewEntry(level Level, msg string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]any),
	}
}

// With sets alternating key/value pairs. Non-string keys and a trailing
// key without a value are skipped.
func (e *Entry) With(keysAndValues ...any) *Entry {
	mergePairs(e.Fields, keysAndValues)
	return e
}

// MarshalJSON flattens Fields into the top-level object next to
// timestamp, level and msg. Sensitive fields are redacted.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Fields)+5)

	for k, v := range e.Fields {
		if IsSensitiveKey(k) {
			v = Redacted
		}
		m[k] = v
	}

	m["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339)
	m["level"] = e.Level.String()
	m["msg"] = e.Message
	if e.Caller != "" {
		m["caller"] = e.Caller
	}
	if e.RequestID != "" {
		m["request_id"] = e.RequestID
	}

	return json.Marshal(m)
}

func mergePairs(dst map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr && err != nil {
			dst[key] = err.Error()
			continue
		}
		dst[key] = keysAndValues[i+1]
	}
}
