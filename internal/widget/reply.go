package widget

import "strconv"

// ReplyFields are the accepted names of the displayable text, by priority.
var ReplyFields = []string{"response", "reply", "question"}

// Reply is the untyped JSON object returned by the backend.
type Reply map[string]any

// String returns a field as text. Non-empty strings are returned as is,
// non-zero numbers and true are formatted. Anything else counts as absent.
func (r Reply) String(key string) (string, bool) {
	switch v := r[key].(type) {
	case string:
		return v, v != ""
	case float64:
		if v == 0 {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	default:
		return "", false
	}
}

func (r Reply) SessionID() (string, bool) {
	return r.String("session_id")
}

// Text probes fields in order and returns the first one present.
func (r Reply) Text(fields ...string) (string, bool) {
	for _, f := range fields {
		if v, ok := r.String(f); ok {
			return v, true
		}
	}
	return "", false
}
