package widget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplyText(t *testing.T) {
	r := Reply{"reply": "p", "question": "q"}
	got, ok := r.Text(ReplyFields...)
	require.True(t, ok)
	require.Equal(t, "p", got)

	_, ok = Reply{"answer": "a"}.Text(ReplyFields...)
	require.False(t, ok)

	_, ok = Reply{"response": nil, "reply": false}.Text(ReplyFields...)
	require.False(t, ok)
}

func TestReplySessionID(t *testing.T) {
	id, ok := Reply{"session_id": "abc"}.SessionID()
	require.True(t, ok)
	require.Equal(t, "abc", id)

	_, ok = Reply{"session_id": ""}.SessionID()
	require.False(t, ok)

	id, ok = Reply{"session_id": 123.0}.SessionID()
	require.True(t, ok)
	require.Equal(t, "123", id)

	_, ok = Reply{"session_id": 0.0}.SessionID()
	require.False(t, ok)
}

func TestReplyStringFormatsScalars(t *testing.T) {
	r := Reply{"n": 1.5, "t": true, "f": false, "o": map[string]any{"a": "b"}, "l": []any{"x"}}

	got, ok := r.String("n")
	require.True(t, ok)
	require.Equal(t, "1.5", got)

	got, ok = r.String("t")
	require.True(t, ok)
	require.Equal(t, "true", got)

	for _, key := range []string{"f", "o", "l", "missing"} {
		_, ok = r.String(key)
		require.False(t, ok, key)
	}
}
