package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, KeySessionID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Set(ctx, KeySessionID, "abc"))
	v, ok, err := m.Get(ctx, KeySessionID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)
}

func TestFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "storage.json")

	f, err := NewFile(path, "site-a")
	require.NoError(t, err)
	require.NoError(t, f.Set(ctx, KeyBackendURL, "https://api.example.com"))

	reopened, err := NewFile(path, "site-a")
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, KeyBackendURL)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "https://api.example.com", v)
}

func TestFileScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	a, err := NewFile(path, "a")
	require.NoError(t, err)
	b, err := NewFile(path, "b")
	require.NoError(t, err)

	require.NoError(t, a.Set(ctx, KeySessionID, "from-a"))
	_, ok, err := b.Get(ctx, KeySessionID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileCorruptDocumentIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f, err := NewFile(path, "default")
	require.NoError(t, err)
	_, _, err = f.Get(context.Background(), KeySessionID)
	require.Error(t, err)
}

func TestFailClosedSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	s := FailClosed(Unavailable(), zerolog.Nop())

	require.NotPanics(t, func() { s.Set(ctx, KeySessionID, "x") })
	v, ok := s.Get(ctx, KeySessionID)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestFailClosedNilBackend(t *testing.T) {
	s := FailClosed(nil, zerolog.Nop())
	_, ok := s.Get(context.Background(), KeyBackendURL)
	require.False(t, ok)
}

func TestOpenUnknownKind(t *testing.T) {
	_, closer, err := Open(context.Background(), Options{Kind: "floppy"})
	require.Error(t, err)
	require.NotNil(t, closer)
}

func TestOpenMemory(t *testing.T) {
	kv, closer, err := Open(context.Background(), Options{Kind: "MEMORY"})
	require.NoError(t, err)
	require.IsType(t, &Memory{}, kv)
	require.NoError(t, closer.Close())
}

func TestScopedKey(t *testing.T) {
	require.Equal(t, "chat_session_id", scopedKey("", KeySessionID))
	require.Equal(t, "site:chat_session_id", scopedKey("site", KeySessionID))
}

func TestPostgresRoundTrip(t *testing.T) {
	dsn := os.Getenv("WIDGET_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("WIDGET_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	p, err := OpenPostgres(ctx, dsn, "test-"+t.Name())
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Set(ctx, KeySessionID, "one"))
	require.NoError(t, p.Set(ctx, KeySessionID, "two"))
	v, ok, err := p.Get(ctx, KeySessionID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", v)
}

func TestRedisRoundTrip(t *testing.T) {
	url := os.Getenv("WIDGET_TEST_REDIS_URL")
	if url == "" {
		t.Skip("WIDGET_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	r, err := OpenRedis(ctx, url, "test-"+t.Name())
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Set(ctx, KeyBackendURL, "http://b"))
	v, ok, err := r.Get(ctx, KeyBackendURL)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "http://b", v)
}
