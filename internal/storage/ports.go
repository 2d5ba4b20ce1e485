package storage

import "context"

// Fixed keys, shared by every backend.
const (
	KeyBackendURL = "backend_url"
	KeySessionID  = "chat_session_id"
)

// KV — raw durable key-value backend, may fail
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Storage — what the widget sees. Never fails: absent / no-op instead.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}
