package widget

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/chat-widget/internal/storage"
)

// SessionStore is a plain accessor for the persisted conversation id.
type SessionStore struct {
	store storage.Storage
}

func NewSessionStore(store storage.Storage) *SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) Get(ctx context.Context) (string, bool) {
	if s == nil || s.store == nil {
		return "", false
	}
	v, ok := s.store.Get(ctx, storage.KeySessionID)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *SessionStore) Set(ctx context.Context, id string) {
	if s == nil || s.store == nil || id == "" {
		return
	}
	s.store.Set(ctx, storage.KeySessionID, id)
}

func fallbackSessionID(now time.Time) string {
	return fmt.Sprintf("%s%d", FallbackSessionPrefix, now.UnixMilli())
}
