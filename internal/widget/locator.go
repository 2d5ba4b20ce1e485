package widget

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/Vovarama1992/chat-widget/internal/storage"
)

// Where the backend URL came from.
const (
	SourceAttribute = "attribute"
	SourceQuery     = "query"
	SourceStorage   = "storage"
	SourceOverride  = "override"
	SourceNone      = "none"
)

// PageQueryParam is read from the host page URL.
const PageQueryParam = "api"

// LocatorInputs are the start-up inputs supplied by the host.
type LocatorInputs struct {
	// Attribute is the configuration value set at the widget mount point.
	Attribute string
	// PageURL is the URL of the host page.
	PageURL string
}

// BackendConfig holds the active backend base URL. Empty means mock mode.
type BackendConfig struct {
	mu     sync.RWMutex
	url    string
	source string
	store  storage.Storage
}

// Resolve picks the backend URL once: attribute, then page query parameter,
// then the persisted value, otherwise mock mode.
func Resolve(ctx context.Context, in LocatorInputs, store storage.Storage) *BackendConfig {
	b := &BackendConfig{store: store, source: SourceNone}

	if v := strings.TrimSpace(in.Attribute); v != "" {
		b.url, b.source = v, SourceAttribute
		return b
	}
	if v := queryParam(in.PageURL, PageQueryParam); v != "" {
		b.url, b.source = v, SourceQuery
		return b
	}
	if store != nil {
		if v, ok := store.Get(ctx, storage.KeyBackendURL); ok && strings.TrimSpace(v) != "" {
			b.url, b.source = strings.TrimSpace(v), SourceStorage
			return b
		}
	}
	return b
}

func queryParam(pageURL, name string) string {
	if strings.TrimSpace(pageURL) == "" {
		return ""
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(u.Query().Get(name))
}

func (b *BackendConfig) URL() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.url, b.url != ""
}

func (b *BackendConfig) Source() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.source
}

// Override replaces the active URL and persists it. The URL is not validated:
// a bad one just makes later requests fall back. An empty URL switches to
// mock mode.
func (b *BackendConfig) Override(ctx context.Context, rawURL string) {
	rawURL = strings.TrimSpace(rawURL)

	b.mu.Lock()
	b.url = rawURL
	b.source = SourceOverride
	if rawURL == "" {
		b.source = SourceNone
	}
	b.mu.Unlock()

	if b.store != nil {
		b.store.Set(ctx, storage.KeyBackendURL, rawURL)
	}
}
