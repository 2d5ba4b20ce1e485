package widget

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/chat-widget/internal/storage"
)

func memStore(t *testing.T, persisted string) storage.Storage {
	t.Helper()
	s := storage.FailClosed(storage.NewMemory(), zerolog.Nop())
	if persisted != "" {
		s.Set(context.Background(), storage.KeyBackendURL, persisted)
	}
	return s
}

func TestResolvePriority(t *testing.T) {
	ctx := context.Background()
	page := "https://shop.example.com/contact?api=https://B.example.com&x=1"

	cases := []struct {
		name   string
		in     LocatorInputs
		stored string
		want   string
		source string
	}{
		{"attribute wins", LocatorInputs{Attribute: "https://A.example.com", PageURL: page}, "https://C.example.com", "https://A.example.com", SourceAttribute},
		{"query next", LocatorInputs{PageURL: page}, "https://C.example.com", "https://B.example.com", SourceQuery},
		{"storage next", LocatorInputs{PageURL: "https://shop.example.com/"}, "https://C.example.com", "https://C.example.com", SourceStorage},
		{"blank attribute ignored", LocatorInputs{Attribute: "   ", PageURL: page}, "", "https://B.example.com", SourceQuery},
		{"empty query ignored", LocatorInputs{PageURL: "https://x/?api="}, "https://C.example.com", "https://C.example.com", SourceStorage},
		{"bare query string", LocatorInputs{PageURL: "?api=http://localhost:9000"}, "", "http://localhost:9000", SourceQuery},
		{"unparsable page url", LocatorInputs{PageURL: "http://[::1"}, "https://C.example.com", "https://C.example.com", SourceStorage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Resolve(ctx, tc.in, memStore(t, tc.stored))
			got, ok := b.URL()
			require.True(t, ok)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.source, b.Source())
		})
	}
}

func TestResolveNothingMeansMock(t *testing.T) {
	b := Resolve(context.Background(), LocatorInputs{}, memStore(t, ""))
	_, ok := b.URL()
	require.False(t, ok)
	require.Equal(t, SourceNone, b.Source())
}

func TestResolveUnavailableStorage(t *testing.T) {
	s := storage.FailClosed(storage.Unavailable(), zerolog.Nop())
	b := Resolve(context.Background(), LocatorInputs{}, s)
	_, ok := b.URL()
	require.False(t, ok)

	require.NotPanics(t, func() { b.Override(context.Background(), "https://x") })
	got, ok := b.URL()
	require.True(t, ok)
	require.Equal(t, "https://x", got)
}

func TestResolveDoesNotPersistStartupInputs(t *testing.T) {
	s := memStore(t, "")
	Resolve(context.Background(), LocatorInputs{Attribute: "https://A"}, s)
	_, ok := s.Get(context.Background(), storage.KeyBackendURL)
	require.False(t, ok)
}

func TestOverrideAcceptsAnyString(t *testing.T) {
	s := memStore(t, "")
	b := Resolve(context.Background(), LocatorInputs{}, s)

	b.Override(context.Background(), "not a url")
	got, ok := b.URL()
	require.True(t, ok)
	require.Equal(t, "not a url", got)
	require.Equal(t, SourceOverride, b.Source())

	v, ok := s.Get(context.Background(), storage.KeyBackendURL)
	require.True(t, ok)
	require.Equal(t, "not a url", v)
}
