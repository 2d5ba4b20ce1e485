package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrUnavailable is returned by the Unavailable backend.
var ErrUnavailable = errors.New("storage unavailable")

type failClosed struct {
	kv  KV
	log zerolog.Logger
}

// FailClosed wraps kv so that read errors become "absent" and write errors
// are dropped. Errors are only logged.
func FailClosed(kv KV, log zerolog.Logger) Storage {
	if kv == nil {
		kv = Unavailable()
	}
	return &failClosed{
		kv:  kv,
		log: log.With().Str("component", "storage").Logger(),
	}
}

func (s *failClosed) Get(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("storage read failed")
		return "", false
	}
	return v, ok
}

func (s *failClosed) Set(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("storage write failed")
	}
}

type unavailable struct{}

// Unavailable is a backend that rejects every call, like storage disabled by
// browser policy.
func Unavailable() KV {
	return unavailable{}
}

func (unavailable) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (unavailable) Set(context.Context, string, string) error {
	return ErrUnavailable
}
