package storage

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	KindMemory   = "memory"
	KindFile     = "file"
	KindPostgres = "postgres"
	KindRedis    = "redis"
)

type Options struct {
	Kind        string
	Path        string
	Scope       string
	DatabaseURL string
	RedisURL    string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend named by opts.Kind. The returned Closer is never nil.
func Open(ctx context.Context, opts Options) (KV, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case KindMemory:
		return NewMemory(), nopCloser{}, nil
	case KindFile, "":
		f, err := NewFile(opts.Path, opts.Scope)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return f, nopCloser{}, nil
	case KindPostgres:
		p, err := OpenPostgres(ctx, opts.DatabaseURL, opts.Scope)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return p, p, nil
	case KindRedis:
		r, err := OpenRedis(ctx, opts.RedisURL, opts.Scope)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return r, r, nil
	default:
		return nil, nopCloser{}, errors.Errorf("unknown storage kind %q", opts.Kind)
	}
}
