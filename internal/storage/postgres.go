package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS widget_kv (
		scope      TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (scope, key)
	)
`

type Postgres struct {
	db    *sql.DB
	scope string
}

// OpenPostgres opens dsn with lib/pq, pings it and makes sure widget_kv exists.
func OpenPostgres(ctx context.Context, dsn, scope string) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres storage: empty dsn")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "postgres storage: open")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "postgres storage: ping")
	}
	p := NewPostgres(db, scope)
	if err := p.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func NewPostgres(db *sql.DB, scope string) *Postgres {
	return &Postgres{db: db, scope: scope}
}

func (p *Postgres) migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createKVTable); err != nil {
		return errors.Wrap(err, "postgres storage: create table")
	}
	return nil
}

func (p *Postgres) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `
		SELECT value FROM widget_kv
		WHERE scope = $1 AND key = $2
	`, p.scope, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "postgres storage: get %s", key)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO widget_kv (scope, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, p.scope, key, value)
	if err != nil {
		return errors.Wrapf(err, "postgres storage: set %s", key)
	}
	return nil
}
