package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KVStore keeps cart blobs in PostgreSQL.
type KVStore struct {
	pool *pgxpool.Pool
}

func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{pool: pool}
}

func Open(ctx context.Context, dsn string) (*KVStore, func() error, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	store := NewKVStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, func() error {
		pool.Close()
		return nil
	}, nil
}

func (r *KVStore) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS kv_store (
            k TEXT PRIMARY KEY,
            v TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )
    `)
	return err
}

func (r *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT v FROM kv_store WHERE k = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO kv_store (k, v, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = NOW()
    `, key, value)
	return err
}
