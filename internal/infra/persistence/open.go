package persistence

import (
	"context"
	"fmt"

	domcart "example.com/gomarketplace/internal/domain/cart"
	"example.com/gomarketplace/internal/infra/persistence/memory"
	"example.com/gomarketplace/internal/infra/persistence/mysql"
	"example.com/gomarketplace/internal/infra/persistence/postgres"
	"example.com/gomarketplace/internal/infra/persistence/sqlite"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Open returns the cart storage for driver along with its close func.
func Open(ctx context.Context, driver, dsn string) (domcart.Storage, func() error, error) {
	switch driver {
	case DriverMemory:
		return memory.NewKVStore(), func() error { return nil }, nil
	case DriverSQLite:
		store, closeFn, err := sqlite.Open(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		return store, closeFn, nil
	case DriverMySQL:
		store, closeFn, err := mysql.Open(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("mysql: %w", err)
		}
		return store, closeFn, nil
	case DriverPostgres:
		store, closeFn, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return store, closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
