package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domcart "example.com/gomarketplace/internal/domain/cart"
	cartuc "example.com/gomarketplace/internal/usecase/cart"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "redis", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis")
}

func TestOpen_CartRoundTripAcrossSessions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.db")

	storage, closeFn, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	svc, err := cartuc.NewService(storage, cartuc.Options{})
	require.NoError(t, err)
	_, _, err = svc.AddToCart(ctx, domcart.Product{ID: "a", Title: "T", ImageURL: "u", Price: 10})
	require.NoError(t, err)
	_, err = svc.Increment(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	storage, closeFn, err = Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer closeFn()
	restored, err := cartuc.NewService(storage, cartuc.Options{})
	require.NoError(t, err)

	items, err := restored.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, []domcart.Item{{ID: "a", Title: "T", ImageURL: "u", Price: 10, Quantity: 2}}, items)
}

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	storage, closeFn, err := Open(ctx, DriverMemory, "")
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, storage.Set(ctx, "k", "v"))
	v, found, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", v)
}
