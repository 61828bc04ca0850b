package cart

import (
	"context"

	domcart "example.com/gomarketplace/internal/domain/cart"
)

type ctxKey struct{}

// Accessor is what consumers inside a provider scope work with.
type Accessor interface {
	Items(ctx context.Context) ([]domcart.Item, error)
	AddToCart(ctx context.Context, p domcart.Product) ([]domcart.Item, bool, error)
	Increment(ctx context.Context, id string) ([]domcart.Item, error)
	Decrement(ctx context.Context, id string) ([]domcart.Item, error)
}

var _ Accessor = (*Service)(nil)

// WithService opens a provider scope for svc.
func WithService(ctx context.Context, svc *Service) context.Context {
	return context.WithValue(ctx, ctxKey{}, svc)
}

// FromContext fails with ErrMissingProvider when ctx has no provider scope.
// It never touches storage.
func FromContext(ctx context.Context) (Accessor, error) {
	svc, ok := ctx.Value(ctxKey{}).(*Service)
	if !ok || svc == nil {
		return nil, domcart.ErrMissingProvider
	}
	return svc, nil
}

func MustFromContext(ctx context.Context) Accessor {
	a, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return a
}
