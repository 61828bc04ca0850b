package cart

import "context"

// Storage is the key-value boundary the cart is mirrored to.
type Storage interface {
	// Get returns found=false with a nil error when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

const DefaultNamespace = "@GoMarketPlace"

// StorageKey is the single key the whole cart lives under.
func StorageKey(namespace string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + ":cart"
}
