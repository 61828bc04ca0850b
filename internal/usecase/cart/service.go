package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domcart "example.com/gomarketplace/internal/domain/cart"
)

type Options struct {
	Namespace       string
	DecrementPolicy domcart.DecrementPolicy
	Logger          *zap.Logger
}

// Service is the single source of truth for the cart. Every mutation runs
// under one writer lock that spans read, compute, publish and persist.
type Service struct {
	storage domcart.Storage
	key     string
	policy  domcart.DecrementPolicy
	logger  *zap.Logger

	mu     sync.Mutex
	loaded bool
	items  domcart.Cart

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan []domcart.Item
}

// NewService fails with ErrInvalidPolicy for an unknown decrement policy; an
// empty policy means AllowNegative.
func NewService(storage domcart.Storage, opts Options) (*Service, error) {
	policy, err := domcart.ParseDecrementPolicy(string(opts.DecrementPolicy))
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage: storage,
		key:     domcart.StorageKey(opts.Namespace),
		policy:  policy,
		logger:  logger,
		items:   domcart.Cart{},
		subs:    make(map[int]chan []domcart.Item),
	}, nil
}

func (s *Service) Key() string {
	return s.key
}

func (s *Service) Policy() domcart.DecrementPolicy {
	return s.policy
}

// Initialize loads the persisted cart. Only the first successful call reads
// storage; later calls return immediately.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked(ctx)
}

func (s *Service) initLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load cart %q: %w", s.key, err)
	}
	if !found {
		s.loaded = true
		s.logger.Debug("no persisted cart", zap.String("key", s.key))
		return nil
	}

	items, err := domcart.Decode(raw)
	if err != nil {
		s.logger.Error("persisted cart is malformed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("load cart %q: %w", s.key, err)
	}

	s.items = items
	s.loaded = true
	s.logger.Debug("cart loaded", zap.String("key", s.key), zap.Int("items", len(items)))
	s.publishLocked()
	return nil
}

func (s *Service) Items(ctx context.Context) ([]domcart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(ctx); err != nil {
		return nil, err
	}
	return s.items.Clone(), nil
}

// AddToCart appends p with quantity 1. Re-adding an ID already in the cart is
// a no-op: the first insertion wins. The returned bool reports whether p was
// added.
func (s *Service) AddToCart(ctx context.Context, p domcart.Product) ([]domcart.Item, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(ctx); err != nil {
		return nil, false, err
	}

	if s.items.IndexOf(p.ID) >= 0 {
		return s.items.Clone(), false, nil
	}

	next := s.items.Clone()
	next = append(next, domcart.NewItem(p))
	if err := s.commitLocked(ctx, next, "add", p.ID); err != nil {
		return s.items.Clone(), s.items.IndexOf(p.ID) >= 0, err
	}
	return s.items.Clone(), true, nil
}

// Increment adds one to the quantity of id. Unknown IDs are ignored.
func (s *Service) Increment(ctx context.Context, id string) ([]domcart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.items.IndexOf(id)
	if idx < 0 {
		return s.items.Clone(), nil
	}

	next := s.items.Clone()
	next[idx].Quantity++
	if err := s.commitLocked(ctx, next, "increment", id); err != nil {
		return s.items.Clone(), err
	}
	return s.items.Clone(), nil
}

// Decrement lowers the quantity of id according to the configured policy.
// Unknown IDs are ignored.
func (s *Service) Decrement(ctx context.Context, id string) ([]domcart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(ctx); err != nil {
		return nil, err
	}

	idx := s.items.IndexOf(id)
	if idx < 0 {
		return s.items.Clone(), nil
	}

	next, changed := s.policy.Apply(s.items.Clone(), idx)
	if !changed {
		return s.items.Clone(), nil
	}
	if err := s.commitLocked(ctx, next, "decrement", id); err != nil {
		return s.items.Clone(), err
	}
	return s.items.Clone(), nil
}

// commitLocked publishes next and then writes the whole cart. A cart that
// cannot be encoded is never published; a failed write leaves the published
// state in place.
func (s *Service) commitLocked(ctx context.Context, next domcart.Cart, op, id string) error {
	raw, err := domcart.Encode(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	s.items = next
	s.publishLocked()

	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		s.logger.Error("persist cart failed",
			zap.String("op", op),
			zap.String("id", id),
			zap.Error(err),
		)
		return fmt.Errorf("persist cart %q: %w", s.key, err)
	}

	s.logger.Debug("cart updated",
		zap.String("op", op),
		zap.String("id", id),
		zap.Int("items", len(next)),
	)
	return nil
}
