// Package store holds the injected state containers for remote
// storefront resources. Each store owns one syncer plus the mutation
// entry points that go through the backend; nothing here is a package
// level singleton.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/auth"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/syncer"
)

type cartAPI interface {
	GetCart(ctx context.Context) (*domain.Cart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) (*domain.CartItem, error)
	RemoveCartItem(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context) error
}

// CartStore tracks the remote cart plus the local checkout selection.
// The selection lives only on this device and may reference lines that
// have since left the cart; such stale IDs are skipped, never errors.
type CartStore struct {
	api    cartAPI
	sync   *syncer.Syncer[[]domain.CartItem]
	logger *zap.Logger

	mu        sync.Mutex
	selection domain.Selection
}

func NewCartStore(api cartAPI, tokens auth.TokenSource, opts syncer.Options, logger *zap.Logger, metrics observability.Metrics) *CartStore {
	s := &CartStore{
		api:       api,
		logger:    logger,
		selection: domain.NewSelection(),
	}
	s.sync = syncer.New("cart", func(ctx context.Context, _ string) ([]domain.CartItem, error) {
		cart, err := api.GetCart(ctx)
		if err != nil {
			return nil, err
		}
		return cart.Items, nil
	}, tokens, opts, logger, metrics)
	return s
}

func (s *CartStore) Run(ctx context.Context)                    { s.sync.Run(ctx) }
func (s *CartStore) Refresh(ctx context.Context) error          { return s.sync.Refresh(ctx) }
func (s *CartStore) NotifyForeground(ctx context.Context) error { return s.sync.NotifyForeground(ctx) }

func (s *CartStore) Snapshot() syncer.Snapshot[[]domain.CartItem] {
	return s.sync.Snapshot()
}

// Items serves the cached cart, fetching only when the cache is stale.
func (s *CartStore) Items(ctx context.Context) ([]domain.CartItem, error) {
	if err := s.sync.Sync(ctx); err != nil {
		return nil, err
	}
	return s.sync.Snapshot().Data, nil
}

func (s *CartStore) Add(ctx context.Context, productID string, quantity int) error {
	if _, err := s.api.AddCartItem(ctx, productID, quantity); err != nil {
		return err
	}
	return s.sync.Refresh(ctx)
}

func (s *CartStore) Remove(ctx context.Context, itemID string) error {
	if err := s.api.RemoveCartItem(ctx, itemID); err != nil {
		return err
	}
	s.Deselect(itemID)
	return s.sync.Refresh(ctx)
}

// Clear empties the remote cart and drops the local selection.
func (s *CartStore) Clear(ctx context.Context) error {
	if err := s.api.ClearCart(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.selection = domain.NewSelection()
	s.mu.Unlock()
	return s.sync.Refresh(ctx)
}

func (s *CartStore) Select(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.selection.Add(id)
	}
}

func (s *CartStore) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Remove(id)
}

func (s *CartStore) Selection() domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := domain.NewSelection()
	for id := range s.selection {
		out.Add(id)
	}
	return out
}

// SelectedItems returns the cart lines chosen for checkout. IDs in the
// selection with no matching cart line are silently ignored.
func (s *CartStore) SelectedItems() []domain.CartItem {
	items := s.sync.Snapshot().Data
	sel := s.Selection()

	out := make([]domain.CartItem, 0, len(sel))
	for _, it := range items {
		if sel.Has(it.ID) {
			out = append(out, it)
		}
	}
	return out
}
