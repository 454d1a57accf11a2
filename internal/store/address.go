package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/auth"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/kvstore"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/syncer"
)

const selectedAddressKey = "selected_address"

type addressAPI interface {
	ListAddresses(ctx context.Context) ([]domain.Address, error)
	CreateAddress(ctx context.Context, addr domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, id string) error
}

type localStore interface {
	Get(key string, out any) error
	Put(key string, v any) error
	Delete(key string) error
}

// AddressStore resolves the shipping address: the locally selected one
// if still present, else the backend default, else the first entry.
type AddressStore struct {
	api    addressAPI
	kv     localStore
	sync   *syncer.Syncer[[]domain.Address]
	logger *zap.Logger

	mu sync.Mutex
}

func NewAddressStore(api addressAPI, kv localStore, tokens auth.TokenSource, opts syncer.Options, logger *zap.Logger, metrics observability.Metrics) *AddressStore {
	s := &AddressStore{
		api:    api,
		kv:     kv,
		logger: logger,
	}
	s.sync = syncer.New("addresses", func(ctx context.Context, _ string) ([]domain.Address, error) {
		return api.ListAddresses(ctx)
	}, tokens, opts, logger, metrics)
	return s
}

func (s *AddressStore) Run(ctx context.Context)                    { s.sync.Run(ctx) }
func (s *AddressStore) Refresh(ctx context.Context) error          { return s.sync.Refresh(ctx) }
func (s *AddressStore) NotifyForeground(ctx context.Context) error { return s.sync.NotifyForeground(ctx) }

func (s *AddressStore) Snapshot() syncer.Snapshot[[]domain.Address] {
	return s.sync.Snapshot()
}

func (s *AddressStore) Addresses(ctx context.Context) ([]domain.Address, error) {
	if err := s.sync.Sync(ctx); err != nil {
		return nil, err
	}
	return s.sync.Snapshot().Data, nil
}

// SetSelected persists the chosen address on-device so it survives
// restarts; it is not sent to the backend.
func (s *AddressStore) SetSelected(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Put(selectedAddressKey, id)
}

// Resolve picks the shipping address for checkout.
func (s *AddressStore) Resolve(ctx context.Context) (*domain.Address, error) {
	addrs, err := s.Addresses(ctx)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, domain.ErrNotFound
	}

	var selectedID string
	if err := s.kv.Get(selectedAddressKey, &selectedID); err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		s.logger.Warn("reading selected address", zap.Error(err))
	}
	if selectedID != "" {
		for i := range addrs {
			if addrs[i].ID == selectedID {
				return &addrs[i], nil
			}
		}
		// The selected entry was deleted elsewhere; fall through.
	}

	for i := range addrs {
		if addrs[i].IsDefault {
			return &addrs[i], nil
		}
	}
	return &addrs[0], nil
}

func (s *AddressStore) Create(ctx context.Context, addr domain.Address) (*domain.Address, error) {
	created, err := s.api.CreateAddress(ctx, addr)
	if err != nil {
		return nil, err
	}
	return created, s.sync.Refresh(ctx)
}

func (s *AddressStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteAddress(ctx, id); err != nil {
		return err
	}

	var selectedID string
	if err := s.kv.Get(selectedAddressKey, &selectedID); err == nil && selectedID == id {
		_ = s.kv.Delete(selectedAddressKey)
	}
	return s.sync.Refresh(ctx)
}
