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

type voucherAPI interface {
	ListVouchers(ctx context.Context) ([]domain.Voucher, error)
	ListUserVouchers(ctx context.Context) ([]domain.UserVoucher, error)
	ExchangeVoucher(ctx context.Context, voucherID string) (*domain.UserVoucher, error)
}

// VoucherStore syncs the user's redeemed vouchers and tracks which one
// is applied to the current checkout.
type VoucherStore struct {
	api    voucherAPI
	sync   *syncer.Syncer[[]domain.UserVoucher]
	logger *zap.Logger

	mu      sync.Mutex
	applied string // user voucher ID
}

func NewVoucherStore(api voucherAPI, tokens auth.TokenSource, opts syncer.Options, logger *zap.Logger, metrics observability.Metrics) *VoucherStore {
	s := &VoucherStore{
		api:    api,
		logger: logger,
	}
	s.sync = syncer.New("vouchers", func(ctx context.Context, _ string) ([]domain.UserVoucher, error) {
		return api.ListUserVouchers(ctx)
	}, tokens, opts, logger, metrics)
	return s
}

func (s *VoucherStore) Run(ctx context.Context)                    { s.sync.Run(ctx) }
func (s *VoucherStore) Refresh(ctx context.Context) error          { return s.sync.Refresh(ctx) }
func (s *VoucherStore) NotifyForeground(ctx context.Context) error { return s.sync.NotifyForeground(ctx) }

func (s *VoucherStore) Snapshot() syncer.Snapshot[[]domain.UserVoucher] {
	return s.sync.Snapshot()
}

func (s *VoucherStore) UserVouchers(ctx context.Context) ([]domain.UserVoucher, error) {
	if err := s.sync.Sync(ctx); err != nil {
		return nil, err
	}
	return s.sync.Snapshot().Data, nil
}

// Catalog lists vouchers available for point exchange; it is public
// data and not cached here.
func (s *VoucherStore) Catalog(ctx context.Context) ([]domain.Voucher, error) {
	return s.api.ListVouchers(ctx)
}

// Exchange redeems reward points for a voucher. Insufficient points
// surface as the backend's business error.
func (s *VoucherStore) Exchange(ctx context.Context, voucherID string) (*domain.UserVoucher, error) {
	uv, err := s.api.ExchangeVoucher(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	return uv, s.sync.Refresh(ctx)
}

// Apply marks a redeemed voucher for the current checkout; an empty ID
// clears it.
func (s *VoucherStore) Apply(id string) {
	s.mu.Lock()
	s.applied = id
	s.mu.Unlock()
}

// Applied resolves the applied user voucher, or nil when none is set or
// the applied one is no longer usable.
func (s *VoucherStore) Applied() *domain.UserVoucher {
	s.mu.Lock()
	applied := s.applied
	s.mu.Unlock()

	if applied == "" {
		return nil
	}
	for _, uv := range s.sync.Snapshot().Data {
		if uv.ID == applied && !uv.Used {
			out := uv
			return &out
		}
	}
	return nil
}
