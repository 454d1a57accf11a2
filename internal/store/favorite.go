package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/auth"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/syncer"
)

type favoriteAPI interface {
	ListFavorites(ctx context.Context) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, productID string) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, id string) error
}

type FavoriteStore struct {
	api    favoriteAPI
	sync   *syncer.Syncer[[]domain.Favorite]
	logger *zap.Logger
}

func NewFavoriteStore(api favoriteAPI, tokens auth.TokenSource, opts syncer.Options, logger *zap.Logger, metrics observability.Metrics) *FavoriteStore {
	s := &FavoriteStore{
		api:    api,
		logger: logger,
	}
	s.sync = syncer.New("favorites", func(ctx context.Context, _ string) ([]domain.Favorite, error) {
		return api.ListFavorites(ctx)
	}, tokens, opts, logger, metrics)
	return s
}

func (s *FavoriteStore) Run(ctx context.Context)                    { s.sync.Run(ctx) }
func (s *FavoriteStore) Refresh(ctx context.Context) error          { return s.sync.Refresh(ctx) }
func (s *FavoriteStore) NotifyForeground(ctx context.Context) error { return s.sync.NotifyForeground(ctx) }

func (s *FavoriteStore) Snapshot() syncer.Snapshot[[]domain.Favorite] {
	return s.sync.Snapshot()
}

func (s *FavoriteStore) Favorites(ctx context.Context) ([]domain.Favorite, error) {
	if err := s.sync.Sync(ctx); err != nil {
		return nil, err
	}
	return s.sync.Snapshot().Data, nil
}

func (s *FavoriteStore) Add(ctx context.Context, productID string) error {
	if _, err := s.api.AddFavorite(ctx, productID); err != nil {
		return err
	}
	return s.sync.Refresh(ctx)
}

func (s *FavoriteStore) Remove(ctx context.Context, id string) error {
	if err := s.api.RemoveFavorite(ctx, id); err != nil {
		return err
	}
	return s.sync.Refresh(ctx)
}
