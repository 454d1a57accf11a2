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

type cardAPI interface {
	ListCards(ctx context.Context) ([]domain.Card, error)
	AddCard(ctx context.Context, paymentMethodID string, setDefault bool) (*domain.Card, error)
	DeleteCard(ctx context.Context, id string) error
}

// CardStore resolves the card used for a card payment: the user-chosen
// one, else the default, else the first available.
type CardStore struct {
	api    cardAPI
	sync   *syncer.Syncer[[]domain.Card]
	logger *zap.Logger

	mu       sync.Mutex
	selected string
}

func NewCardStore(api cardAPI, tokens auth.TokenSource, opts syncer.Options, logger *zap.Logger, metrics observability.Metrics) *CardStore {
	s := &CardStore{
		api:    api,
		logger: logger,
	}
	s.sync = syncer.New("cards", func(ctx context.Context, _ string) ([]domain.Card, error) {
		return api.ListCards(ctx)
	}, tokens, opts, logger, metrics)
	return s
}

func (s *CardStore) Run(ctx context.Context)                    { s.sync.Run(ctx) }
func (s *CardStore) Refresh(ctx context.Context) error          { return s.sync.Refresh(ctx) }
func (s *CardStore) NotifyForeground(ctx context.Context) error { return s.sync.NotifyForeground(ctx) }

func (s *CardStore) Snapshot() syncer.Snapshot[[]domain.Card] {
	return s.sync.Snapshot()
}

func (s *CardStore) Cards(ctx context.Context) ([]domain.Card, error) {
	if err := s.sync.Sync(ctx); err != nil {
		return nil, err
	}
	return s.sync.Snapshot().Data, nil
}

func (s *CardStore) SetSelected(id string) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
}

// Resolve returns nil when no card is available; the checkout validator
// turns that into a blocking error for the card path.
func (s *CardStore) Resolve(ctx context.Context) (*domain.Card, error) {
	cards, err := s.Cards(ctx)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	selected := s.selected
	s.mu.Unlock()

	if selected != "" {
		for i := range cards {
			if cards[i].ID == selected {
				return &cards[i], nil
			}
		}
	}
	for i := range cards {
		if cards[i].IsDefault {
			return &cards[i], nil
		}
	}
	return &cards[0], nil
}

func (s *CardStore) Add(ctx context.Context, paymentMethodID string, setDefault bool) (*domain.Card, error) {
	card, err := s.api.AddCard(ctx, paymentMethodID, setDefault)
	if err != nil {
		return nil, err
	}
	return card, s.sync.Refresh(ctx)
}

// Delete removes a card. Deleting the default card is a business rule
// the backend enforces; its message is passed through untouched.
func (s *CardStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteCard(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if s.selected == id {
		s.selected = ""
	}
	s.mu.Unlock()
	return s.sync.Refresh(ctx)
}
