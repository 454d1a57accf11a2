// Package syncer keeps a remote storefront resource fresh: TTL-served
// reads, periodic auto-refresh, and a one-shot resync when the app
// returns to the foreground. One Syncer owns one resource; independent
// syncers never coordinate.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/auth"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
)

// foregroundThreshold is how stale the last successful fetch must be
// before a background→foreground transition triggers a resync. Fixed,
// not per-instance.
const foregroundThreshold = 60 * time.Second

const genericFetchError = "failed to load data"

type Options struct {
	AutoRefresh     bool
	RefreshInterval time.Duration
	CacheTTL        time.Duration
}

func DefaultOptions() Options {
	return Options{
		AutoRefresh:     true,
		RefreshInterval: 30 * time.Second,
		CacheTTL:        60 * time.Second,
	}
}

func (o Options) normalized() Options {
	if o.RefreshInterval <= 0 {
		o.RefreshInterval = 30 * time.Second
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 60 * time.Second
	}
	return o
}

// FetchFunc loads the resource. The token is the one in effect when the
// fetch started.
type FetchFunc[T any] func(ctx context.Context, token string) (T, error)

// Snapshot is the consumer-facing view of the cache entry. Data is
// replaced wholesale on every successful fetch and retained stale on
// failures.
type Snapshot[T any] struct {
	Data        T
	LastUpdated time.Time
	Loading     bool
	Err         string
}

type Syncer[T any] struct {
	name    string
	fetch   FetchFunc[T]
	tokens  auth.TokenSource
	opts    Options
	logger  *zap.Logger
	metrics observability.Metrics

	mu       sync.Mutex
	data     T
	hasData  bool
	last     time.Time // last successful fetch
	errMsg   string
	inflight chan struct{} // non-nil while a fetch is running
	fetchErr error         // outcome of the fetch that just finished
}

func New[T any](name string, fetch FetchFunc[T], tokens auth.TokenSource, opts Options, logger *zap.Logger, metrics observability.Metrics) *Syncer[T] {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Syncer[T]{
		name:    name,
		fetch:   fetch,
		tokens:  tokens,
		opts:    opts.normalized(),
		logger:  logger,
		metrics: metrics,
	}
}

func (s *Syncer[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{
		Data:        s.data,
		LastUpdated: s.last,
		Loading:     s.inflight != nil,
		Err:         s.errMsg,
	}
}

// Sync fetches unless a value younger than CacheTTL is already held.
// Without a token it stays idle and reports domain.ErrNoToken.
func (s *Syncer[T]) Sync(ctx context.Context) error {
	s.mu.Lock()
	fresh := s.hasData && time.Since(s.last) < s.opts.CacheTTL
	s.mu.Unlock()
	if fresh {
		return nil
	}
	return s.doFetch(ctx)
}

// Refresh always fetches, regardless of cache age (pull-to-refresh).
func (s *Syncer[T]) Refresh(ctx context.Context) error {
	return s.doFetch(ctx)
}

// Run drives the periodic auto-refresh until ctx is done. It is a no-op
// when auto-refresh is disabled.
func (s *Syncer[T]) Run(ctx context.Context) {
	if !s.opts.AutoRefresh {
		return
	}

	t := time.NewTicker(s.opts.RefreshInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.doFetch(ctx); err != nil && !errors.Is(err, domain.ErrNoToken) {
				s.logger.Warn("periodic sync failed",
					zap.String("resource", s.name),
					zap.Error(err),
				)
			}
		}
	}
}

// NotifyForeground performs one extra fetch when the app returns to the
// foreground and the held value is older than the fixed threshold.
func (s *Syncer[T]) NotifyForeground(ctx context.Context) error {
	s.mu.Lock()
	stale := !s.hasData || time.Since(s.last) > foregroundThreshold
	s.mu.Unlock()
	if !stale {
		return nil
	}
	return s.doFetch(ctx)
}

// doFetch is the single fetch path. Overlapping triggers (timer,
// foreground event, explicit refresh) coalesce onto the in-flight fetch
// and share its outcome; exactly one network call runs at a time.
func (s *Syncer[T]) doFetch(ctx context.Context) error {
	tok, err := s.tokens.Token()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if ch := s.inflight; ch != nil {
		s.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
		res := s.fetchErr
		s.mu.Unlock()
		return res
	}
	ch := make(chan struct{})
	s.inflight = ch
	s.mu.Unlock()

	start := time.Now()
	data, err := s.fetch(ctx, tok)
	durMs := float64(time.Since(start).Microseconds()) / 1000.0

	s.mu.Lock()
	if err != nil {
		s.errMsg = errText(err)
		s.logger.Warn("fetch failed",
			zap.String("resource", s.name),
			zap.Error(err),
			zap.Float64("dur_ms", durMs),
		)
	} else {
		s.data = data
		s.hasData = true
		s.last = time.Now()
		s.errMsg = ""
		s.logger.Debug("resource synced",
			zap.String("resource", s.name),
			zap.Float64("dur_ms", durMs),
		)
	}
	s.fetchErr = err
	s.inflight = nil
	close(ch)
	s.mu.Unlock()

	s.metrics.ObserveSync(s.name, durMs, err == nil)
	return err
}

func errText(err error) string {
	if err == nil || err.Error() == "" {
		return genericFetchError
	}
	return err.Error()
}
