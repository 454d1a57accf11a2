package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/api"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/auth"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/cache"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/checkout"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/config"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/httpapi"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/kvstore"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/notify"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/pkg/circuit"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/store"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/syncer"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	metrics := observability.NewInmem(256)

	session := auth.NewStore(logger)
	if tok := os.Getenv("SESSION_TOKEN"); tok != "" {
		session.Set(tok)
	}
	session.OnFailure(func(kind auth.FailureKind) {
		if kind == auth.FailureExpired {
			logger.Warn("session expired, re-authentication required")
			return
		}
		logger.Warn("session rejected, cleared")
	})

	breaker := circuit.New(cfg.Breaker.Threshold, cfg.Breaker.OpenTimeout, cfg.Breaker.MaxHalfOpen)
	backend := api.New(cfg.API, session, breaker, cfg.Retry, logger)

	kv, err := kvstore.Open(cfg.KVPath)
	if err != nil {
		logger.Fatal("open local store", zap.String("path", cfg.KVPath), zap.Error(err))
	}

	products, err := cache.New(cfg.CacheCap)
	if err != nil {
		logger.Fatal("product cache", zap.Error(err))
	}

	opts := syncer.Options{
		AutoRefresh:     true,
		RefreshInterval: cfg.Sync.RefreshInterval,
		CacheTTL:        cfg.Sync.CacheTTL,
	}

	cart := store.NewCartStore(backend, session, opts, logger, metrics)
	addresses := store.NewAddressStore(backend, kv, session, opts, logger, metrics)
	cards := store.NewCardStore(backend, session, opts, logger, metrics)
	vouchers := store.NewVoucherStore(backend, session, opts, logger, metrics)
	favorites := store.NewFavoriteStore(backend, session, opts, logger, metrics)

	notifier := notify.New(backend, cfg.NotifyWorker, logger)
	defer notifier.Close()

	// The embedding UI completes the processor sheet with the intent's
	// client secret before the submission returns here.
	confirmer := checkout.ConfirmerFunc(func(_ context.Context, _ *api.CustomerSession, intent *api.PaymentIntent, _ *domain.Card) error {
		logger.Info("payment confirmed via processor sheet", zap.String("intent", intent.ID))
		return nil
	})

	orchestrator := checkout.New(
		backend, backend, cart, confirmer, notifier,
		cfg.Pricing.ShippingFee, metrics, logger,
	)

	server := httpapi.New(httpapi.Deps{
		Session:   session,
		Backend:   backend,
		Products:  products,
		Cart:      cart,
		Addresses: addresses,
		Cards:     cards,
		Vouchers:  vouchers,
		Favorites: favorites,
		Checkout:  orchestrator,
		Logger:    logger,
		Metrics:   metrics,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go products.Warm(ctx, backend)
	go cart.Run(ctx)
	go addresses.Run(ctx)
	go cards.Run(ctx)
	go vouchers.Run(ctx)
	go favorites.Run(ctx)

	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("gateway stopped")
}
