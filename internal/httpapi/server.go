// Package httpapi exposes the gateway's local REST surface. Handlers
// delegate to the injected stores; nothing here talks to the backend
// directly except through them.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/api"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/auth"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/cache"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/checkout"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/pkg/circuit"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/store"
)

type backendAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// resource is the part of a store the sync control routes need.
type resource interface {
	Refresh(ctx context.Context) error
	NotifyForeground(ctx context.Context) error
}

type Deps struct {
	Session   *auth.Store
	Backend   backendAPI
	Products  *cache.Cache
	Cart      *store.CartStore
	Addresses *store.AddressStore
	Cards     *store.CardStore
	Vouchers  *store.VoucherStore
	Favorites *store.FavoriteStore
	Checkout  *checkout.Orchestrator
	Logger    *zap.Logger
	Metrics   observability.Metrics
}

type Server struct {
	deps   Deps
	router chi.Router
}

func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NewNoop()
	}
	s := &Server{deps: deps, router: chi.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(ServerTimingApp(s.deps.Metrics))

	s.router.Get("/healthz", s.healthz)

	s.router.Post("/session", s.setSession)
	s.router.Get("/session", s.sessionStatus)
	s.router.Delete("/session", s.clearSession)

	s.router.Get("/products", s.listProducts)
	s.router.Get("/products/{id}", s.getProduct)

	s.router.Route("/cart", func(r chi.Router) {
		r.Get("/", s.getCart)
		r.Post("/items", s.addCartItem)
		r.Delete("/items/{id}", s.removeCartItem)
		r.Post("/clear", s.clearCart)
		r.Post("/select", s.selectCartItems)
		r.Delete("/select/{id}", s.deselectCartItem)
	})

	s.router.Route("/addresses", func(r chi.Router) {
		r.Get("/", s.listAddresses)
		r.Post("/", s.createAddress)
		r.Delete("/{id}", s.deleteAddress)
		r.Post("/select", s.selectAddress)
	})

	s.router.Route("/cards", func(r chi.Router) {
		r.Get("/", s.listCards)
		r.Post("/", s.addCard)
		r.Delete("/{id}", s.deleteCard)
		r.Post("/select", s.selectCard)
	})

	s.router.Route("/vouchers", func(r chi.Router) {
		r.Get("/", s.voucherCatalog)
		r.Get("/mine", s.userVouchers)
		r.Post("/exchange", s.exchangeVoucher)
		r.Post("/apply", s.applyVoucher)
	})

	s.router.Route("/favorites", func(r chi.Router) {
		r.Get("/", s.listFavorites)
		r.Post("/", s.addFavorite)
		r.Delete("/{id}", s.removeFavorite)
	})

	s.router.Get("/orders", s.listOrders)
	s.router.Get("/checkout/preview", s.previewCheckout)
	s.router.Post("/checkout", s.submitCheckout)

	s.router.Post("/app/foreground", s.appForeground)
	s.router.Post("/refresh/{resource}", s.refreshResource)
}

func (s *Server) resources() map[string]resource {
	return map[string]resource{
		"cart":      s.deps.Cart,
		"addresses": s.deps.Addresses,
		"cards":     s.deps.Cards,
		"vouchers":  s.deps.Vouchers,
		"favorites": s.deps.Favorites,
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	s.deps.Logger.Info("gateway listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// badRequestErrs are checkout validation failures surfaced verbatim.
var badRequestErrs = []error{
	checkout.ErrNoAddress,
	checkout.ErrAddressIncomplete,
	checkout.ErrInvalidPhone,
	checkout.ErrNoCard,
	checkout.ErrEmptySelection,
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	for _, sentinel := range badRequestErrs {
		if errors.Is(err, sentinel) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	var apiErr *api.Error
	switch {
	case errors.Is(err, checkout.ErrAlreadySubmitting):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "already_submitting"})
	case errors.Is(err, domain.ErrPaymentCanceled):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "payment_canceled"})
	case errors.Is(err, domain.ErrNoToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "no_session"})
	case errors.Is(err, domain.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "token_expired"})
	case errors.Is(err, domain.ErrTokenInvalid):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "token_invalid"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, circuit.ErrOpen), errors.Is(err, api.ErrUnreachable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: api.ErrUnreachable.Error(), Code: "unreachable"})
	case errors.As(err, &apiErr):
		writeJSON(w, apiErr.Status, errorResponse{Error: apiErr.Message, Code: apiErr.Code})
	default:
		s.deps.Logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json"})
		return false
	}
	return true
}
