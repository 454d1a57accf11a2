package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/api"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/auth"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/cache"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/checkout"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/kvstore"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/store"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/syncer"
)

// fakeBackend stands in for the remote storefront API across every
// resource the gateway touches.
type fakeBackend struct {
	mu sync.Mutex

	products  []domain.Product
	cart      []domain.CartItem
	addresses []domain.Address
	cards     []domain.Card
	vouchers  []domain.UserVoucher
	favorites []domain.Favorite
	orders    []domain.Order

	productCalls int
	cartFetches  int
	orderCalls   int
	cartCleared  int
	lastOrderKey string
}

func (f *fakeBackend) ListProducts(context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeBackend) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls++
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBackend) ListOrders(context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Order(nil), f.orders...), nil
}

func (f *fakeBackend) GetCart(context.Context) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartFetches++
	return &domain.Cart{Items: append([]domain.CartItem(nil), f.cart...)}, nil
}

func (f *fakeBackend) AddCartItem(_ context.Context, productID string, quantity int) (*domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := domain.CartItem{ID: "line-" + productID, ProductID: productID, Quantity: quantity}
	f.cart = append(f.cart, item)
	return &item, nil
}

func (f *fakeBackend) RemoveCartItem(_ context.Context, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.cart[:0]
	for _, it := range f.cart {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	f.cart = out
	return nil
}

func (f *fakeBackend) ClearCart(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartCleared++
	f.cart = nil
	return nil
}

func (f *fakeBackend) ListAddresses(context.Context) ([]domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Address(nil), f.addresses...), nil
}

func (f *fakeBackend) CreateAddress(_ context.Context, addr domain.Address) (*domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	addr.ID = "addr-new"
	f.addresses = append(f.addresses, addr)
	return &addr, nil
}

func (f *fakeBackend) DeleteAddress(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.addresses[:0]
	for _, a := range f.addresses {
		if a.ID != id {
			out = append(out, a)
		}
	}
	f.addresses = out
	return nil
}

func (f *fakeBackend) ListCards(context.Context) ([]domain.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Card(nil), f.cards...), nil
}

func (f *fakeBackend) AddCard(_ context.Context, paymentMethodID string, setDefault bool) (*domain.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card := domain.Card{ID: "card-" + paymentMethodID, IsDefault: setDefault}
	f.cards = append(f.cards, card)
	return &card, nil
}

func (f *fakeBackend) DeleteCard(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.cards[:0]
	for _, c := range f.cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	f.cards = out
	return nil
}

func (f *fakeBackend) ListVouchers(context.Context) ([]domain.Voucher, error) {
	return nil, nil
}

func (f *fakeBackend) ListUserVouchers(context.Context) ([]domain.UserVoucher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.UserVoucher(nil), f.vouchers...), nil
}

func (f *fakeBackend) ExchangeVoucher(_ context.Context, voucherID string) (*domain.UserVoucher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uv := domain.UserVoucher{ID: "uv-" + voucherID, Voucher: domain.Voucher{ID: voucherID}}
	f.vouchers = append(f.vouchers, uv)
	return &uv, nil
}

func (f *fakeBackend) ListFavorites(context.Context) ([]domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Favorite(nil), f.favorites...), nil
}

func (f *fakeBackend) AddFavorite(_ context.Context, productID string) (*domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fav := domain.Favorite{ID: "fav-" + productID, ProductID: productID}
	f.favorites = append(f.favorites, fav)
	return &fav, nil
}

func (f *fakeBackend) RemoveFavorite(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.favorites[:0]
	for _, fav := range f.favorites {
		if fav.ID != id {
			out = append(out, fav)
		}
	}
	f.favorites = out
	return nil
}

func (f *fakeBackend) CreateOrder(_ context.Context, req domain.CreateOrderRequest, key string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderCalls++
	f.lastOrderKey = key
	order := domain.Order{ID: "ord-1", Items: req.Items, TotalAmount: req.TotalAmount, PaymentMethod: req.PaymentMethod}
	f.orders = append(f.orders, order)
	return &order, nil
}

func (f *fakeBackend) CreateCustomerSession(context.Context) (*api.CustomerSession, error) {
	return &api.CustomerSession{CustomerID: "cus"}, nil
}

func (f *fakeBackend) CreatePaymentIntent(context.Context, float64) (*api.PaymentIntent, error) {
	return &api.PaymentIntent{ID: "pi-1"}, nil
}

func (f *fakeBackend) ConfirmPayment(context.Context, string, string) error { return nil }

type harness struct {
	srv     *httptest.Server
	backend *fakeBackend
	session *auth.Store
	metrics *observability.Inmem
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	backend := &fakeBackend{}
	logger := zaptest.NewLogger(t)
	metrics := observability.NewInmem(64)
	session := auth.NewStore(logger)
	session.Set("test-token")

	opts := syncer.Options{AutoRefresh: false}

	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "local.json"))
	require.NoError(t, err)

	products, err := cache.New(16)
	require.NoError(t, err)

	cart := store.NewCartStore(backend, session, opts, logger, metrics)
	addresses := store.NewAddressStore(backend, kv, session, opts, logger, metrics)
	cards := store.NewCardStore(backend, session, opts, logger, metrics)
	vouchers := store.NewVoucherStore(backend, session, opts, logger, metrics)
	favorites := store.NewFavoriteStore(backend, session, opts, logger, metrics)

	confirm := checkout.ConfirmerFunc(func(context.Context, *api.CustomerSession, *api.PaymentIntent, *domain.Card) error {
		return nil
	})
	orch := checkout.New(backend, backend, cart, confirm, nil, checkout.DefaultShippingFee, metrics, logger)

	s := New(Deps{
		Session:   session,
		Backend:   backend,
		Products:  products,
		Cart:      cart,
		Addresses: addresses,
		Cards:     cards,
		Vouchers:  vouchers,
		Favorites: favorites,
		Checkout:  orch,
		Logger:    logger,
		Metrics:   metrics,
	})

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &harness{srv: srv, backend: backend, session: session, metrics: metrics}
}

func (h *harness) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, rd)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetProductUsesCache(t *testing.T) {
	h := newHarness(t)
	h.backend.products = []domain.Product{{ID: "p1", Name: "Whey"}}

	resp, _ := h.do(t, http.MethodGet, "/products/p1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = h.do(t, http.MethodGet, "/products/p1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, 1, h.backend.productCalls, "second read must be served from cache")
	hits, misses := h.metrics.CacheTotals()
	require.Equal(t, 1, hits)
	require.Equal(t, 1, misses)
}

func TestGetProductNotFound(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(t, http.MethodGet, "/products/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartSelection(t *testing.T) {
	h := newHarness(t)
	h.backend.cart = []domain.CartItem{
		{ID: "line-1", ProductID: "p1", Price: 100, Quantity: 1},
		{ID: "line-2", ProductID: "p2", Price: 200, Quantity: 1},
	}

	resp, _ := h.do(t, http.MethodPost, "/cart/select", map[string]any{"ids": []string{"line-2", "line-1"}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw := h.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body cartResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Items, 2)
	require.Equal(t, []string{"line-1", "line-2"}, body.Selection)
}

func TestCartRequiresSession(t *testing.T) {
	h := newHarness(t)
	h.session.Clear()

	resp, raw := h.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, "no_session", body.Code)
}

func TestSubmitCheckoutCOD(t *testing.T) {
	h := newHarness(t)
	h.backend.cart = []domain.CartItem{{ID: "line-1", ProductID: "p1", Price: 100000, Quantity: 3}}
	h.backend.addresses = []domain.Address{{
		ID: "addr-1", Name: "Nguyen Van A", Phone: "0912345678", Address: "12 Le Loi", IsDefault: true,
	}}

	resp, _ := h.do(t, http.MethodPost, "/cart/select", map[string]any{"ids": []string{"line-1"}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw := h.do(t, http.MethodPost, "/checkout", map[string]string{"method": "cod"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res checkout.Result
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Equal(t, "ord-1", res.Order.ID)
	require.Equal(t, 325000.0, res.Breakdown.GrandTotal)

	require.Equal(t, 1, h.backend.orderCalls)
	require.NotEmpty(t, h.backend.lastOrderKey)
	require.Equal(t, 1, h.backend.cartCleared)
}

func TestSubmitCheckoutCard(t *testing.T) {
	h := newHarness(t)
	h.backend.cart = []domain.CartItem{{ID: "line-1", ProductID: "p1", Price: 50000, Quantity: 1}}
	h.backend.addresses = []domain.Address{{
		ID: "addr-1", Name: "Nguyen Van A", Phone: "0912345678", Address: "12 Le Loi", IsDefault: true,
	}}
	h.backend.cards = []domain.Card{{ID: "card-1", IsDefault: true}}

	resp, _ := h.do(t, http.MethodPost, "/cart/select", map[string]any{"ids": []string{"line-1"}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/checkout", map[string]string{"method": "card"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, 1, h.backend.orderCalls)
}

func TestSubmitCheckoutValidation(t *testing.T) {
	h := newHarness(t)
	h.backend.cart = []domain.CartItem{{ID: "line-1", ProductID: "p1", Price: 100, Quantity: 1}}

	// Nothing selected.
	resp, _ := h.do(t, http.MethodPost, "/checkout", map[string]string{"method": "cod"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Zero(t, h.backend.orderCalls)

	// Unknown method.
	resp, _ = h.do(t, http.MethodPost, "/checkout", map[string]string{"method": "wire"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutPreview(t *testing.T) {
	h := newHarness(t)
	h.backend.cart = []domain.CartItem{{ID: "line-1", ProductID: "p1", Price: 100000, Quantity: 3}}

	resp, _ := h.do(t, http.MethodPost, "/cart/select", map[string]any{"ids": []string{"line-1"}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw := h.do(t, http.MethodGet, "/checkout/preview", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var b checkout.Breakdown
	require.NoError(t, json.Unmarshal(raw, &b))
	require.Equal(t, 300000.0, b.Subtotal)
	require.Equal(t, 325000.0, b.GrandTotal)
}

func TestRefreshResource(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.do(t, http.MethodPost, "/refresh/cart", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, 1, h.backend.cartFetches)

	resp, _ = h.do(t, http.MethodPost, "/refresh/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAppForeground(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(t, http.MethodPost, "/app/foreground", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	h := newHarness(t)
	h.session.Clear()

	resp, raw := h.do(t, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st struct {
		Authenticated bool   `json:"authenticated"`
		Code          string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(raw, &st))
	require.False(t, st.Authenticated)
	require.Equal(t, "no_session", st.Code)

	resp, _ = h.do(t, http.MethodPost, "/session", map[string]string{"token": "test-token"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = h.do(t, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &st))
	require.True(t, st.Authenticated)
}

func TestVoucherExchangeAndApply(t *testing.T) {
	h := newHarness(t)

	resp, raw := h.do(t, http.MethodPost, "/vouchers/exchange", map[string]string{"voucherId": "v1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var uv domain.UserVoucher
	require.NoError(t, json.Unmarshal(raw, &uv))
	require.Equal(t, "uv-v1", uv.ID)

	resp, _ = h.do(t, http.MethodPost, "/vouchers/apply", map[string]string{"userVoucherId": uv.ID})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
