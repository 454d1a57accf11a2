package httpapi

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

type setSessionRequest struct {
	Token string `json:"token"`
}

func (s *Server) setSession(w http.ResponseWriter, r *http.Request) {
	var req setSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "token is required"})
		return
	}
	s.deps.Session.Set(req.Token)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sessionStatus(w http.ResponseWriter, r *http.Request) {
	type status struct {
		Authenticated bool   `json:"authenticated"`
		Code          string `json:"code,omitempty"`
	}
	if _, err := s.deps.Session.Token(); err != nil {
		code := "no_session"
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			code = "token_expired"
		case errors.Is(err, domain.ErrTokenInvalid):
			code = "token_invalid"
		}
		writeJSON(w, http.StatusOK, status{Code: code})
		return
	}
	writeJSON(w, http.StatusOK, status{Authenticated: true})
}

func (s *Server) clearSession(w http.ResponseWriter, _ *http.Request) {
	s.deps.Session.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Backend.ListProducts(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	for i := range items {
		s.deps.Products.Set(&items[i])
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if p, ok := s.deps.Products.Get(id); ok {
		s.deps.Metrics.IncCacheHit()
		writeJSON(w, http.StatusOK, p)
		return
	}
	s.deps.Metrics.IncCacheMiss()

	p, err := s.deps.Backend.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.deps.Products.Set(p)
	writeJSON(w, http.StatusOK, p)
}

type cartResponse struct {
	Items       []domain.CartItem `json:"items"`
	Selection   []string          `json:"selection"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Stale       bool              `json:"stale,omitempty"`
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Cart.Items(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap := s.deps.Cart.Snapshot()
	sel := make([]string, 0)
	for id := range s.deps.Cart.Selection() {
		sel = append(sel, id)
	}
	sort.Strings(sel)

	writeJSON(w, http.StatusOK, cartResponse{
		Items:       items,
		Selection:   sel,
		LastUpdated: snap.LastUpdated,
		Stale:       snap.Err != "",
	})
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "productId is required"})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if err := s.deps.Cart.Add(r.Context(), req.ProductID, req.Quantity); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Cart.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Cart.Clear(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) selectCartItems(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.deps.Cart.Select(req.IDs...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deselectCartItem(w http.ResponseWriter, r *http.Request) {
	s.deps.Cart.Deselect(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listAddresses(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Addresses.Addresses(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if !decodeJSON(w, r, &addr) {
		return
	}
	created, err := s.deps.Addresses.Create(r.Context(), addr)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) deleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Addresses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectOneRequest struct {
	ID string `json:"id"`
}

func (s *Server) selectAddress(w http.ResponseWriter, r *http.Request) {
	var req selectOneRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.deps.Addresses.SetSelected(req.ID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCards(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Cards.Cards(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type addCardRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
	SetDefault      bool   `json:"setDefault"`
}

func (s *Server) addCard(w http.ResponseWriter, r *http.Request) {
	var req addCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PaymentMethodID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "paymentMethodId is required"})
		return
	}
	card, err := s.deps.Cards.Add(r.Context(), req.PaymentMethodID, req.SetDefault)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) deleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Cards.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) selectCard(w http.ResponseWriter, r *http.Request) {
	var req selectOneRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.deps.Cards.SetSelected(req.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) voucherCatalog(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Vouchers.Catalog(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) userVouchers(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Vouchers.UserVouchers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type exchangeRequest struct {
	VoucherID string `json:"voucherId"`
}

func (s *Server) exchangeVoucher(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	uv, err := s.deps.Vouchers.Exchange(r.Context(), req.VoucherID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, uv)
}

type applyVoucherRequest struct {
	UserVoucherID string `json:"userVoucherId"`
}

func (s *Server) applyVoucher(w http.ResponseWriter, r *http.Request) {
	var req applyVoucherRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.deps.Vouchers.Apply(req.UserVoucherID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Favorites.Favorites(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type addFavoriteRequest struct {
	ProductID string `json:"productId"`
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "productId is required"})
		return
	}
	if err := s.deps.Favorites.Add(r.Context(), req.ProductID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Favorites.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Backend.ListOrders(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) appForeground(w http.ResponseWriter, r *http.Request) {
	for name, res := range s.resources() {
		if err := res.NotifyForeground(r.Context()); err != nil && !errors.Is(err, domain.ErrNoToken) {
			s.deps.Logger.Warn("foreground resync failed", zap.String("resource", name), zap.Error(err))
		}
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})
}

func (s *Server) refreshResource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "resource")
	res, ok := s.resources()[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown resource"})
		return
	}
	if err := res.Refresh(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
