package httpapi

import (
	"errors"
	"net/http"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/checkout"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

// buildRequest assembles a submission from the current store state. The
// address falls back through selected, default and first; a missing one
// is left nil for checkout validation to reject.
func (s *Server) buildRequest(r *http.Request, method domain.PaymentMethod) (checkout.Request, error) {
	ctx := r.Context()

	items, err := s.deps.Cart.Items(ctx)
	if err != nil {
		return checkout.Request{}, err
	}

	addr, err := s.deps.Addresses.Resolve(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return checkout.Request{}, err
	}

	req := checkout.Request{
		Items:     items,
		Selection: s.deps.Cart.Selection(),
		Address:   addr,
		Voucher:   s.deps.Vouchers.Applied(),
		Method:    method,
	}

	if method == domain.PaymentCard {
		card, err := s.deps.Cards.Resolve(ctx)
		if err != nil {
			return checkout.Request{}, err
		}
		req.Card = card
	}
	return req, nil
}

func (s *Server) previewCheckout(w http.ResponseWriter, r *http.Request) {
	req, err := s.buildRequest(r, domain.PaymentCOD)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Checkout.Preview(req))
}

type submitRequest struct {
	Method string `json:"method"`
	CardID string `json:"cardId,omitempty"`
}

func (s *Server) submitCheckout(w http.ResponseWriter, r *http.Request) {
	var body submitRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	method := domain.PaymentMethod(body.Method)
	if method != domain.PaymentCOD && method != domain.PaymentCard {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "method must be cod or card"})
		return
	}
	if body.CardID != "" {
		s.deps.Cards.SetSelected(body.CardID)
	}

	req, err := s.buildRequest(r, method)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.deps.Checkout.Submit(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
