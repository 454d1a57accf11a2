package checkout

import (
	"errors"
	"regexp"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

var (
	ErrNoAddress         = errors.New("checkout: shipping address is required")
	ErrAddressIncomplete = errors.New("checkout: shipping address is missing required fields")
	ErrInvalidPhone      = errors.New("checkout: phone is not a valid Vietnamese mobile number")
	ErrNoCard            = errors.New("checkout: no card available for card payment")
	ErrEmptySelection    = errors.New("checkout: no cart items selected")
	ErrAlreadySubmitting = errors.New("checkout: a submission is already in progress")
)

// Vietnamese mobile numbers: leading zero, 10 or 11 digits total.
var phonePattern = regexp.MustCompile(`^0\d{9,10}$`)

// validate runs every local check before any network call is made. A
// request that fails here produces no backend traffic at all.
func validate(req Request) error {
	if req.Address == nil {
		return ErrNoAddress
	}
	if req.Address.Name == "" || req.Address.Phone == "" || req.Address.Address == "" {
		return ErrAddressIncomplete
	}
	if !phonePattern.MatchString(req.Address.Phone) {
		return ErrInvalidPhone
	}
	if req.Method == domain.PaymentCard && req.Card == nil {
		return ErrNoCard
	}

	selected := 0
	for _, it := range req.Items {
		if req.Selection.Has(it.ID) {
			selected++
		}
	}
	if selected == 0 {
		return ErrEmptySelection
	}
	return nil
}
