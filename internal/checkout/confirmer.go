package checkout

import (
	"context"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/api"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

type verificationClient interface {
	CreateVerification(ctx context.Context, reference, cardID string) (*api.Verification, error)
}

// OTPConfirmer is the fallback card confirmation path for cards that
// cannot go through the processor sheet. It opens a verification record
// keyed by the payment intent, then hands off to prompt, which blocks
// until the user completes or aborts the challenge. An abort must be
// reported as domain.ErrPaymentCanceled.
type OTPConfirmer struct {
	api    verificationClient
	prompt func(ctx context.Context, verificationID string) error
}

func NewOTPConfirmer(api verificationClient, prompt func(ctx context.Context, verificationID string) error) *OTPConfirmer {
	return &OTPConfirmer{api: api, prompt: prompt}
}

func (c *OTPConfirmer) Confirm(ctx context.Context, _ *api.CustomerSession, intent *api.PaymentIntent, card *domain.Card) error {
	if card == nil {
		return ErrNoCard
	}
	v, err := c.api.CreateVerification(ctx, intent.ID, card.ID)
	if err != nil {
		return err
	}
	return c.prompt(ctx, v.ID)
}
