package api

import "context"

// The payment processor is reached only through backend endpoints; the
// gateway never talks to it directly.

type CustomerSession struct {
	CustomerID     string `json:"customerId"`
	EphemeralKey   string `json:"ephemeralKey"`
	PublishableKey string `json:"publishableKey"`
}

func (c *Client) CreateCustomerSession(ctx context.Context) (*CustomerSession, error) {
	var out CustomerSession
	if err := c.post(ctx, "/payments/stripe/customer-session", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type SetupIntent struct {
	ClientSecret string `json:"clientSecret"`
}

func (c *Client) CreateSetupIntent(ctx context.Context) (*SetupIntent, error) {
	var out SetupIntent
	if err := c.post(ctx, "/payments/stripe/create-setup-intent", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type createPaymentIntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type PaymentIntent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, amount float64) (*PaymentIntent, error) {
	var out PaymentIntent
	req := createPaymentIntentRequest{Amount: amount, Currency: "vnd"}
	if err := c.post(ctx, "/payments/stripe/create-payment-intent", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SyncPaymentMethods(ctx context.Context) error {
	return c.post(ctx, "/payments/stripe/sync-payment-methods", nil, nil)
}

type confirmPaymentRequest struct {
	OrderID         string `json:"orderId"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// ConfirmPayment reconciles a processor-confirmed intent with the order
// on the backend side.
func (c *Client) ConfirmPayment(ctx context.Context, orderID, paymentIntentID string) error {
	req := confirmPaymentRequest{OrderID: orderID, PaymentIntentID: paymentIntentID}
	return c.post(ctx, "/payments/stripe/confirm", req, nil)
}

type createVerificationRequest struct {
	Reference string `json:"orderId"`
	CardID    string `json:"cardId"`
}

type Verification struct {
	ID string `json:"verificationId"`
}

// CreateVerification opens an OTP verification record for a card
// payment. Confirmation happens before the order exists, so the record
// is keyed by the payment intent reference.
func (c *Client) CreateVerification(ctx context.Context, reference, cardID string) (*Verification, error) {
	var out Verification
	req := createVerificationRequest{Reference: reference, CardID: cardID}
	if err := c.post(ctx, "/payments/create-verification", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
