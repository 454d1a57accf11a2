package checkout

//go:generate mockgen -source=orchestrator.go -destination=orchestrator_mock_test.go -package=checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/api"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
)

type orderClient interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest, idempotencyKey string) (*domain.Order, error)
}

type paymentClient interface {
	CreateCustomerSession(ctx context.Context) (*api.CustomerSession, error)
	CreatePaymentIntent(ctx context.Context, amount float64) (*api.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, orderID, paymentIntentID string) error
}

type cartClearer interface {
	Clear(ctx context.Context) error
}

type notifier interface {
	OrderPlaced(order *domain.Order)
}

// Confirmer completes a card payment with the processor before the
// order exists. A user abort must surface as domain.ErrPaymentCanceled.
type Confirmer interface {
	Confirm(ctx context.Context, session *api.CustomerSession, intent *api.PaymentIntent, card *domain.Card) error
}

type ConfirmerFunc func(ctx context.Context, session *api.CustomerSession, intent *api.PaymentIntent, card *domain.Card) error

func (f ConfirmerFunc) Confirm(ctx context.Context, session *api.CustomerSession, intent *api.PaymentIntent, card *domain.Card) error {
	return f(ctx, session, intent, card)
}

type State int32

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request carries everything a submission needs. Items is the full cart;
// only lines in Selection are priced and ordered.
type Request struct {
	Items     []domain.CartItem
	Selection domain.Selection
	Address   *domain.Address
	Voucher   *domain.UserVoucher
	Method    domain.PaymentMethod
	Card      *domain.Card
}

type Result struct {
	Order     *domain.Order `json:"order"`
	Breakdown Breakdown     `json:"breakdown"`
}

// Orchestrator drives a checkout submission through a single state
// machine for both payment methods. There is exactly one order-creation
// call site; for card payments it is reached only after the processor
// has confirmed the payment.
type Orchestrator struct {
	orders      orderClient
	payments    paymentClient
	cart        cartClearer
	confirmer   Confirmer
	notify      notifier
	shippingFee float64
	metrics     observability.Metrics
	logger      *zap.Logger

	mu    sync.Mutex
	state State
}

func New(
	orders orderClient,
	payments paymentClient,
	cart cartClearer,
	confirmer Confirmer,
	notify notifier,
	shippingFee float64,
	metrics observability.Metrics,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Orchestrator{
		orders:      orders,
		payments:    payments,
		cart:        cart,
		confirmer:   confirmer,
		notify:      notify,
		shippingFee: shippingFee,
		metrics:     metrics,
		logger:      logger,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// begin claims the submission slot. Concurrent callers get
// ErrAlreadySubmitting instead of a second in-flight submission.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return ErrAlreadySubmitting
	}
	o.state = StateSubmitting
	return nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Preview prices the request without submitting anything.
func (o *Orchestrator) Preview(req Request) Breakdown {
	var voucher *domain.Voucher
	if req.Voucher != nil {
		voucher = &req.Voucher.Voucher
	}
	return Price(req.Items, req.Selection, voucher, o.shippingFee)
}

// Submit runs the full checkout flow. Validation failures and a user
// payment cancel return the machine to idle without creating an order;
// backend failures land in the failed state, from which the next Submit
// may start over.
func (o *Orchestrator) Submit(ctx context.Context, req Request) (*Result, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		o.setState(StateIdle)
		return nil, err
	}

	res, err := o.submit(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentCanceled) {
			o.logger.Info("payment canceled by user, no order created")
			o.setState(StateIdle)
		} else {
			o.logger.Error("checkout failed", zap.Error(err))
			o.setState(StateFailed)
		}
		return nil, err
	}

	o.logger.Info("order placed",
		zap.String("order_id", res.Order.ID),
		zap.String("method", string(req.Method)),
		zap.Float64("total", res.Breakdown.GrandTotal))
	o.setState(StateSuccess)
	return res, nil
}

func (o *Orchestrator) submit(ctx context.Context, req Request) (*Result, error) {
	breakdown := o.Preview(req)

	orderReq := domain.CreateOrderRequest{
		Items:           orderItems(req.Items, req.Selection),
		TotalAmount:     breakdown.GrandTotal,
		PaymentMethod:   req.Method,
		ShippingAddress: req.Address.Shipping(),
	}
	if req.Voucher != nil {
		orderReq.UserVoucherID = req.Voucher.ID
		orderReq.VoucherDiscount = breakdown.VoucherDiscount
	}

	// The key is generated client-side so a retried CreateOrder after a
	// lost response cannot duplicate the order.
	key := uuid.NewString()

	var intent *api.PaymentIntent
	if req.Method == domain.PaymentCard {
		var session *api.CustomerSession
		err := o.step("customer_session", func() error {
			var err error
			session, err = o.payments.CreateCustomerSession(ctx)
			return err
		})
		if err != nil {
			return nil, err
		}

		err = o.step("payment_intent", func() error {
			var err error
			intent, err = o.payments.CreatePaymentIntent(ctx, breakdown.GrandTotal)
			return err
		})
		if err != nil {
			return nil, err
		}

		if err := o.step("confirm", func() error {
			return o.confirmer.Confirm(ctx, session, intent, req.Card)
		}); err != nil {
			return nil, err
		}
	}

	var order *domain.Order
	err := o.step("create_order", func() error {
		var err error
		order, err = o.orders.CreateOrder(ctx, orderReq, key)
		return err
	})
	if err != nil {
		return nil, err
	}

	if req.Method == domain.PaymentCard {
		if err := o.step("reconcile", func() error {
			return o.payments.ConfirmPayment(ctx, order.ID, intent.ID)
		}); err != nil {
			// The processor already holds the confirmed payment; the
			// backend reconciles on its own schedule.
			o.logger.Warn("payment reconciliation failed, order stands",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	if err := o.cart.Clear(ctx); err != nil {
		o.logger.Warn("cart clear failed after order", zap.String("order_id", order.ID), zap.Error(err))
	}

	if o.notify != nil {
		o.notify.OrderPlaced(order)
	}

	return &Result{Order: order, Breakdown: breakdown}, nil
}

func (o *Orchestrator) step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	o.metrics.ObserveCheckout(name, float64(time.Since(start).Microseconds())/1000, err == nil)
	return err
}

func orderItems(items []domain.CartItem, sel domain.Selection) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		if !sel.Has(it.ID) {
			continue
		}
		out = append(out, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price * (1 - it.DiscountPercent/100),
		})
	}
	return out
}
