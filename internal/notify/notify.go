// Package notify posts in-app notifications to the backend on a
// best-effort basis. A notification that cannot be delivered is logged
// and dropped; it never fails or delays the operation that produced it.
package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
	"github.com/nguyeenvoxx/strengths-best-gateway/internal/pkg/pool"
)

type sender interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
}

type Notifier struct {
	api     sender
	pool    *pool.Pool
	timeout time.Duration
	logger  *zap.Logger
}

func New(api sender, workers int, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		api:     api,
		pool:    pool.New(workers),
		timeout: 10 * time.Second,
		logger:  logger,
	}
}

// OrderPlaced enqueues the order confirmation notification. The caller
// returns immediately; delivery happens on a pool worker with its own
// deadline, detached from the checkout request context.
func (n *Notifier) OrderPlaced(order *domain.Order) {
	n.send(domain.Notification{
		Title:   "Đặt hàng thành công",
		Message: fmt.Sprintf("Đơn hàng %s đã được tạo, tổng %.0f₫.", order.ID, order.TotalAmount),
		Type:    "order",
	})
}

func (n *Notifier) send(nt domain.Notification) {
	ok := n.pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.api.CreateNotification(ctx, nt); err != nil {
			n.logger.Warn("notification dropped", zap.String("type", nt.Type), zap.Error(err))
		}
	})
	if !ok {
		n.logger.Warn("notification queue full, dropped", zap.String("type", nt.Type))
	}
}

// Close stops the workers after draining queued notifications.
func (n *Notifier) Close() {
	n.pool.Close()
	n.pool.Wait()
}
