// Package notifier delivers client notifications on a bounded worker pool.
// Delivery is fire-and-forget: callers never block on persistence and a
// failed delivery is logged, not retried.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/nobanko/banking-core/internal/config"
	"github.com/nobanko/banking-core/internal/domain/notification"
)

const deliveryTimeout = 5 * time.Second

// PoolNotifier writes notification messages through a bounded ants pool.
type PoolNotifier struct {
	repo   notification.Repository
	pool   *ants.Pool
	logger *slog.Logger
}

func NewPoolNotifier(cfg *config.NotifierConfig, repo notification.Repository, logger *slog.Logger) (*PoolNotifier, error) {
	pool, err := ants.NewPool(cfg.PoolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &PoolNotifier{
		repo:   repo,
		pool:   pool,
		logger: logger,
	}, nil
}

// Notify queues one message for delivery. A saturated pool drops the message
// with a warning rather than blocking the caller.
func (n *PoolNotifier) Notify(clientID uuid.UUID, sender notification.Sender, content string) {
	msg := notification.NewMessage(clientID, sender, content)

	err := n.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		if err := n.repo.Create(ctx, msg); err != nil {
			n.logger.Error("Failed to deliver notification",
				"message_id", msg.ID.String(),
				"client_id", clientID.String(),
				"error", err,
			)
			return
		}
		n.logger.Debug("Notification delivered",
			"message_id", msg.ID.String(),
			"client_id", clientID.String(),
		)
	})
	if err != nil {
		n.logger.Warn("Notification dropped, worker pool unavailable",
			"client_id", clientID.String(),
			"error", err,
		)
	}
}

// Shutdown releases the worker pool.
func (n *PoolNotifier) Shutdown() {
	n.logger.Info("Shutting down notifier pool", "running_workers", n.pool.Running())
	n.pool.Release()
}

// Running returns the number of running workers in the pool.
func (n *PoolNotifier) Running() int {
	return n.pool.Running()
}
