package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/notification"
	"github.com/nobanko/banking-core/internal/platform/persistence"
)

// NotificationRepository implements the notification.Repository interface for PostgreSQL
type NotificationRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewNotificationRepository creates a new PostgreSQL notification repository
func NewNotificationRepository(logger *slog.Logger, db *persistence.PostgresDB) notification.Repository {
	return &NotificationRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *NotificationRepository) WithTx(tx pgx.Tx) notification.Repository {
	return &NotificationRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new notification message
func (r *NotificationRepository) Create(ctx context.Context, m *notification.Message) error {
	query := `
		INSERT INTO notifications (id, client_id, content, sender, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier.Exec(ctx, query, m.ID, m.ClientID, m.Content, m.Sender, m.SentAt)
	if err != nil {
		r.logger.Error("Failed to create notification", "error", err)
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// GetByClientID retrieves a client's notifications, most recent first.
func (r *NotificationRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*notification.Message, error) {
	query := `
		SELECT id, client_id, content, sender, sent_at
		FROM notifications
		WHERE client_id = $1
		ORDER BY sent_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query notifications", "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var messages []*notification.Message
	for rows.Next() {
		var m notification.Message
		if err := rows.Scan(&m.ID, &m.ClientID, &m.Content, &m.Sender, &m.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return messages, nil
}
