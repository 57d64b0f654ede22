package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages notification message persistence
type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Message, error)
	WithTx(tx pgx.Tx) Repository
}
