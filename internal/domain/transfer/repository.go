package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages transfer persistence
type Repository interface {
	Create(ctx context.Context, t *Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transfer, error)

	// GetByClientID returns transfers where the client is origin or
	// destination, most-recent-first.
	GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Transfer, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrTransferNotFound indicates a missing transfer
type ErrTransferNotFound struct {
	TransferID uuid.UUID
}

func (e ErrTransferNotFound) Error() string {
	return "transfer not found: " + e.TransferID.String()
}

// Is matches any ErrTransferNotFound when the target carries a nil ID.
func (e ErrTransferNotFound) Is(target error) bool {
	t, ok := target.(ErrTransferNotFound)
	if !ok {
		return false
	}
	if t.TransferID == uuid.Nil {
		return true
	}
	return e.TransferID == t.TransferID
}
