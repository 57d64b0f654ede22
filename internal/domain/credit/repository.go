package credit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages credit request persistence
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// LockForUpdate acquires a row lock on the request so that two concurrent
	// resolutions serialize; the second observes the terminal status.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Request, error)

	// UpdateResolution persists the terminal status, note and timestamp.
	UpdateResolution(ctx context.Context, r *Request) error

	GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Request, error)
	GetPendingByManagerID(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*Request, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrRequestNotFound indicates a missing credit request
type ErrRequestNotFound struct {
	RequestID uuid.UUID
}

func (e ErrRequestNotFound) Error() string {
	return "credit request not found: " + e.RequestID.String()
}

// Is matches any ErrRequestNotFound when the target carries a nil ID.
func (e ErrRequestNotFound) Is(target error) bool {
	t, ok := target.(ErrRequestNotFound)
	if !ok {
		return false
	}
	if t.RequestID == uuid.Nil {
		return true
	}
	return e.RequestID == t.RequestID
}
