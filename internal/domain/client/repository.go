package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/money"
)

// Repository defines client persistence operations
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	GetByAccount(ctx context.Context, account string) (*Client, error)

	// LockForUpdate acquires a pessimistic row lock and returns the current
	// state. Must be called inside a transaction; the lock is held until
	// commit or rollback.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Client, error)

	// UpdateBalance persists a balance computed in memory under the row lock.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error

	// SetManager assigns or clears (nil) the client's manager.
	SetManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) error

	WithTx(tx pgx.Tx) Repository
}

// ErrClientNotFound indicates a missing client
type ErrClientNotFound struct {
	ClientID uuid.UUID
}

func (e ErrClientNotFound) Error() string {
	return "client not found: " + e.ClientID.String()
}

// Is matches any ErrClientNotFound when the target carries a nil ID.
func (e ErrClientNotFound) Is(target error) bool {
	t, ok := target.(ErrClientNotFound)
	if !ok {
		return false
	}
	if t.ClientID == uuid.Nil {
		return true
	}
	return e.ClientID == t.ClientID
}

// ErrDuplicateAccount indicates account number uniqueness violation
type ErrDuplicateAccount struct {
	Account string
}

func (e ErrDuplicateAccount) Error() string {
	return "client with account number already exists: " + e.Account
}
