package card

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository manages the card product catalog
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
	ListActive(ctx context.Context) ([]*Product, error)
	WithTx(tx pgx.Tx) ProductRepository
}

// RequestRepository manages card request persistence
type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// LockForUpdate acquires a row lock on the request so that two concurrent
	// resolutions serialize; the second observes the terminal status.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Request, error)

	// UpdateResolution persists the terminal status, note, card link and
	// timestamp.
	UpdateResolution(ctx context.Context, r *Request) error

	GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Request, error)
	GetPendingByManagerID(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*Request, error)

	WithTx(tx pgx.Tx) RequestRepository
}

// CardRepository manages issued card persistence
type CardRepository interface {
	Create(ctx context.Context, c *Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*Card, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID) ([]*Card, error)

	// ExistsByNumber supports the generate-and-check uniqueness loop at
	// issuance time. The unique index on the number column is the backstop.
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	WithTx(tx pgx.Tx) CardRepository
}

// ErrProductNotFound indicates a missing card product
type ErrProductNotFound struct {
	ProductID uuid.UUID
}

func (e ErrProductNotFound) Error() string {
	return "card product not found: " + e.ProductID.String()
}

// Is matches any ErrProductNotFound when the target carries a nil ID.
func (e ErrProductNotFound) Is(target error) bool {
	t, ok := target.(ErrProductNotFound)
	if !ok {
		return false
	}
	if t.ProductID == uuid.Nil {
		return true
	}
	return e.ProductID == t.ProductID
}

// ErrRequestNotFound indicates a missing card request
type ErrRequestNotFound struct {
	RequestID uuid.UUID
}

func (e ErrRequestNotFound) Error() string {
	return "card request not found: " + e.RequestID.String()
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

// ErrCardNotFound indicates a missing card
type ErrCardNotFound struct {
	CardID uuid.UUID
}

func (e ErrCardNotFound) Error() string {
	return "card not found: " + e.CardID.String()
}

// ErrDuplicateNumber indicates card number uniqueness violation
type ErrDuplicateNumber struct {
	Number string
}

func (e ErrDuplicateNumber) Error() string {
	return "card number already exists"
}
