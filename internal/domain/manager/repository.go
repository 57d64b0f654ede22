package manager

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines manager persistence operations
type Repository interface {
	Create(ctx context.Context, m *Manager) error
	GetByID(ctx context.Context, id uuid.UUID) (*Manager, error)
	GetByCode(ctx context.Context, code string) (*Manager, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrManagerNotFound indicates a missing manager
type ErrManagerNotFound struct {
	ManagerID uuid.UUID
}

func (e ErrManagerNotFound) Error() string {
	return "manager not found: " + e.ManagerID.String()
}

// Is matches any ErrManagerNotFound when the target carries a nil ID.
func (e ErrManagerNotFound) Is(target error) bool {
	t, ok := target.(ErrManagerNotFound)
	if !ok {
		return false
	}
	if t.ManagerID == uuid.Nil {
		return true
	}
	return e.ManagerID == t.ManagerID
}

// ErrDuplicateCode indicates manager code uniqueness violation
type ErrDuplicateCode struct {
	Code string
}

func (e ErrDuplicateCode) Error() string {
	return "manager with code already exists: " + e.Code
}
