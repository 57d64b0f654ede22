package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/manager"
	"github.com/nobanko/banking-core/internal/platform/persistence"
)

// ManagerRepository implements the manager.Repository interface for PostgreSQL
type ManagerRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewManagerRepository creates a new PostgreSQL manager repository
func NewManagerRepository(logger *slog.Logger, db *persistence.PostgresDB) manager.Repository {
	return &ManagerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ManagerRepository) WithTx(tx pgx.Tx) manager.Repository {
	return &ManagerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new manager
func (r *ManagerRepository) Create(ctx context.Context, m *manager.Manager) error {
	query := `
		INSERT INTO managers (id, name, code, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.querier.Exec(ctx, query, m.ID, m.Name, m.Code, m.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create manager", "error", err)
		return fmt.Errorf("failed to create manager: %w", err)
	}

	return nil
}

// GetByID retrieves a manager by its ID
func (r *ManagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*manager.Manager, error) {
	query := `
		SELECT id, name, code, created_at
		FROM managers
		WHERE id = $1
	`

	var m manager.Manager
	err := r.querier.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Code, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, manager.ErrManagerNotFound{ManagerID: id}
		}
		r.logger.Error("Failed to get manager", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}

	return &m, nil
}

// GetByCode retrieves a manager by its staff code. Returns nil, nil when no
// manager holds the code.
func (r *ManagerRepository) GetByCode(ctx context.Context, code string) (*manager.Manager, error) {
	query := `
		SELECT id, name, code, created_at
		FROM managers
		WHERE code = $1
	`

	var m manager.Manager
	err := r.querier.QueryRow(ctx, query, code).Scan(&m.ID, &m.Name, &m.Code, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get manager by code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get manager by code: %w", err)
	}

	return &m, nil
}
