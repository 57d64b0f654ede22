// Package postgres provides PostgreSQL implementations of the domain
// repositories. Balance-affecting writes run through a pgx.Tx obtained from
// the persistence layer; the repositories never begin or commit transactions
// themselves.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/platform/persistence"
)

// ClientRepository implements the client.Repository interface for PostgreSQL
type ClientRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewClientRepository creates a new PostgreSQL client repository
func NewClientRepository(logger *slog.Logger, db *persistence.PostgresDB) client.Repository {
	return &ClientRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so that row locks acquired
// here remain held until the caller commits or rolls back.
func (r *ClientRepository) WithTx(tx pgx.Tx) client.Repository {
	return &ClientRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new client. A duplicate account number surfaces as a
// database constraint error.
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (id, name, account, agency, balance, credit_limit, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Account,
		c.Agency,
		c.Balance,
		c.CreditLimit,
		c.ManagerID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create client", "error", err)
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// GetByID retrieves a client by its ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `
		SELECT id, name, account, agency, balance, credit_limit, manager_id, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	return r.scanClient(ctx, query, id)
}

// GetByAccount retrieves a client by its account number. Returns nil, nil
// when no client holds the account.
func (r *ClientRepository) GetByAccount(ctx context.Context, account string) (*client.Client, error) {
	query := `
		SELECT id, name, account, agency, balance, credit_limit, manager_id, created_at, updated_at
		FROM clients
		WHERE account = $1
	`

	var c client.Client
	err := r.querier.QueryRow(ctx, query, account).Scan(
		&c.ID,
		&c.Name,
		&c.Account,
		&c.Agency,
		&c.Balance,
		&c.CreditLimit,
		&c.ManagerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get client by account", "account", account, "error", err)
		return nil, fmt.Errorf("failed to get client by account: %w", err)
	}

	return &c, nil
}

// LockForUpdate obtains a pessimistic lock on the client row and returns its
// current state. Must be called within a transaction.
func (r *ClientRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `
		SELECT id, name, account, agency, balance, credit_limit, manager_id, created_at, updated_at
		FROM clients
		WHERE id = $1
		FOR UPDATE
	`

	return r.scanClient(ctx, query, id)
}

// UpdateBalance persists a balance computed under the row lock.
func (r *ClientRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error {
	query := `
		UPDATE clients
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, balance, id)
	if err != nil {
		r.logger.Error("Failed to update client balance", "id", id.String(), "error", err)
		return fmt.Errorf("failed to update client balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return client.ErrClientNotFound{ClientID: id}
	}

	return nil
}

// SetManager assigns or clears the client's manager.
func (r *ClientRepository) SetManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) error {
	query := `
		UPDATE clients
		SET manager_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, managerID, id)
	if err != nil {
		r.logger.Error("Failed to set client manager", "id", id.String(), "error", err)
		return fmt.Errorf("failed to set client manager: %w", err)
	}

	if result.RowsAffected() == 0 {
		return client.ErrClientNotFound{ClientID: id}
	}

	return nil
}

func (r *ClientRepository) scanClient(ctx context.Context, query string, id uuid.UUID) (*client.Client, error) {
	var c client.Client
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Account,
		&c.Agency,
		&c.Balance,
		&c.CreditLimit,
		&c.ManagerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrClientNotFound{ClientID: id}
		}
		r.logger.Error("Failed to get client", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &c, nil
}
