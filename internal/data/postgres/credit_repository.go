package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/credit"
	"github.com/nobanko/banking-core/internal/domain/shared"
	"github.com/nobanko/banking-core/internal/platform/persistence"
)

// CreditRequestRepository implements the credit.Repository interface for PostgreSQL
type CreditRequestRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCreditRequestRepository creates a new PostgreSQL credit request repository
func NewCreditRequestRepository(logger *slog.Logger, db *persistence.PostgresDB) credit.Repository {
	return &CreditRequestRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CreditRequestRepository) WithTx(tx pgx.Tx) credit.Repository {
	return &CreditRequestRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new credit limit request
func (r *CreditRequestRepository) Create(ctx context.Context, req *credit.Request) error {
	query := `
		INSERT INTO credit_requests (id, client_id, manager_id, amount, reason, status, response_note, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		req.ID,
		req.ClientID,
		req.ManagerID,
		req.Amount,
		req.Reason,
		req.Status,
		req.ResponseNote,
		req.CreatedAt,
		req.ResolvedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create credit request", "error", err)
		return fmt.Errorf("failed to create credit request: %w", err)
	}

	return nil
}

// GetByID retrieves a credit request by its ID
func (r *CreditRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*credit.Request, error) {
	query := creditSelect + ` WHERE id = $1`
	return r.scanRequest(ctx, query, id)
}

// LockForUpdate obtains a pessimistic lock on the request row so that
// concurrent resolutions serialize. Must be called within a transaction.
func (r *CreditRequestRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*credit.Request, error) {
	query := creditSelect + ` WHERE id = $1 FOR UPDATE`
	return r.scanRequest(ctx, query, id)
}

// UpdateResolution persists the outcome of an approve or deny decision.
func (r *CreditRequestRepository) UpdateResolution(ctx context.Context, req *credit.Request) error {
	query := `
		UPDATE credit_requests
		SET status = $1, response_note = $2, resolved_at = $3
		WHERE id = $4
	`

	result, err := r.querier.Exec(ctx, query, req.Status, req.ResponseNote, req.ResolvedAt, req.ID)
	if err != nil {
		r.logger.Error("Failed to update credit request", "id", req.ID.String(), "error", err)
		return fmt.Errorf("failed to update credit request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return credit.ErrRequestNotFound{RequestID: req.ID}
	}

	return nil
}

// GetByClientID retrieves a client's credit requests, most recent first.
func (r *CreditRequestRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*credit.Request, error) {
	query := creditSelect + ` WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.querier.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query credit requests", "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("failed to query credit requests: %w", err)
	}
	defer rows.Close()

	return scanCreditRequests(rows)
}

// GetPendingByManagerID retrieves the pending requests assigned to a manager,
// oldest first so the queue is worked in arrival order.
func (r *CreditRequestRepository) GetPendingByManagerID(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*credit.Request, error) {
	query := creditSelect + ` WHERE manager_id = $1 AND status = $2 ORDER BY created_at ASC LIMIT $3 OFFSET $4`

	rows, err := r.querier.Query(ctx, query, managerID, shared.RequestStatusPending, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query pending credit requests", "manager_id", managerID.String(), "error", err)
		return nil, fmt.Errorf("failed to query pending credit requests: %w", err)
	}
	defer rows.Close()

	return scanCreditRequests(rows)
}

const creditSelect = `
	SELECT id, client_id, manager_id, amount, reason, status, response_note, created_at, resolved_at
	FROM credit_requests`

func (r *CreditRequestRepository) scanRequest(ctx context.Context, query string, id uuid.UUID) (*credit.Request, error) {
	var req credit.Request
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.ClientID,
		&req.ManagerID,
		&req.Amount,
		&req.Reason,
		&req.Status,
		&req.ResponseNote,
		&req.CreatedAt,
		&req.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, credit.ErrRequestNotFound{RequestID: id}
		}
		r.logger.Error("Failed to get credit request", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get credit request: %w", err)
	}

	return &req, nil
}

func scanCreditRequests(rows pgx.Rows) ([]*credit.Request, error) {
	var requests []*credit.Request
	for rows.Next() {
		var req credit.Request
		err := rows.Scan(
			&req.ID,
			&req.ClientID,
			&req.ManagerID,
			&req.Amount,
			&req.Reason,
			&req.Status,
			&req.ResponseNote,
			&req.CreatedAt,
			&req.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit requests: %w", err)
	}

	return requests, nil
}
