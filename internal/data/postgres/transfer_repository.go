package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/transfer"
	"github.com/nobanko/banking-core/internal/platform/persistence"
)

// TransferRepository implements the transfer.Repository interface for PostgreSQL
type TransferRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransferRepository creates a new PostgreSQL transfer repository
func NewTransferRepository(logger *slog.Logger, db *persistence.PostgresDB) transfer.Repository {
	return &TransferRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TransferRepository) WithTx(tx pgx.Tx) transfer.Repository {
	return &TransferRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a completed transfer record
func (r *TransferRepository) Create(ctx context.Context, t *transfer.Transfer) error {
	query := `
		INSERT INTO transfers (id, origin_id, destination_id, amount, description, status, created_at, processed_at, outgoing_entry_id, incoming_entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.querier.Exec(ctx, query,
		t.ID,
		t.OriginID,
		t.DestinationID,
		t.Amount,
		t.Description,
		t.Status,
		t.CreatedAt,
		t.ProcessedAt,
		t.OutgoingEntryID,
		t.IncomingEntryID,
	)
	if err != nil {
		r.logger.Error("Failed to create transfer", "error", err)
		return fmt.Errorf("failed to create transfer: %w", err)
	}

	return nil
}

// GetByID retrieves a transfer by its ID
func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	query := `
		SELECT id, origin_id, destination_id, amount, description, status, created_at, processed_at, outgoing_entry_id, incoming_entry_id
		FROM transfers
		WHERE id = $1
	`

	var t transfer.Transfer
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.OriginID,
		&t.DestinationID,
		&t.Amount,
		&t.Description,
		&t.Status,
		&t.CreatedAt,
		&t.ProcessedAt,
		&t.OutgoingEntryID,
		&t.IncomingEntryID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transfer.ErrTransferNotFound{TransferID: id}
		}
		r.logger.Error("Failed to get transfer", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}

	return &t, nil
}

// GetByClientID retrieves transfers where the client is origin or destination,
// most recent first.
func (r *TransferRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*transfer.Transfer, error) {
	query := `
		SELECT id, origin_id, destination_id, amount, description, status, created_at, processed_at, outgoing_entry_id, incoming_entry_id
		FROM transfers
		WHERE origin_id = $1 OR destination_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query transfers", "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*transfer.Transfer
	for rows.Next() {
		var t transfer.Transfer
		err := rows.Scan(
			&t.ID,
			&t.OriginID,
			&t.DestinationID,
			&t.Amount,
			&t.Description,
			&t.Status,
			&t.CreatedAt,
			&t.ProcessedAt,
			&t.OutgoingEntryID,
			&t.IncomingEntryID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfers: %w", err)
	}

	return transfers, nil
}
