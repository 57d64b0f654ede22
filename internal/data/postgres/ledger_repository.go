package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/platform/persistence"
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL.
// Entries are append-only: the single permitted mutation is SetTransferID,
// which back-links a transfer leg inside the transaction that created it.
type LedgerRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repository {
	return &LedgerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *LedgerRepository) WithTx(tx pgx.Tx) ledger.Repository {
	return &LedgerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create appends a new ledger entry
func (r *LedgerRepository) Create(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (id, client_id, kind, amount, description, balance_after, counterparty_id, transfer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		e.ID,
		e.ClientID,
		e.Kind,
		e.Amount,
		e.Description,
		e.BalanceAfter,
		e.CounterpartyID,
		e.TransferID,
		e.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create ledger entry", "error", err)
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger entry by its ID
func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := `
		SELECT id, client_id, kind, amount, description, balance_after, counterparty_id, transfer_id, created_at
		FROM ledger_entries
		WHERE id = $1
	`

	var e ledger.Entry
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.ClientID,
		&e.Kind,
		&e.Amount,
		&e.Description,
		&e.BalanceAfter,
		&e.CounterpartyID,
		&e.TransferID,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get ledger entry", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return &e, nil
}

// GetByClientID retrieves a client's entries, most recent first.
func (r *LedgerRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	query := `
		SELECT id, client_id, kind, amount, description, balance_after, counterparty_id, transfer_id, created_at
		FROM ledger_entries
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query ledger entries", "client_id", clientID.String(), "error", err)
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// CountByClientID returns the total number of entries for a client.
func (r *LedgerRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM ledger_entries WHERE client_id = $1`

	var count int64
	err := r.querier.QueryRow(ctx, query, clientID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count ledger entries", "client_id", clientID.String(), "error", err)
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	return count, nil
}

// GetByTransferID retrieves the two legs of a transfer.
func (r *LedgerRepository) GetByTransferID(ctx context.Context, transferID uuid.UUID) ([]*ledger.Entry, error) {
	query := `
		SELECT id, client_id, kind, amount, description, balance_after, counterparty_id, transfer_id, created_at
		FROM ledger_entries
		WHERE transfer_id = $1
		ORDER BY kind
	`

	rows, err := r.querier.Query(ctx, query, transferID)
	if err != nil {
		r.logger.Error("Failed to query transfer legs", "transfer_id", transferID.String(), "error", err)
		return nil, fmt.Errorf("failed to query transfer legs: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SetTransferID links an entry to the transfer it belongs to. Must run in the
// same transaction that created the entry.
func (r *LedgerRepository) SetTransferID(ctx context.Context, entryID, transferID uuid.UUID) error {
	query := `
		UPDATE ledger_entries
		SET transfer_id = $1
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, transferID, entryID)
	if err != nil {
		r.logger.Error("Failed to link entry to transfer", "entry_id", entryID.String(), "error", err)
		return fmt.Errorf("failed to link entry to transfer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound{EntryID: entryID}
	}

	return nil
}

func scanEntries(rows pgx.Rows) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		err := rows.Scan(
			&e.ID,
			&e.ClientID,
			&e.Kind,
			&e.Amount,
			&e.Description,
			&e.BalanceAfter,
			&e.CounterpartyID,
			&e.TransferID,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, nil
}
