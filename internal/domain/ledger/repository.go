package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages ledger entry persistence. Entries are append-only;
// there is no update operation.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// GetByClientID returns entries most-recent-first.
	GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Entry, error)
	CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error)

	// GetByTransferID returns both legs of a transfer.
	GetByTransferID(ctx context.Context, transferID uuid.UUID) ([]*Entry, error)

	// SetTransferID back-links an entry to the transfer that produced it.
	// This is the only permitted write after creation and happens inside the
	// same transaction that created the entry.
	SetTransferID(ctx context.Context, entryID, transferID uuid.UUID) error

	WithTx(tx pgx.Tx) Repository
}

// ArchiveRepository is the denormalized statement archive: a read model of
// committed entries mirrored out of the authoritative ledger by the outbox
// poller. It may lag the ledger; readers that need the committed truth use
// Repository instead.
type ArchiveRepository interface {
	Archive(ctx context.Context, entry *Entry) error

	// GetByClientID returns archived entries most-recent-first.
	GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Entry, error)
	CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error)
}

// ErrEntryNotFound indicates a missing ledger entry
type ErrEntryNotFound struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "ledger entry not found: " + e.EntryID.String()
}

// Is matches any ErrEntryNotFound when the target carries a nil ID.
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}
