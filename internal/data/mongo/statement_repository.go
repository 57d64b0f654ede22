// Package mongo implements the statement archive, a denormalized read model
// of committed ledger entries kept in MongoDB for cheap statement queries.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/money"
)

var _ ledger.ArchiveRepository = (*StatementRepository)(nil)

const (
	// StatementCollectionName is the name of the statement archive collection
	StatementCollectionName = "statement_entries"
)

// StatementEntry is the archive document shape. Amounts are stored as fixed
// two-decimal strings so no precision is lost in BSON.
type StatementEntry struct {
	EntryID        uuid.UUID  `bson:"entry_id"`
	ClientID       uuid.UUID  `bson:"client_id"`
	Kind           string     `bson:"kind"`
	Amount         string     `bson:"amount"`
	Description    string     `bson:"description"`
	BalanceAfter   string     `bson:"balance_after"`
	CounterpartyID *uuid.UUID `bson:"counterparty_id,omitempty"`
	TransferID     *uuid.UUID `bson:"transfer_id,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
	ArchivedAt     time.Time  `bson:"archived_at"`
}

// StatementRepository stores archived ledger entries in MongoDB
type StatementRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewStatementRepository creates a new MongoDB statement repository
func NewStatementRepository(logger *slog.Logger, db *mongo.Database) *StatementRepository {
	return &StatementRepository{
		db:     db,
		logger: logger,
	}
}

// Archive upserts a ledger entry into the statement collection. Upserting by
// entry ID keeps the operation idempotent across poller retries.
func (r *StatementRepository) Archive(ctx context.Context, entry *ledger.Entry) error {
	collection := r.db.Collection(StatementCollectionName)

	doc := StatementEntry{
		EntryID:        entry.ID,
		ClientID:       entry.ClientID,
		Kind:           string(entry.Kind),
		Amount:         entry.Amount.String(),
		Description:    entry.Description,
		BalanceAfter:   entry.BalanceAfter.String(),
		CounterpartyID: entry.CounterpartyID,
		TransferID:     entry.TransferID,
		CreatedAt:      entry.CreatedAt,
		ArchivedAt:     time.Now(),
	}

	filter := bson.M{"entry_id": entry.ID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	_, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		r.logger.Error("Failed to archive statement entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to archive statement entry: %w", err)
	}

	return nil
}

// GetByClientID retrieves paginated archive entries for a client.
// Results are sorted by creation time in descending order (newest first).
func (r *StatementRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	collection := r.db.Collection(StatementCollectionName)

	filter := bson.M{"client_id": clientID}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get statement entries",
			"client_id", clientID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get statement entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*StatementEntry
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode statement entries",
			"client_id", clientID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode statement entries: %w", err)
	}

	entries := make([]*ledger.Entry, 0, len(docs))
	for _, doc := range docs {
		entry, err := doc.toEntry()
		if err != nil {
			return nil, fmt.Errorf("failed to map archived entry %s: %w", doc.EntryID.String(), err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// toEntry maps an archive document back to a domain entry.
func (d *StatementEntry) toEntry() (*ledger.Entry, error) {
	amount, err := money.Parse(d.Amount)
	if err != nil {
		return nil, err
	}
	balanceAfter, err := money.Parse(d.BalanceAfter)
	if err != nil {
		return nil, err
	}

	return &ledger.Entry{
		ID:             d.EntryID,
		ClientID:       d.ClientID,
		Kind:           ledger.EntryKind(d.Kind),
		Amount:         amount,
		Description:    d.Description,
		BalanceAfter:   balanceAfter,
		CounterpartyID: d.CounterpartyID,
		TransferID:     d.TransferID,
		CreatedAt:      d.CreatedAt,
	}, nil
}

// CountByClientID counts the archived entries for a client
func (r *StatementRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	collection := r.db.Collection(StatementCollectionName)

	filter := bson.M{"client_id": clientID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count statement entries",
			"client_id", clientID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count statement entries: %w", err)
	}

	return count, nil
}
