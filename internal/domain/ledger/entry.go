// Package ledger defines the immutable append-only log of balance-affecting
// events. Entries are never mutated after creation; the balance_after field
// is a point-in-time snapshot taken under the client's row lock.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/money"
)

// EntryKind is the signed direction of a ledger entry.
type EntryKind string

const (
	EntryKindDebit  EntryKind = "DEBIT"
	EntryKindCredit EntryKind = "CREDIT"
)

// MaxDescriptionLen bounds free-text descriptions.
const MaxDescriptionLen = 255

// Entry records one balance change for one client.
type Entry struct {
	ID             uuid.UUID   `json:"id" bson:"entry_id"`
	ClientID       uuid.UUID   `json:"client_id" bson:"client_id"`
	Kind           EntryKind   `json:"kind" bson:"kind"`
	Amount         money.Money `json:"amount" bson:"amount"`
	Description    string      `json:"description" bson:"description"`
	BalanceAfter   money.Money `json:"balance_after" bson:"balance_after"`
	CounterpartyID *uuid.UUID  `json:"counterparty_id,omitempty" bson:"counterparty_id,omitempty"`
	TransferID     *uuid.UUID  `json:"transfer_id,omitempty" bson:"transfer_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
}

// NewEntry builds an entry for a client whose balance was just updated to
// balanceAfter under the row lock. The description is truncated to the
// storage bound.
func NewEntry(clientID uuid.UUID, kind EntryKind, amount, balanceAfter money.Money, description string) *Entry {
	return &Entry{
		ID:           uuid.New(),
		ClientID:     clientID,
		Kind:         kind,
		Amount:       amount,
		Description:  TruncateDescription(description),
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now(),
	}
}

// TruncateDescription bounds a free-text description to MaxDescriptionLen runes.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxDescriptionLen {
		return s
	}
	return string(runes[:MaxDescriptionLen])
}
