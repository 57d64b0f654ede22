package shared

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEventKind categorizes the operation that produced a ledger entry.
type LedgerEventKind string

const (
	LedgerEventDeposit  LedgerEventKind = "DEPOSIT"
	LedgerEventTransfer LedgerEventKind = "TRANSFER"
)

// LedgerEvent is the JSON message published after a balance-affecting
// operation commits. Consumers (reporting, integrations) read it from the
// ledger events topic; the core never depends on its delivery.
type LedgerEvent struct {
	EntryID       uuid.UUID       `json:"entry_id"`
	ClientID      uuid.UUID       `json:"client_id"`
	Kind          LedgerEventKind `json:"kind"`
	EntryKind     string          `json:"entry_kind"`
	Amount        string          `json:"amount"`
	BalanceAfter  string          `json:"balance_after"`
	TransferID    *uuid.UUID      `json:"transfer_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
