// Package transfer defines the atomic two-sided money movement between two
// clients and its link to the pair of ledger entries it produces.
package transfer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/money"
)

// Common errors
var (
	ErrInvalidDestination = errors.New("destination is not a valid client")
	ErrSameAccount        = errors.New("cannot transfer to the same account")
)

// Status defines transfer processing states
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Transfer represents one atomic movement between two distinct clients.
// A completed transfer always carries both ledger legs.
type Transfer struct {
	ID              uuid.UUID   `json:"id"`
	OriginID        uuid.UUID   `json:"origin_id"`
	DestinationID   uuid.UUID   `json:"destination_id"`
	Amount          money.Money `json:"amount"`
	Description     string      `json:"description"`
	Status          Status      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	ProcessedAt     *time.Time  `json:"processed_at,omitempty"`
	OutgoingEntryID uuid.UUID   `json:"outgoing_entry_id"`
	IncomingEntryID uuid.UUID   `json:"incoming_entry_id"`
}

// NewCompleted builds a transfer record in COMPLETED state, linking the two
// ledger legs that were just written in the same transaction.
func NewCompleted(originID, destinationID uuid.UUID, amount money.Money, description string, outgoingEntryID, incomingEntryID uuid.UUID) *Transfer {
	now := time.Now()
	return &Transfer{
		ID:              uuid.New(),
		OriginID:        originID,
		DestinationID:   destinationID,
		Amount:          amount,
		Description:     description,
		Status:          StatusCompleted,
		CreatedAt:       now,
		ProcessedAt:     &now,
		OutgoingEntryID: outgoingEntryID,
		IncomingEntryID: incomingEntryID,
	}
}
