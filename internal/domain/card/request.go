package card

import (
	"time"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/shared"
)

// Request is a client's petition for a card of a given product, routed to
// the client's manager. Approval mints exactly one card; the request is
// immutable once resolved.
type Request struct {
	ID            uuid.UUID            `json:"id"`
	ClientID      uuid.UUID            `json:"client_id"`
	ProductID     uuid.UUID            `json:"product_id"`
	ManagerID     uuid.UUID            `json:"manager_id"`
	Justification string               `json:"justification"`
	Status        shared.RequestStatus `json:"status"`
	ResponseNote  string               `json:"response_note,omitempty"`
	CardID        *uuid.UUID           `json:"card_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	ResolvedAt    *time.Time           `json:"resolved_at,omitempty"`
}

// NewRequest creates a PENDING card request addressed to the client's
// current manager. Eligibility is checked by the service before creation.
func NewRequest(clientID, productID, managerID uuid.UUID, justification string) *Request {
	return &Request{
		ID:            uuid.New(),
		ClientID:      clientID,
		ProductID:     productID,
		ManagerID:     managerID,
		Justification: justification,
		Status:        shared.RequestStatusPending,
		CreatedAt:     time.Now(),
	}
}

// Approve marks the request APPROVED and links the minted card.
// Only the assigned manager may resolve a still-PENDING request.
func (r *Request) Approve(managerID uuid.UUID, note string, cardID uuid.UUID) error {
	if err := r.EnsureResolvable(managerID); err != nil {
		return err
	}

	r.Status = shared.RequestStatusApproved
	r.ResponseNote = note
	r.CardID = &cardID
	now := time.Now()
	r.ResolvedAt = &now
	return nil
}

// Deny marks the request DENIED; no card is created.
func (r *Request) Deny(managerID uuid.UUID, note string) error {
	if err := r.EnsureResolvable(managerID); err != nil {
		return err
	}

	r.Status = shared.RequestStatusDenied
	r.ResponseNote = note
	now := time.Now()
	r.ResolvedAt = &now
	return nil
}

// EnsureResolvable reports whether the given manager may still resolve the
// request. Callers doing work before the transition (minting a card) check
// this first so a resolved request or a wrong manager fails before any of
// that work happens.
func (r *Request) EnsureResolvable(managerID uuid.UUID) error {
	if r.Status.IsTerminal() {
		return shared.ErrAlreadyResolved
	}
	if r.ManagerID != managerID {
		return shared.ErrUnauthorizedManager
	}
	return nil
}
