// Package credit defines the credit-limit raise request workflow. Requests
// are routed to the client's assigned manager and become immutable once
// resolved.
//
// Approval records the decision only; raising the client's credit limit is a
// deliberate external effect and is not performed here.
package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/shared"
)

// Request is a client's petition for additional credit.
type Request struct {
	ID           uuid.UUID            `json:"id"`
	ClientID     uuid.UUID            `json:"client_id"`
	ManagerID    uuid.UUID            `json:"manager_id"`
	Amount       money.Money          `json:"amount"`
	Reason       string               `json:"reason"`
	Status       shared.RequestStatus `json:"status"`
	ResponseNote string               `json:"response_note,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	ResolvedAt   *time.Time           `json:"resolved_at,omitempty"`
}

// NewRequest creates a PENDING request addressed to the client's current manager.
func NewRequest(clientID, managerID uuid.UUID, amount money.Money, reason string) *Request {
	return &Request{
		ID:        uuid.New(),
		ClientID:  clientID,
		ManagerID: managerID,
		Amount:    amount,
		Reason:    reason,
		Status:    shared.RequestStatusPending,
		CreatedAt: time.Now(),
	}
}

// Approve resolves the request. Only the assigned manager may resolve it,
// and only while it is still PENDING.
func (r *Request) Approve(managerID uuid.UUID, note string) error {
	return r.resolve(managerID, shared.RequestStatusApproved, note)
}

// Deny resolves the request negatively under the same preconditions as Approve.
func (r *Request) Deny(managerID uuid.UUID, note string) error {
	return r.resolve(managerID, shared.RequestStatusDenied, note)
}

func (r *Request) resolve(managerID uuid.UUID, status shared.RequestStatus, note string) error {
	if r.Status.IsTerminal() {
		return shared.ErrAlreadyResolved
	}
	if r.ManagerID != managerID {
		return shared.ErrUnauthorizedManager
	}

	r.Status = status
	r.ResponseNote = note
	now := time.Now()
	r.ResolvedAt = &now
	return nil
}
