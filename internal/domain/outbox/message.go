// Package outbox implements the transactional outbox used to mirror
// committed ledger entries into the statement archive. A row is written in
// the same transaction as the ledger entry; a poller drains it afterwards.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/ledger"
)

// Status defines message publishing states
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusProcessed       Status = "PROCESSED"
	StatusFailedToPublish Status = "FAILED_TO_PUBLISH"
)

// Message stores one committed ledger entry awaiting archive publication.
type Message struct {
	ID            int64           `json:"id"`
	EntryID       uuid.UUID       `json:"entry_id"`
	ClientID      uuid.UUID       `json:"client_id"`
	Payload       json.RawMessage `json:"payload"`
	Status        Status          `json:"status"`
	Attempts      int             `json:"attempts"`
	CreatedAt     time.Time       `json:"created_at"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty"`
}

// NewMessage wraps a ledger entry for archive mirroring.
func NewMessage(entry *ledger.Entry) (*Message, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	return &Message{
		EntryID:   entry.ID,
		ClientID:  entry.ClientID,
		Payload:   payload,
		Status:    StatusPending,
		Attempts:  0,
		CreatedAt: time.Now(),
	}, nil
}

// Entry extracts the ledger entry from the payload.
func (m *Message) Entry() (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := json.Unmarshal(m.Payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
