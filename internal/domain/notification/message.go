// Package notification defines the system messages delivered to clients
// after balance movements and workflow resolutions. Delivery is best-effort
// and asynchronous; it never participates in the ledger transaction.
package notification

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who originated a message.
type Sender string

const (
	SenderSystem  Sender = "system"
	SenderManager Sender = "manager"
)

// Message is one notification addressed to a client.
type Message struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Content  string    `json:"content"`
	Sender   Sender    `json:"sender"`
	SentAt   time.Time `json:"sent_at"`
}

// NewMessage builds a message from the given sender.
func NewMessage(clientID uuid.UUID, sender Sender, content string) *Message {
	return &Message{
		ID:       uuid.New(),
		ClientID: clientID,
		Content:  content,
		Sender:   sender,
		SentAt:   time.Now(),
	}
}
