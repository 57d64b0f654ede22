package card

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/money"
)

// ValidityYears is how long an issued card remains valid.
const ValidityYears = 4

// Card is a concrete issued instrument.
type Card struct {
	ID           uuid.UUID   `json:"id"`
	ClientID     uuid.UUID   `json:"client_id"`
	ProductID    *uuid.UUID  `json:"product_id,omitempty"`
	Number       string      `json:"number"`
	Expiry       time.Time   `json:"expiry"`
	SecurityCode string      `json:"-"`
	Limit        money.Money `json:"limit"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewCard mints a card for a client with the given number. The expiry is
// issuance date plus ValidityYears; the security code is generated here.
func NewCard(clientID uuid.UUID, productID *uuid.UUID, number string, limit money.Money) (*Card, error) {
	code, err := GenerateSecurityCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Card{
		ID:           uuid.New(),
		ClientID:     clientID,
		ProductID:    productID,
		Number:       number,
		Expiry:       now.AddDate(ValidityYears, 0, 0),
		SecurityCode: code,
		Limit:        limit,
		CreatedAt:    now,
	}, nil
}

// GenerateNumber produces a uniformly random 16-digit card number from a
// cryptographically secure source. Uniqueness is the caller's concern: check
// against the card store and regenerate on collision.
func GenerateNumber() (string, error) {
	digits := make([]byte, 16)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate card number: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// GenerateSecurityCode produces a random zero-padded 3-digit code.
func GenerateSecurityCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to generate security code: %w", err)
	}
	return fmt.Sprintf("%03d", n.Int64()), nil
}
