// Package card defines the card issuance workflow: the product catalog that
// drives eligibility, the client request routed to a manager, and the
// concrete card minted on approval.
package card

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/money"
)

var (
	ErrEmptyProductName = errors.New("card product name cannot be empty")
	ErrInvalidLimits    = errors.New("card product max limit cannot be below min limit")
)

// Product is a catalog entry for an issuable card type. Read-mostly; its
// limits are the eligibility criteria for requests against it.
type Product struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	MinLimit    money.Money  `json:"min_limit"`
	MaxLimit    *money.Money `json:"max_limit,omitempty"`
	Active      bool         `json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewProduct creates an active catalog entry.
func NewProduct(name, description string, minLimit money.Money, maxLimit *money.Money) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyProductName
	}
	if maxLimit != nil && maxLimit.LessThan(minLimit) {
		return nil, ErrInvalidLimits
	}

	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		MinLimit:    minLimit,
		MaxLimit:    maxLimit,
		Active:      true,
		CreatedAt:   time.Now(),
	}, nil
}

// IsEligible reports whether the client qualifies for this product: the
// product must be active and the client's credit limit must fall inside the
// product's limit range. Pure check, no side effects.
func (p *Product) IsEligible(c *client.Client) bool {
	if !p.Active {
		return false
	}
	if c.CreditLimit.LessThan(p.MinLimit) {
		return false
	}
	if p.MaxLimit != nil && !p.MaxLimit.GreaterThanOrEqual(c.CreditLimit) {
		return false
	}
	return true
}

// IssuedLimit computes the credit limit of a card minted from this product:
// the client's limit, capped by the product's max when one is set.
func (p *Product) IssuedLimit(c *client.Client) money.Money {
	if p.MaxLimit == nil {
		return c.CreditLimit
	}
	return c.CreditLimit.Min(*p.MaxLimit)
}
