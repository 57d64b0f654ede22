// Package client defines the account-holder aggregate: the current balance,
// the credit limit and the manager assignment. Balances are mutated only by
// the ledger services, inside a scoped transaction with the row locked.
package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/money"
)

// Common errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEmptyName         = errors.New("client name cannot be empty")
	ErrEmptyAccount      = errors.New("account number cannot be empty")
)

// DefaultCreditLimit is granted to every client at account opening.
var DefaultCreditLimit = money.MustParse("2000.00")

// Client represents an account holder.
type Client struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Account     string      `json:"account"`
	Agency      string      `json:"agency"`
	Balance     money.Money `json:"balance"`
	CreditLimit money.Money `json:"credit_limit"`
	ManagerID   *uuid.UUID  `json:"manager_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewClient creates a client with a zero balance and the default credit limit.
func NewClient(name, account, agency string) (*Client, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if account == "" {
		return nil, ErrEmptyAccount
	}

	now := time.Now()
	return &Client{
		ID:          uuid.New(),
		Name:        name,
		Account:     account,
		Agency:      agency,
		Balance:     money.Zero(),
		CreditLimit: DefaultCreditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Credit adds amount to the balance. The caller must hold the row lock.
func (c *Client) Credit(amount money.Money) error {
	if !amount.IsPositive() {
		return money.ErrInvalidAmount
	}
	c.Balance = c.Balance.Add(amount)
	c.UpdatedAt = time.Now()
	return nil
}

// Debit subtracts amount from the balance, refusing to go negative.
// The caller must hold the row lock.
func (c *Client) Debit(amount money.Money) error {
	if !amount.IsPositive() {
		return money.ErrInvalidAmount
	}
	if c.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	c.Balance = c.Balance.Sub(amount)
	c.UpdatedAt = time.Now()
	return nil
}

// HasManager reports whether the client currently has an assigned manager.
// Credit and card workflows are blocked for unmanaged clients.
func (c *Client) HasManager() bool {
	return c.ManagerID != nil
}

// AccountLabel renders the agency-account pair used in default transfer
// descriptions, e.g. "0001-12345678".
func (c *Client) AccountLabel() string {
	if c.Agency == "" {
		return c.Account
	}
	return c.Agency + "-" + c.Account
}
