// Package service implements the application operations: account management,
// the deposit and transfer engine, and the credit and card approval
// workflows. All balance-affecting work runs inside a single database
// transaction with pessimistic row locks; side effects (events,
// notifications) happen only after commit.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/card"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/credit"
	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/manager"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/notification"
	"github.com/nobanko/banking-core/internal/domain/shared"
	"github.com/nobanko/banking-core/internal/domain/transfer"
)

// TxRunner runs a function inside a database transaction, rolling back on
// error or panic. Satisfied by *persistence.PostgresDB.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// EventPublisher publishes ledger events after a transaction commits.
// Implementations must tolerate a disabled broker: publishing is best-effort
// and never fails the business operation.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *shared.LedgerEvent) error
}

// Notifier delivers messages to clients asynchronously. Fire and forget;
// callers never block on delivery.
type Notifier interface {
	Notify(clientID uuid.UUID, sender notification.Sender, content string)
}

// AccountService manages clients and managers.
type AccountService interface {
	OpenAccount(ctx context.Context, name, account, agency string) (*client.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error)
	GetClientByAccount(ctx context.Context, account string) (*client.Client, error)
	CreateManager(ctx context.Context, name, code string) (*manager.Manager, error)
	GetManager(ctx context.Context, id uuid.UUID) (*manager.Manager, error)
	AssignManager(ctx context.Context, clientID, managerID uuid.UUID) error
	UnassignManager(ctx context.Context, clientID uuid.UUID) error
	GetNotifications(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*notification.Message, error)
}

// LedgerService is the balance engine: deposits, transfers and reads over
// the immutable entry log.
type LedgerService interface {
	// Deposit credits the client's account and appends a CREDIT entry.
	Deposit(ctx context.Context, clientID uuid.UUID, amount, description string) (*ledger.Entry, error)

	// Transfer atomically moves amount from the origin client to the client
	// holding destinationAccount, producing a DEBIT and a CREDIT entry and a
	// transfer record linking them.
	Transfer(ctx context.Context, originID uuid.UUID, destinationAccount, amount, description string) (*transfer.Transfer, error)

	GetBalance(ctx context.Context, clientID uuid.UUID) (money.Money, error)
	GetStatement(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, int64, error)

	// GetArchivedStatement serves history from the Mongo statement archive,
	// which may trail the ledger by the archiver's polling interval.
	GetArchivedStatement(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, int64, error)

	GetTransfers(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*transfer.Transfer, error)
}

// CreditService is the credit-limit raise workflow.
type CreditService interface {
	RequestRaise(ctx context.Context, clientID uuid.UUID, amount, reason string) (*credit.Request, error)
	Approve(ctx context.Context, requestID, managerID uuid.UUID, note string) (*credit.Request, error)
	Deny(ctx context.Context, requestID, managerID uuid.UUID, note string) (*credit.Request, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*credit.Request, error)
	ListPendingForManager(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*credit.Request, error)
}

// CardService is the card issuance workflow.
type CardService interface {
	CreateProduct(ctx context.Context, name, description, minLimit string, maxLimit *string) (*card.Product, error)
	ListEligibleProducts(ctx context.Context, clientID uuid.UUID) ([]*card.Product, error)
	RequestCard(ctx context.Context, clientID, productID uuid.UUID, justification string) (*card.Request, error)

	// Approve mints the card and links it to the request in one transaction.
	Approve(ctx context.Context, requestID, managerID uuid.UUID, note string) (*card.Request, *card.Card, error)
	Deny(ctx context.Context, requestID, managerID uuid.UUID, note string) (*card.Request, error)
	ListCards(ctx context.Context, clientID uuid.UUID) ([]*card.Card, error)
	ListRequestsByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*card.Request, error)
	ListPendingForManager(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*card.Request, error)
}
