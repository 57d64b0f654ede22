package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nobanko/banking-core/internal/domain/card"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/credit"
	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/manager"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/notification"
	"github.com/nobanko/banking-core/internal/domain/transfer"
	"github.com/nobanko/banking-core/internal/service"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) OpenAccount(ctx context.Context, name, account, agency string) (*client.Client, error) {
	args := m.Called(ctx, name, account, agency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockAccountService) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockAccountService) GetClientByAccount(ctx context.Context, account string) (*client.Client, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockAccountService) CreateManager(ctx context.Context, name, code string) (*manager.Manager, error) {
	args := m.Called(ctx, name, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manager.Manager), args.Error(1)
}

func (m *MockAccountService) GetManager(ctx context.Context, id uuid.UUID) (*manager.Manager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manager.Manager), args.Error(1)
}

func (m *MockAccountService) AssignManager(ctx context.Context, clientID, managerID uuid.UUID) error {
	args := m.Called(ctx, clientID, managerID)
	return args.Error(0)
}

func (m *MockAccountService) UnassignManager(ctx context.Context, clientID uuid.UUID) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockAccountService) GetNotifications(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*notification.Message, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Message), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Deposit(ctx context.Context, clientID uuid.UUID, amount, description string) (*ledger.Entry, error) {
	args := m.Called(ctx, clientID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, originID uuid.UUID, destinationAccount, amount, description string) (*transfer.Transfer, error) {
	args := m.Called(ctx, originID, destinationAccount, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Transfer), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, clientID uuid.UUID) (money.Money, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(money.Money), args.Error(1)
}

func (m *MockLedgerService) GetStatement(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*ledger.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) GetArchivedStatement(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*ledger.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) GetTransfers(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*transfer.Transfer, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.Transfer), args.Error(1)
}

type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) RequestRaise(ctx context.Context, clientID uuid.UUID, amount, reason string) (*credit.Request, error) {
	args := m.Called(ctx, clientID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Request), args.Error(1)
}

func (m *MockCreditService) Approve(ctx context.Context, requestID, managerID uuid.UUID, note string) (*credit.Request, error) {
	args := m.Called(ctx, requestID, managerID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Request), args.Error(1)
}

func (m *MockCreditService) Deny(ctx context.Context, requestID, managerID uuid.UUID, note string) (*credit.Request, error) {
	args := m.Called(ctx, requestID, managerID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Request), args.Error(1)
}

func (m *MockCreditService) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*credit.Request, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credit.Request), args.Error(1)
}

func (m *MockCreditService) ListPendingForManager(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*credit.Request, error) {
	args := m.Called(ctx, managerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credit.Request), args.Error(1)
}

type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) CreateProduct(ctx context.Context, name, description, minLimit string, maxLimit *string) (*card.Product, error) {
	args := m.Called(ctx, name, description, minLimit, maxLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.Product), args.Error(1)
}

func (m *MockCardService) ListEligibleProducts(ctx context.Context, clientID uuid.UUID) ([]*card.Product, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.Product), args.Error(1)
}

func (m *MockCardService) RequestCard(ctx context.Context, clientID, productID uuid.UUID, justification string) (*card.Request, error) {
	args := m.Called(ctx, clientID, productID, justification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.Request), args.Error(1)
}

func (m *MockCardService) Approve(ctx context.Context, requestID, managerID uuid.UUID, note string) (*card.Request, *card.Card, error) {
	args := m.Called(ctx, requestID, managerID, note)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*card.Request), args.Get(1).(*card.Card), args.Error(2)
}

func (m *MockCardService) Deny(ctx context.Context, requestID, managerID uuid.UUID, note string) (*card.Request, error) {
	args := m.Called(ctx, requestID, managerID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.Request), args.Error(1)
}

func (m *MockCardService) ListCards(ctx context.Context, clientID uuid.UUID) ([]*card.Card, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.Card), args.Error(1)
}

func (m *MockCardService) ListRequestsByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*card.Request, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.Request), args.Error(1)
}

func (m *MockCardService) ListPendingForManager(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*card.Request, error) {
	args := m.Called(ctx, managerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.Request), args.Error(1)
}

// Verify interface implementations
var (
	_ service.AccountService = (*MockAccountService)(nil)
	_ service.LedgerService  = (*MockLedgerService)(nil)
	_ service.CreditService  = (*MockCreditService)(nil)
	_ service.CardService    = (*MockCardService)(nil)
)
