package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nobanko/banking-core/internal/domain/card"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/credit"
	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/manager"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/notification"
	"github.com/nobanko/banking-core/internal/domain/outbox"
	"github.com/nobanko/banking-core/internal/domain/shared"
	"github.com/nobanko/banking-core/internal/domain/transfer"
	"github.com/stretchr/testify/mock"
)

// MockTx implements the pgx.Tx interface for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return m, nil }
func (m *MockTx) Commit(ctx context.Context) error          { return nil }
func (m *MockTx) Rollback(ctx context.Context) error        { return nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return &pgconn.StatementDescription{}, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                                { return pgx.LargeObjects{} }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

// stubTxRunner executes the transactional function against a MockTx,
// standing in for *persistence.PostgresDB.
type stubTxRunner struct {
	tx *MockTx
}

func newStubTxRunner() *stubTxRunner {
	return &stubTxRunner{tx: &MockTx{}}
}

func (r *stubTxRunner) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(r.tx)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) GetByAccount(ctx context.Context, account string) (*client.Client, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

func (m *MockClientRepository) SetManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) error {
	args := m.Called(ctx, id, managerID)
	return args.Error(0)
}

func (m *MockClientRepository) WithTx(tx pgx.Tx) client.Repository { return m }

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) GetByTransferID(ctx context.Context, transferID uuid.UUID) ([]*ledger.Entry, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) SetTransferID(ctx context.Context, entryID, transferID uuid.UUID) error {
	args := m.Called(ctx, entryID, transferID)
	return args.Error(0)
}

func (m *MockLedgerRepository) WithTx(tx pgx.Tx) ledger.Repository { return m }

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Archive(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockArchiveRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockArchiveRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Create(ctx context.Context, t *transfer.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Transfer), args.Error(1)
}

func (m *MockTransferRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*transfer.Transfer, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.Transfer), args.Error(1)
}

func (m *MockTransferRepository) WithTx(tx pgx.Tx) transfer.Repository { return m }

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) UpdateStatus(ctx context.Context, id int64, status outbox.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) WithTx(tx pgx.Tx) outbox.Repository { return m }

type MockManagerRepository struct {
	mock.Mock
}

func (m *MockManagerRepository) Create(ctx context.Context, mgr *manager.Manager) error {
	args := m.Called(ctx, mgr)
	return args.Error(0)
}

func (m *MockManagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*manager.Manager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manager.Manager), args.Error(1)
}

func (m *MockManagerRepository) GetByCode(ctx context.Context, code string) (*manager.Manager, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manager.Manager), args.Error(1)
}

func (m *MockManagerRepository) WithTx(tx pgx.Tx) manager.Repository { return m }

type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) Create(ctx context.Context, r *credit.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCreditRepository) GetByID(ctx context.Context, id uuid.UUID) (*credit.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Request), args.Error(1)
}

func (m *MockCreditRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*credit.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Request), args.Error(1)
}

func (m *MockCreditRepository) UpdateResolution(ctx context.Context, r *credit.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCreditRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*credit.Request, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credit.Request), args.Error(1)
}

func (m *MockCreditRepository) GetPendingByManagerID(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*credit.Request, error) {
	args := m.Called(ctx, managerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credit.Request), args.Error(1)
}

func (m *MockCreditRepository) WithTx(tx pgx.Tx) credit.Repository { return m }

type MockCardProductRepository struct {
	mock.Mock
}

func (m *MockCardProductRepository) Create(ctx context.Context, p *card.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCardProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*card.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.Product), args.Error(1)
}

func (m *MockCardProductRepository) GetByName(ctx context.Context, name string) (*card.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.Product), args.Error(1)
}

func (m *MockCardProductRepository) ListActive(ctx context.Context) ([]*card.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.Product), args.Error(1)
}

func (m *MockCardProductRepository) WithTx(tx pgx.Tx) card.ProductRepository { return m }

type MockCardRequestRepository struct {
	mock.Mock
}

func (m *MockCardRequestRepository) Create(ctx context.Context, r *card.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCardRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*card.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.Request), args.Error(1)
}

func (m *MockCardRequestRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*card.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.Request), args.Error(1)
}

func (m *MockCardRequestRepository) UpdateResolution(ctx context.Context, r *card.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCardRequestRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*card.Request, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.Request), args.Error(1)
}

func (m *MockCardRequestRepository) GetPendingByManagerID(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*card.Request, error) {
	args := m.Called(ctx, managerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.Request), args.Error(1)
}

func (m *MockCardRequestRepository) WithTx(tx pgx.Tx) card.RequestRepository { return m }

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, c *card.Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.Card), args.Error(1)
}

func (m *MockCardRepository) GetByClientID(ctx context.Context, clientID uuid.UUID) ([]*card.Card, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.Card), args.Error(1)
}

func (m *MockCardRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardRepository) WithTx(tx pgx.Tx) card.CardRepository { return m }

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, msg *notification.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*notification.Message, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Message), args.Error(1)
}

func (m *MockNotificationRepository) WithTx(tx pgx.Tx) notification.Repository { return m }

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLedgerEvent(ctx context.Context, event *shared.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(clientID uuid.UUID, sender notification.Sender, content string) {
	m.Called(clientID, sender, content)
}
