package archiver

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nobanko/banking-core/internal/config"
	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/outbox"
)

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

func (m *MockOutboxRepository) WithTx(tx pgx.Tx) outbox.Repository {
	return m
}

type MockStatementArchiver struct {
	mock.Mock
}

func (m *MockStatementArchiver) Archive(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func newTestPoller(outboxRepo *MockOutboxRepository, archive *MockStatementArchiver, maxRetries int) *Poller {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.ArchiverConfig{
		PollingInterval:  10 * time.Millisecond,
		BatchSize:        10,
		MaxRetryAttempts: maxRetries,
	}
	return NewPoller(cfg, outboxRepo, archive, logger)
}

func pendingMessage(t *testing.T) *outbox.Message {
	t.Helper()
	entry := ledger.NewEntry(uuid.New(), ledger.EntryKindCredit, money.MustParse("50.00"), money.MustParse("150.00"), "Deposit")
	msg, err := outbox.NewMessage(entry)
	require.NoError(t, err)
	msg.ID = 42
	return msg
}

func TestPoller_ProcessPendingMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("archives and marks processed", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		archive := new(MockStatementArchiver)
		poller := newTestPoller(outboxRepo, archive, 3)
		msg := pendingMessage(t)

		outboxRepo.On("GetPending", ctx, 10).Return([]*outbox.Message{msg}, nil).Once()
		archive.On("Archive", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.ID == msg.EntryID
		})).Return(nil).Once()
		outboxRepo.On("UpdateStatus", ctx, msg.ID, outbox.StatusProcessed).Return(nil).Once()

		require.NoError(t, poller.ProcessPendingMessages(ctx))
		outboxRepo.AssertExpectations(t)
		archive.AssertExpectations(t)
	})

	t.Run("no pending messages", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		archive := new(MockStatementArchiver)
		poller := newTestPoller(outboxRepo, archive, 3)

		outboxRepo.On("GetPending", ctx, 10).Return([]*outbox.Message{}, nil).Once()

		require.NoError(t, poller.ProcessPendingMessages(ctx))
		outboxRepo.AssertExpectations(t)
		archive.AssertNotCalled(t, "Archive")
	})

	t.Run("archive failure increments attempts", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		archive := new(MockStatementArchiver)
		poller := newTestPoller(outboxRepo, archive, 3)
		msg := pendingMessage(t)

		outboxRepo.On("GetPending", ctx, 10).Return([]*outbox.Message{msg}, nil).Once()
		archive.On("Archive", ctx, mock.Anything).Return(errors.New("mongo unavailable")).Once()
		outboxRepo.On("IncrementAttempts", ctx, msg.ID).Return(nil).Once()

		require.NoError(t, poller.ProcessPendingMessages(ctx))
		outboxRepo.AssertExpectations(t)
		outboxRepo.AssertNotCalled(t, "UpdateStatus", ctx, msg.ID, outbox.StatusProcessed)
	})

	t.Run("max retries marks failed to publish", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		archive := new(MockStatementArchiver)
		poller := newTestPoller(outboxRepo, archive, 3)
		msg := pendingMessage(t)
		msg.Attempts = 2 // This attempt is the third and last.

		outboxRepo.On("GetPending", ctx, 10).Return([]*outbox.Message{msg}, nil).Once()
		archive.On("Archive", ctx, mock.Anything).Return(errors.New("mongo unavailable")).Once()
		outboxRepo.On("IncrementAttempts", ctx, msg.ID).Return(nil).Once()
		outboxRepo.On("UpdateStatus", ctx, msg.ID, outbox.StatusFailedToPublish).Return(nil).Once()

		require.NoError(t, poller.ProcessPendingMessages(ctx))
		outboxRepo.AssertExpectations(t)
	})

	t.Run("undecodable payload is parked", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		archive := new(MockStatementArchiver)
		poller := newTestPoller(outboxRepo, archive, 3)
		msg := pendingMessage(t)
		msg.Payload = []byte("{not json")

		outboxRepo.On("GetPending", ctx, 10).Return([]*outbox.Message{msg}, nil).Once()
		outboxRepo.On("UpdateStatus", ctx, msg.ID, outbox.StatusFailedToPublish).Return(nil).Once()

		require.NoError(t, poller.ProcessPendingMessages(ctx))
		outboxRepo.AssertExpectations(t)
		archive.AssertNotCalled(t, "Archive")
	})

	t.Run("continues past a failing message", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		archive := new(MockStatementArchiver)
		poller := newTestPoller(outboxRepo, archive, 3)
		failing := pendingMessage(t)
		ok := pendingMessage(t)
		ok.ID = 43

		outboxRepo.On("GetPending", ctx, 10).Return([]*outbox.Message{failing, ok}, nil).Once()
		archive.On("Archive", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.ID == failing.EntryID
		})).Return(errors.New("mongo unavailable")).Once()
		outboxRepo.On("IncrementAttempts", ctx, failing.ID).Return(nil).Once()
		archive.On("Archive", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.ID == ok.EntryID
		})).Return(nil).Once()
		outboxRepo.On("UpdateStatus", ctx, ok.ID, outbox.StatusProcessed).Return(nil).Once()

		require.NoError(t, poller.ProcessPendingMessages(ctx))
		outboxRepo.AssertExpectations(t)
		archive.AssertExpectations(t)
	})
}
