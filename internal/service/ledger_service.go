package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nobanko/banking-core/internal/domain/client"
	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/nobanko/banking-core/internal/domain/notification"
	"github.com/nobanko/banking-core/internal/domain/outbox"
	"github.com/nobanko/banking-core/internal/domain/shared"
	"github.com/nobanko/banking-core/internal/domain/transfer"
)

// Default entry descriptions used when the caller provides none.
const (
	defaultDepositDescription = "Deposit"
	transferOutDescriptionFmt = "Transfer to account %s"
	transferInDescriptionFmt  = "Transfer received from account %s"
)

type LedgerServiceImpl struct {
	txRunner     TxRunner
	clientRepo   client.Repository
	ledgerRepo   ledger.Repository
	archiveRepo  ledger.ArchiveRepository
	transferRepo transfer.Repository
	outboxRepo   outbox.Repository
	publisher    EventPublisher
	notifier     Notifier
	logger       *slog.Logger
}

func NewLedgerService(
	txRunner TxRunner,
	clientRepo client.Repository,
	ledgerRepo ledger.Repository,
	archiveRepo ledger.ArchiveRepository,
	transferRepo transfer.Repository,
	outboxRepo outbox.Repository,
	publisher EventPublisher,
	notifier Notifier,
	logger *slog.Logger,
) LedgerService {
	return &LedgerServiceImpl{
		txRunner:     txRunner,
		clientRepo:   clientRepo,
		ledgerRepo:   ledgerRepo,
		archiveRepo:  archiveRepo,
		transferRepo: transferRepo,
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		notifier:     notifier,
		logger:       logger,
	}
}

// Deposit credits the client's balance and appends the matching CREDIT entry
// with a balance snapshot, all under the client's row lock.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, clientID uuid.UUID, amountRaw, description string) (*ledger.Entry, error) {
	logger := s.opLogger(ctx)

	amount, err := money.ParsePositive(amountRaw)
	if err != nil {
		return nil, err
	}
	if description == "" {
		description = defaultDepositDescription
	}

	var entry *ledger.Entry
	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		clientRepo := s.clientRepo.WithTx(tx)
		ledgerRepo := s.ledgerRepo.WithTx(tx)
		outboxRepo := s.outboxRepo.WithTx(tx)

		c, err := clientRepo.LockForUpdate(ctx, clientID)
		if err != nil {
			return err
		}

		if err := c.Credit(amount); err != nil {
			return err
		}
		if err := clientRepo.UpdateBalance(ctx, c.ID, c.Balance); err != nil {
			return err
		}

		entry = ledger.NewEntry(c.ID, ledger.EntryKindCredit, amount, c.Balance, description)
		if err := ledgerRepo.Create(ctx, entry); err != nil {
			return err
		}

		msg, err := outbox.NewMessage(entry)
		if err != nil {
			return fmt.Errorf("failed to build outbox message: %w", err)
		}
		return outboxRepo.Create(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Deposit committed",
		"client_id", clientID.String(),
		"entry_id", entry.ID.String(),
		"amount", amount.String())

	s.publishEntryEvent(ctx, entry, shared.LedgerEventDeposit)
	s.notifier.Notify(clientID, notification.SenderSystem,
		fmt.Sprintf("Deposit of %s credited to your account", amount))

	return entry, nil
}

// Transfer atomically debits the origin and credits the destination. Both
// rows are locked in ascending UUID byte order so that two opposing
// concurrent transfers cannot deadlock. The insufficient-funds check runs
// against the balance read under the lock.
//
// Preconditions short-circuit in order: destination validity, same-account,
// amount. A transfer to an unknown account fails InvalidDestination even
// when the amount is also garbage.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, originID uuid.UUID, destinationAccount, amountRaw, description string) (*transfer.Transfer, error) {
	logger := s.opLogger(ctx)

	destination, err := s.clientRepo.GetByAccount(ctx, destinationAccount)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, transfer.ErrInvalidDestination
	}
	if destination.ID == originID {
		return nil, transfer.ErrSameAccount
	}

	amount, err := money.ParsePositive(amountRaw)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)

	var (
		tr       *transfer.Transfer
		outEntry *ledger.Entry
		inEntry  *ledger.Entry
	)
	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		clientRepo := s.clientRepo.WithTx(tx)
		ledgerRepo := s.ledgerRepo.WithTx(tx)
		transferRepo := s.transferRepo.WithTx(tx)
		outboxRepo := s.outboxRepo.WithTx(tx)

		origin, dest, err := lockPair(ctx, clientRepo, originID, destination.ID)
		if err != nil {
			return err
		}

		if err := origin.Debit(amount); err != nil {
			return err
		}
		if err := dest.Credit(amount); err != nil {
			return err
		}

		if err := clientRepo.UpdateBalance(ctx, origin.ID, origin.Balance); err != nil {
			return err
		}
		if err := clientRepo.UpdateBalance(ctx, dest.ID, dest.Balance); err != nil {
			return err
		}

		// The caller's description goes on both legs; the per-leg defaults
		// apply only when none was given.
		outDesc := description
		if outDesc == "" {
			outDesc = fmt.Sprintf(transferOutDescriptionFmt, dest.AccountLabel())
		}
		inDesc := description
		if inDesc == "" {
			inDesc = fmt.Sprintf(transferInDescriptionFmt, origin.AccountLabel())
		}

		outEntry = ledger.NewEntry(origin.ID, ledger.EntryKindDebit, amount, origin.Balance, outDesc)
		outEntry.CounterpartyID = &dest.ID
		inEntry = ledger.NewEntry(dest.ID, ledger.EntryKindCredit, amount, dest.Balance, inDesc)
		inEntry.CounterpartyID = &origin.ID

		if err := ledgerRepo.Create(ctx, outEntry); err != nil {
			return err
		}
		if err := ledgerRepo.Create(ctx, inEntry); err != nil {
			return err
		}

		// The transfer record keeps the raw caller description, empty when
		// none was given; only the ledger legs carry the defaults.
		tr = transfer.NewCompleted(origin.ID, dest.ID, amount, description, outEntry.ID, inEntry.ID)
		if err := transferRepo.Create(ctx, tr); err != nil {
			return err
		}

		// Back-link both legs inside the creating transaction. This is the
		// single permitted post-create write on a ledger entry.
		if err := ledgerRepo.SetTransferID(ctx, outEntry.ID, tr.ID); err != nil {
			return err
		}
		if err := ledgerRepo.SetTransferID(ctx, inEntry.ID, tr.ID); err != nil {
			return err
		}
		outEntry.TransferID = &tr.ID
		inEntry.TransferID = &tr.ID

		for _, e := range []*ledger.Entry{outEntry, inEntry} {
			msg, err := outbox.NewMessage(e)
			if err != nil {
				return fmt.Errorf("failed to build outbox message: %w", err)
			}
			if err := outboxRepo.Create(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer committed",
		"transfer_id", tr.ID.String(),
		"origin_id", tr.OriginID.String(),
		"destination_id", tr.DestinationID.String(),
		"amount", amount.String())

	s.publishEntryEvent(ctx, outEntry, shared.LedgerEventTransfer)
	s.publishEntryEvent(ctx, inEntry, shared.LedgerEventTransfer)
	s.notifier.Notify(tr.OriginID, notification.SenderSystem,
		fmt.Sprintf("Transfer of %s to account %s completed", amount, destination.AccountLabel()))
	s.notifier.Notify(tr.DestinationID, notification.SenderSystem,
		fmt.Sprintf("You received a transfer of %s", amount))

	return tr, nil
}

// GetBalance returns the client's current balance.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, clientID uuid.UUID) (money.Money, error) {
	c, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return money.Money{}, err
	}
	return c.Balance, nil
}

// GetStatement returns a page of the client's ledger entries, most recent
// first, along with the total entry count.
func (s *LedgerServiceImpl) GetStatement(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, int64, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, 0, err
	}

	entries, err := s.ledgerRepo.GetByClientID(ctx, clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ledgerRepo.CountByClientID(ctx, clientID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetArchivedStatement reads the client's history from the statement archive
// instead of the authoritative ledger. The archive trails the ledger by the
// poller interval, so a just-committed entry may be absent.
func (s *LedgerServiceImpl) GetArchivedStatement(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*ledger.Entry, int64, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, 0, err
	}

	entries, err := s.archiveRepo.GetByClientID(ctx, clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.archiveRepo.CountByClientID(ctx, clientID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetTransfers returns transfers involving the client, most recent first.
func (s *LedgerServiceImpl) GetTransfers(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*transfer.Transfer, error) {
	return s.transferRepo.GetByClientID(ctx, clientID, limit, offset)
}

// lockPair locks both client rows in ascending UUID byte order. Every
// transfer acquires its two locks in the same global order regardless of
// direction, which rules out lock-order deadlocks between opposing
// concurrent transfers.
func lockPair(ctx context.Context, repo client.Repository, originID, destinationID uuid.UUID) (origin, destination *client.Client, err error) {
	first, second := originID, destinationID
	if bytes.Compare(destinationID[:], originID[:]) < 0 {
		first, second = destinationID, originID
	}

	a, err := repo.LockForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := repo.LockForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == originID {
		return a, b, nil
	}
	return b, a, nil
}

func (s *LedgerServiceImpl) publishEntryEvent(ctx context.Context, entry *ledger.Entry, kind shared.LedgerEventKind) {
	event := &shared.LedgerEvent{
		EntryID:       entry.ID,
		ClientID:      entry.ClientID,
		Kind:          kind,
		EntryKind:     string(entry.Kind),
		Amount:        entry.Amount.String(),
		BalanceAfter:  entry.BalanceAfter.String(),
		TransferID:    entry.TransferID,
		CorrelationID: shared.CorrelationIDFromContext(ctx),
		OccurredAt:    entry.CreatedAt,
	}

	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		// Event delivery is best-effort; the committed operation stands.
		s.logger.Error("Failed to publish ledger event", "entry_id", entry.ID.String(), "error", err)
	}
}

func (s *LedgerServiceImpl) opLogger(ctx context.Context) *slog.Logger {
	if id := shared.CorrelationIDFromContext(ctx); id != "" {
		return s.logger.With("correlation_id", id)
	}
	return s.logger
}
