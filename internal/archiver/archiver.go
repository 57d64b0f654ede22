// Package archiver drains the transactional outbox into the statement
// archive. Entries are written to the outbox in the same transaction as the
// ledger row, so the archive eventually reflects every committed entry.
package archiver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nobanko/banking-core/internal/config"
	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/outbox"
)

// StatementArchiver stores one committed ledger entry in the archive.
// Implementations must be idempotent; the poller retries on failure.
type StatementArchiver interface {
	Archive(ctx context.Context, entry *ledger.Entry) error
}

// Poller processes pending outbox messages
type Poller struct {
	outboxRepo       outbox.Repository
	archive          StatementArchiver
	logger           *slog.Logger
	pollInterval     time.Duration
	batchSize        int
	maxRetryAttempts int
}

func NewPoller(
	cfg *config.ArchiverConfig,
	outboxRepo outbox.Repository,
	archive StatementArchiver,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		outboxRepo:       outboxRepo,
		archive:          archive,
		logger:           logger,
		pollInterval:     cfg.PollingInterval,
		batchSize:        cfg.BatchSize,
		maxRetryAttempts: cfg.MaxRetryAttempts,
	}
}

// Start begins polling until context is canceled
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting statement archiver",
		"poll_interval", p.pollInterval.String(),
		"batch_size", p.batchSize,
		"max_retry_attempts", p.maxRetryAttempts,
	)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Statement archiver stopping due to context cancellation.")
			return
		case <-ticker.C:
			p.logger.Debug("Archiver tick: processing pending outbox messages")
			if err := p.ProcessPendingMessages(ctx); err != nil {
				p.logger.Error("Error during batch processing of pending outbox messages", "error", err)
			}
		}
	}
}

// ProcessPendingMessages archives one batch of pending outbox messages.
func (p *Poller) ProcessPendingMessages(ctx context.Context) error {
	messages, err := p.outboxRepo.GetPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending outbox messages: %w", err)
	}

	if len(messages) == 0 {
		p.logger.Debug("No pending outbox messages found.")
		return nil
	}

	p.logger.Info("Fetched pending outbox messages", "count", len(messages))

	for _, msg := range messages {
		entry, err := msg.Entry()
		if err != nil {
			// A payload that cannot be decoded will never succeed; park it.
			p.logger.Error("Failed to decode outbox payload, marking as FAILED_TO_PUBLISH",
				"outbox_id", msg.ID, "entry_id", msg.EntryID.String(), "error", err,
			)
			if errUpdate := p.outboxRepo.UpdateStatus(ctx, msg.ID, outbox.StatusFailedToPublish); errUpdate != nil {
				p.logger.Error("Failed to update outbox status", "outbox_id", msg.ID, "error", errUpdate)
			}
			continue
		}

		if err := p.archive.Archive(ctx, entry); err != nil {
			p.logger.Error("Failed to archive outbox message",
				"outbox_id", msg.ID, "entry_id", msg.EntryID.String(), "current_attempts", msg.Attempts, "error", err,
			)

			if errInc := p.outboxRepo.IncrementAttempts(ctx, msg.ID); errInc != nil {
				p.logger.Error("Failed to increment attempts for outbox message", "outbox_id", msg.ID, "error", errInc)
				continue
			}

			if msg.Attempts+1 >= p.maxRetryAttempts {
				p.logger.Warn("Max retry attempts reached for outbox message, marking as FAILED_TO_PUBLISH",
					"outbox_id", msg.ID, "entry_id", msg.EntryID.String(), "attempts_made", msg.Attempts+1,
				)
				if errUpdate := p.outboxRepo.UpdateStatus(ctx, msg.ID, outbox.StatusFailedToPublish); errUpdate != nil {
					p.logger.Error("Failed to update outbox status to FAILED_TO_PUBLISH after max retries", "outbox_id", msg.ID, "error", errUpdate)
				}
			}
			continue
		}

		if err := p.outboxRepo.UpdateStatus(ctx, msg.ID, outbox.StatusProcessed); err != nil {
			p.logger.Error("Failed to mark outbox message as PROCESSED", "outbox_id", msg.ID, "error", err)
			continue
		}
		p.logger.Info("Archived outbox message", "outbox_id", msg.ID, "entry_id", msg.EntryID.String())
	}
	return nil
}
