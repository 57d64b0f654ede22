package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nobanko/banking-core/internal/config"
	"github.com/nobanko/banking-core/internal/domain/shared"
	"github.com/segmentio/kafka-go"
)

// LedgerEventProducer publishes committed ledger events to Kafka. When the
// producer is disabled by configuration the writer is nil and publishing is a
// no-op; balance operations never depend on event delivery.
type LedgerEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewLedgerEventProducer creates the ledger events producer and ensures the
// topic exists. A disabled configuration yields a no-op producer.
func NewLedgerEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*LedgerEventProducer, error) {
	if !cfg.Enabled {
		logger.Info("Kafka producer disabled, ledger events will not be published")
		return &LedgerEventProducer{logger: logger}, nil
	}
	if cfg.LedgerEventsTopic == "" {
		return nil, fmt.Errorf("kafka ledger events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for ledger events producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.LedgerEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure ledger events topic %s exists: %w", cfg.LedgerEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.LedgerEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &LedgerEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.LedgerEventsTopic,
	}, nil
}

// PublishLedgerEvent writes the event keyed by client ID so events for one
// client stay ordered within a partition.
func (p *LedgerEventProducer) PublishLedgerEvent(ctx context.Context, event *shared.LedgerEvent) error {
	if p.writer == nil {
		p.logger.Debug("Kafka producer disabled, dropping ledger event", "entry_id", event.EntryID.String())
		return nil
	}

	jsonValue, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event %s: %w", event.EntryID.String(), err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ClientID.String()),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish ledger event",
			"topic", p.topic,
			"entry_id", event.EntryID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to publish ledger event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published ledger event",
		"topic", p.topic,
		"entry_id", event.EntryID.String(),
		"kind", string(event.Kind),
	)
	return nil
}

func (p *LedgerEventProducer) Close() error {
	if p.writer == nil {
		return nil
	}
	p.logger.Info("Closing ledger events Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
