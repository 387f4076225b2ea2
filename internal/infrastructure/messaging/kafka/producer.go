// Package kafka publishes ingestion and analysis lifecycle events.  Event
// publication is fire-and-forget from the caller's perspective: a broker
// outage degrades to logged errors, never to failed ingestions or analyses.
package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

const (
	eventSource   = "precedent-intelligence"
	schemaVersion = "1.0"
)

// ProducerConfig holds configuration for the Producer.
type ProducerConfig struct {
	Brokers      []string
	Acks         string
	MaxRetries   int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

// writerInterface abstracts kafka.Writer for testing.
type writerInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer manages event production.
type Producer struct {
	writer writerInterface
	logger logging.Logger
	closed atomic.Bool

	messagesSent   atomic.Int64
	messagesFailed atomic.Int64
}

// NewProducer creates a Producer connected to the given brokers.
func NewProducer(cfg ProducerConfig, logger logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, "at least one broker is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	requiredAcks := kafkago.RequireAll
	switch cfg.Acks {
	case "none":
		requiredAcks = kafkago.RequireNone
	case "one":
		requiredAcks = kafkago.RequireOne
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: requiredAcks,
		MaxAttempts:  cfg.MaxRetries,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Producer{
		writer: writer,
		logger: logger.Named("kafka-producer"),
	}, nil
}

// newProducerWithWriter wires a Producer around an existing writer; tests use
// it to substitute a capture writer.
func newProducerWithWriter(w writerInterface, logger logging.Logger) *Producer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Producer{writer: w, logger: logger.Named("kafka-producer")}
}

// Publish wraps payload in an EventEnvelope and writes it to topic, keyed by
// key for partition affinity.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	if p.closed.Load() {
		return apperrors.New(apperrors.ErrCodeServiceUnavailable, "producer closed")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshaling event payload")
	}
	envelope := EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     topic,
		Source:        eventSource,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       raw,
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshaling event envelope")
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  envelope.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.messagesFailed.Add(1)
		p.logger.Error("event publish failed",
			logging.String("topic", topic),
			logging.Err(err))
		return apperrors.Wrap(err, apperrors.ErrCodeExternalService, "publishing to "+topic)
	}

	p.messagesSent.Add(1)
	return nil
}

// Stats returns the sent/failed message counts.
func (p *Producer) Stats() (sent, failed int64) {
	return p.messagesSent.Load(), p.messagesFailed.Load()
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
