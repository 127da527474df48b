// Package ingest consumes daily-close sales events and folds them into
// the closed-day history cache that backs the vendas-diarias endpoint.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// HistoryStore is the cache surface the consumer writes to.
type HistoryStore interface {
	AppendDayClose(ctx context.Context, storeCode string, date string, total decimal.Decimal) error
}

// Consumer handles consuming daily-close events from Kafka.
type Consumer struct {
	reader *kafka.Reader
	store  HistoryStore
	logger zerolog.Logger
}

// NewConsumer creates a new Kafka consumer for daily-close events.
func NewConsumer(brokers []string, topic, groupID string, store HistoryStore, logger zerolog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader: reader,
		store:  store,
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// Start begins consuming messages from Kafka. Blocks until ctx is done.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().Str("topic", c.reader.Config().Topic).Msg("starting daily-close consumer")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("daily-close consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return c.reader.Close()
				}
				c.logger.Error().Err(err).Msg("error reading message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int("partition", msg.Partition).
					Int64("offset", msg.Offset).
					Msg("error processing message")
				// Continue processing other messages
			}
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var event models.DailyCloseEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal daily-close event: %w", err)
	}

	if event.EventType != "DAY_CLOSED" {
		c.logger.Debug().Str("event_type", event.EventType).Msg("ignoring event")
		return nil
	}

	if event.StoreCode == "" || event.Date == "" {
		return fmt.Errorf("event missing store code or date")
	}

	total, err := decimal.NewFromString(event.Total)
	if err != nil {
		return fmt.Errorf("invalid total %q: %w", event.Total, err)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}

	if err := c.store.AppendDayClose(ctx, event.StoreCode, event.Date, total); err != nil {
		return fmt.Errorf("failed to save day close: %w", err)
	}

	c.logger.Info().
		Str("store", event.StoreCode).
		Str("date", event.Date).
		Str("total", total.String()).
		Msg("day closed")

	return nil
}

// Close closes the Kafka reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
