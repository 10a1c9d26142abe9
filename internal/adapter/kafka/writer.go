// Package kafka publishes aggregate records to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/city-conditions-dashboard/internal/config"
	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces aggregate records to the configured topic.
// It implements pipeline.AggregatePublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the aggregate topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaAggregateTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes every row of every table in a single WriteMessages call.
// It returns the number of records written.
func (w *Writer) Publish(ctx context.Context, tables []domain.AggregateTable, generatedAt time.Time) (int, error) {
	var msgs []kafkago.Message
	for _, t := range tables {
		for _, row := range t.Rows {
			msg, err := serializeToMessage(t, row, generatedAt)
			if err != nil {
				return 0, err
			}
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return 0, nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("publish aggregates: %w", err)
	}
	w.logger.Info("aggregates published", "topic", w.writer.Topic, "records", len(msgs))
	return len(msgs), nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// aggregateRecord is the JSON payload of one published aggregate.
type aggregateRecord struct {
	Table   string            `json:"table"`
	Keys    map[string]string `json:"keys"`
	Measure string            `json:"measure"`
	Mean    *float64          `json:"mean"`
	Count   int               `json:"count"`
}

// serializeToMessage marshals one aggregate row into a Kafka message keyed by
// its key tuple, so each group lands on a stable partition.
func serializeToMessage(t domain.AggregateTable, row domain.Aggregate, generatedAt time.Time) (kafkago.Message, error) {
	rec := aggregateRecord{
		Table:   t.Name(),
		Keys:    row.Keys,
		Measure: row.Measure,
		Count:   row.Count,
	}
	if row.Valid {
		mean := row.Mean
		rec.Mean = &mean
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize aggregate: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(row.Key(t.GroupKeys)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "measure", Value: []byte(t.Measure)},
			{Key: "group_keys", Value: []byte(strings.Join(t.GroupKeys, ","))},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
