package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/EgehanKilicarslan/identity-service/internal/config"
)

// MessageReader is the subset of *kafka.Reader the listener depends on
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReservationEvent is published by the reservation service when a booking changes
type ReservationEvent struct {
	ReservationID uint       `json:"reservation_id"`
	UserID        uint       `json:"user_id"`
	RestaurantID  uint       `json:"restaurant_id"`
	Status        string     `json:"status"`
	ReservedAt    *time.Time `json:"reserved_at,omitempty"`
}

// NewKafkaReader creates a consumer-group reader for the reservation topic
func NewKafkaReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaReservationTopic,
		GroupID:        cfg.KafkaGroupID,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		MaxWait:        time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 5 * time.Second,
	})
}

// ReservationListener consumes reservation events and records them in the log
type ReservationListener struct {
	reader  MessageReader
	backoff time.Duration
	logger  *slog.Logger
}

func NewReservationListener(reader MessageReader, logger *slog.Logger) *ReservationListener {
	return &ReservationListener{
		reader:  reader,
		backoff: time.Second,
		logger:  logger,
	}
}

// Run fetches and commits messages until ctx is cancelled.
// Undecodable messages are committed so they are not redelivered.
func (l *ReservationListener) Run(ctx context.Context) error {
	l.logger.Info("📨 [Events] Reservation listener started")
	defer l.logger.Info("📭 [Events] Reservation listener stopped")

	for {
		msg, err := l.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Warn("⚠️ [Events] Failed to fetch message", "error", err)
			if !sleep(ctx, l.backoff) {
				return ctx.Err()
			}
			continue
		}

		l.handle(msg)

		if err := l.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Error("❌ [Events] Failed to commit message", "offset", msg.Offset, "error", err)
		}
	}
}

func (l *ReservationListener) handle(msg kafka.Message) {
	var event ReservationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		l.logger.Warn("⚠️ [Events] Undecodable reservation event",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		return
	}

	l.logger.Info("📅 [Events] Reservation event received",
		"reservation_id", event.ReservationID,
		"user_id", event.UserID,
		"restaurant_id", event.RestaurantID,
		"status", event.Status,
	)
}

// Close releases the underlying reader
func (l *ReservationListener) Close() error {
	err := l.reader.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
