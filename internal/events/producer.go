// Package events publishes completed tallies to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// TallyEvent is the message body for one completed tally.
type TallyEvent struct {
	RunID       string    `json:"run_id"`
	MatchupID   string    `json:"matchup_id,omitempty"`
	Query       string    `json:"query"`
	TeamA       string    `json:"team_a_label"`
	TeamB       string    `json:"team_b_label"`
	Days        int       `json:"days"`
	VotesTeamA  int       `json:"votes_team_a"`
	VotesTeamB  int       `json:"votes_team_b"`
	Ambiguous   int       `json:"ambiguous"`
	Dominant    string    `json:"dominant"`
	Sources     int       `json:"sources"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewTallyEvent flattens a result into its event form.
func NewTallyEvent(res predictions.Result) TallyEvent {
	return TallyEvent{
		RunID:       res.RunID,
		MatchupID:   res.MatchupID,
		Query:       res.Query,
		TeamA:       res.TeamALabel,
		TeamB:       res.TeamBLabel,
		Days:        res.Days,
		VotesTeamA:  res.Tally.VotesA,
		VotesTeamB:  res.Tally.VotesB,
		Ambiguous:   res.Tally.Ambiguous,
		Dominant:    res.Dominant,
		Sources:     len(res.Sources),
		GeneratedAt: res.GeneratedAt,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes JSON-encoded tally events to a Kafka topic.
type Producer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewProducer creates a Producer for the configured brokers and topic.
func NewProducer(cfg config.EventsConfig, logger *slog.Logger) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return newProducer(w, logger, cfg.Topic)
}

func newProducer(w messageWriter, logger *slog.Logger, topic string) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		writer: w,
		logger: logger.With("component", "kafka-producer", "topic", topic),
	}
}

// PublishResult writes one event keyed by matchup ID, or by query when the run has no ID.
func (p *Producer) PublishResult(ctx context.Context, res predictions.Result) error {
	event := NewTallyEvent(res)
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling tally event: %w", err)
	}
	key := res.MatchupID
	if key == "" {
		key = res.Query
	}
	msg := kafka.Message{Key: []byte(key), Value: value}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish tally event", "key", key, "error", err)
		return fmt.Errorf("publishing to kafka: %w", err)
	}
	p.logger.Debug("tally event published", "key", key, "value_size", len(value))
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
