package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/platform/obs"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the subset of *kafka.Writer the publisher needs.
// Tests substitute an in-memory implementation.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ResultEvent is the value of each published message: one match result of a run.
type ResultEvent struct {
	RunID     string             `json:"run_id"`
	Position  int                `json:"position"`
	CreatedAt time.Time          `json:"created_at"`
	Result    domain.MatchResult `json:"result"`
}

// KafkaPublisher emits one message per result, keyed "<run_id>:<position>".
type KafkaPublisher struct {
	writer KafkaWriter
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func NewKafkaPublisherWithWriter(w KafkaWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func messageKey(runID string, position int) []byte {
	return []byte(runID + ":" + strconv.Itoa(position))
}

// Publish writes all results of a run in a single batch.
// Runs without results publish nothing.
func (p *KafkaPublisher) Publish(ctx context.Context, run domain.MatchRun) (err error) {
	defer obs.Time(ctx, "runs.Publish")(&err)

	if p.writer == nil {
		return errors.New("kafka publisher: writer is nil")
	}

	if len(run.Results) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(run.Results))
	for i, r := range run.Results {
		value, err := json.Marshal(ResultEvent{
			RunID:     run.ID,
			Position:  i,
			CreatedAt: run.CreatedAt,
			Result:    r,
		})
		if err != nil {
			return fmt.Errorf("publish run %s: encode position %d: %w", run.ID, i, err)
		}
		msgs = append(msgs, kafka.Message{Key: messageKey(run.ID, i), Value: value})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish run %s: write %d messages: %w", run.ID, len(msgs), err)
	}

	log.Printf("run_id=%s published=%d", run.ID, len(msgs))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
