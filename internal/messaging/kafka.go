package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"

	"github.com/lumeo-app/lumeo/internal/config"
	"github.com/lumeo-app/lumeo/pkg/models"
)

const consumerGroup = "behavior-writers"

// interactionEventSchema constrains events read off the topic. Other app
// surfaces publish here too, so payloads are validated before they touch the
// behavior store.
const interactionEventSchema = `{
	"type": "object",
	"required": ["user_id", "post_id", "kind"],
	"properties": {
		"event_id": {"type": "string"},
		"user_id": {"type": "string", "minLength": 1},
		"post_id": {"type": "string", "minLength": 1},
		"kind": {"type": "string", "enum": ["like", "comment", "save", "view"]},
		"timestamp": {"type": "string"}
	}
}`

// InteractionBus publishes and consumes interaction events on the
// user-interactions topic.
type InteractionBus struct {
	writer *kafka.Writer
	reader *kafka.Reader
	schema *gojsonschema.Schema
	logger *logrus.Logger
}

func NewInteractionBus(cfg *config.Config, logger *logrus.Logger) (*InteractionBus, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(interactionEventSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile interaction event schema: %w", err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topics.UserInteractions,
		Balancer:     &kafka.Hash{}, // key by user id so one user's events stay ordered
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.Topics.UserInteractions,
		GroupID:        consumerGroup,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	return &InteractionBus{
		writer: writer,
		reader: reader,
		schema: schema,
		logger: logger,
	}, nil
}

// Publish emits one interaction event, keyed by user id.
func (b *InteractionBus) Publish(ctx context.Context, event models.InteractionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.UserID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := b.writer.WriteMessages(writeCtx, message); err != nil {
		return fmt.Errorf("failed to publish interaction event: %w", err)
	}
	return nil
}

// Consume reads events until ctx is canceled, validating each against the
// schema before handing it to the handler. Malformed or invalid messages are
// logged and dropped; handler errors are logged and the loop continues.
func (b *InteractionBus) Consume(ctx context.Context, handler func(context.Context, models.InteractionEvent)) {
	b.logger.Info("Interaction event consumer started")

	for {
		message, err := b.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			b.logger.WithError(err).Warn("Failed to read interaction message")
			continue
		}

		result, err := b.schema.Validate(gojsonschema.NewBytesLoader(message.Value))
		if err != nil {
			b.logger.WithError(err).Warn("Dropping unparseable interaction event")
			continue
		}
		if !result.Valid() {
			b.logger.WithField("errors", result.Errors()).Warn("Dropping invalid interaction event")
			continue
		}

		var event models.InteractionEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			b.logger.WithError(err).Warn("Dropping undecodable interaction event")
			continue
		}

		handler(ctx, event)
	}
}

func (b *InteractionBus) Close() error {
	var errs []error
	if err := b.writer.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := b.reader.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing interaction bus: %v", errs)
	}
	return nil
}
