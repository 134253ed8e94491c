package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/gift-rooms/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	now      func() time.Time
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer builds a publisher around an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer, now: time.Now}
}

// PublishParticipantJoined publishes a participant joined event
func (p *Publisher) PublishParticipantJoined(ctx context.Context, event ParticipantJoinedEvent) error {
	event.EventID = uuid.NewString()
	event.EventType = EventTypeParticipantJoined
	event.Timestamp = p.now().UTC()

	return p.publish(ctx, event.EventType, event.EventID, event.RoomID, event,
		attribute.Int64("user.id", int64(event.UserID)))
}

// PublishParticipantRemoved publishes a participant removed event
func (p *Publisher) PublishParticipantRemoved(ctx context.Context, event ParticipantRemovedEvent) error {
	event.EventID = uuid.NewString()
	event.EventType = EventTypeParticipantRemoved
	event.Timestamp = p.now().UTC()

	return p.publish(ctx, event.EventType, event.EventID, event.RoomID, event,
		attribute.Int64("user.id", int64(event.UserID)),
		attribute.Int64("admin.id", int64(event.AdminID)))
}

// PublishRoomClosed publishes a room closed event
func (p *Publisher) PublishRoomClosed(ctx context.Context, event RoomClosedEvent) error {
	event.EventID = uuid.NewString()
	event.EventType = EventTypeRoomClosed
	event.Timestamp = p.now().UTC()

	return p.publish(ctx, event.EventType, event.EventID, event.RoomID, event)
}

func (p *Publisher) publish(ctx context.Context, eventType, eventID string, roomID uint, event any, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicRoomEvents),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
			attribute.Int64("room.id", int64(roomID)),
		),
	)
	defer span.End()
	span.SetAttributes(attrs...)

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   TopicRoomEvents,
		Key:     sarama.StringEncoder(fmt.Sprintf("room_%d", roomID)),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).
			Err(err).
			Str("topic", TopicRoomEvents).
			Str("event_type", eventType).
			Uint("room_id", roomID).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Info(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Int32("partition", partition).
		Int64("offset", offset).
		Uint("room_id", roomID).
		Msg("Room event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
