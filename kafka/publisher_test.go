package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)

	publisher := NewPublisherWithProducer(producer)
	publisher.now = func() time.Time { return time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC) }
	return publisher, producer
}

func TestPublisher_ParticipantRemoved(t *testing.T) {
	publisher, producer := newTestPublisher(t)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, TopicRoomEvents, msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "room_7", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var event ParticipantRemovedEvent
		require.NoError(t, json.Unmarshal(value, &event))
		assert.Equal(t, EventTypeParticipantRemoved, event.EventType)
		assert.NotEmpty(t, event.EventID)
		assert.Equal(t, uint(7), event.RoomID)
		assert.Equal(t, uint(3), event.UserID)
		assert.Equal(t, uint(1), event.AdminID)
		assert.Equal(t, 2026, event.Timestamp.Year())

		headers := map[string]string{}
		for _, header := range msg.Headers {
			headers[string(header.Key)] = string(header.Value)
		}
		assert.Equal(t, EventTypeParticipantRemoved, headers["event_type"])
		assert.Equal(t, event.EventID, headers["event_id"])
		return nil
	})

	err := publisher.PublishParticipantRemoved(context.Background(), ParticipantRemovedEvent{RoomID: 7, UserID: 3, AdminID: 1})

	assert.NoError(t, err)
	assert.NoError(t, publisher.Close())
}

func TestPublisher_ParticipantJoined(t *testing.T) {
	publisher, producer := newTestPublisher(t)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var event ParticipantJoinedEvent
		require.NoError(t, json.Unmarshal(value, &event))
		assert.Equal(t, EventTypeParticipantJoined, event.EventType)
		assert.Equal(t, "Ann", event.FirstName)
		return nil
	})

	err := publisher.PublishParticipantJoined(context.Background(), ParticipantJoinedEvent{RoomID: 2, UserID: 9, FirstName: "Ann", LastName: "Lee"})

	assert.NoError(t, err)
	assert.NoError(t, publisher.Close())
}

func TestPublisher_SendFailure(t *testing.T) {
	publisher, producer := newTestPublisher(t)
	producer.ExpectSendMessageAndFail(errors.New("broker unavailable"))

	err := publisher.PublishRoomClosed(context.Background(), RoomClosedEvent{RoomID: 4, ClosedOn: time.Now()})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
	assert.NoError(t, publisher.Close())
}
