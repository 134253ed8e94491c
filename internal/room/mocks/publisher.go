package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tair/gift-rooms/kafka"
)

// EventPublisher is a mock of the room event publisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishParticipantJoined(ctx context.Context, event kafka.ParticipantJoinedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventPublisher) PublishParticipantRemoved(ctx context.Context, event kafka.ParticipantRemovedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventPublisher) PublishRoomClosed(ctx context.Context, event kafka.RoomClosedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
