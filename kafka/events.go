package kafka

import "time"

// ParticipantJoinedEvent is emitted after a user joins a room
type ParticipantJoinedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RoomID    uint      `json:"room_id"`
	UserID    uint      `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Timestamp time.Time `json:"timestamp"`
}

// ParticipantRemovedEvent is emitted after an admin deletes a user
type ParticipantRemovedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RoomID    uint      `json:"room_id"`
	UserID    uint      `json:"user_id"`
	AdminID   uint      `json:"admin_id"`
	Timestamp time.Time `json:"timestamp"`
}

// RoomClosedEvent is emitted when the admin closes a room
type RoomClosedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RoomID    uint      `json:"room_id"`
	ClosedOn  time.Time `json:"closed_on"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeParticipantJoined  = "participant.joined"
	EventTypeParticipantRemoved = "participant.removed"
	EventTypeRoomClosed         = "room.closed"
)

// Kafka topics. All room events share one topic keyed by room so they stay ordered per room.
const (
	TopicRoomEvents = "room-events"
)
