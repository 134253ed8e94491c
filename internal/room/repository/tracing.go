package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/gift-rooms/internal/room/domain"
)

var tracer = otel.Tracer("room-repository")

// TracingUserRepository wraps a UserRepository with tracing
type TracingUserRepository struct {
	next domain.UserRepository
}

// NewTracingUserRepository creates a new user repository with tracing
func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

// Create with tracing
func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.User.Create",
		trace.WithAttributes(attribute.Int("room.id", int(user.RoomID))),
	)
	defer span.End()

	err := r.next.Create(ctx, user)
	if err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return nil
}

// FindByID with tracing
func (r *TracingUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByID",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	defer span.End()

	user, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("room.id", int(user.RoomID)))
	return user, nil
}

// FindByCode with tracing. The code itself is a credential and is not recorded.
func (r *TracingUserRepository) FindByCode(ctx context.Context, code string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByCode")
	defer span.End()

	user, err := r.next.FindByCode(ctx, code)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("user.id", int(user.ID)),
		attribute.Int("room.id", int(user.RoomID)),
	)
	return user, nil
}

// FindByRoomID with tracing
func (r *TracingUserRepository) FindByRoomID(ctx context.Context, roomID uint) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByRoomID",
		trace.WithAttributes(attribute.Int("room.id", int(roomID))),
	)
	defer span.End()

	users, err := r.next.FindByRoomID(ctx, roomID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(users)))
	return users, nil
}

// CountByRoomID with tracing
func (r *TracingUserRepository) CountByRoomID(ctx context.Context, roomID uint) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.User.CountByRoomID",
		trace.WithAttributes(attribute.Int("room.id", int(roomID))),
	)
	defer span.End()

	count, err := r.next.CountByRoomID(ctx, roomID)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

// Delete with tracing
func (r *TracingUserRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.User.Delete",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// TracingRoomRepository wraps a RoomRepository with tracing
type TracingRoomRepository struct {
	next domain.RoomRepository
}

// NewTracingRoomRepository creates a new room repository with tracing
func NewTracingRoomRepository(next domain.RoomRepository) *TracingRoomRepository {
	return &TracingRoomRepository{next: next}
}

// Create with tracing
func (r *TracingRoomRepository) Create(ctx context.Context, room *domain.Room, admin *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Room.Create",
		trace.WithAttributes(attribute.String("room.name", room.Name)),
	)
	defer span.End()

	if err := r.next.Create(ctx, room, admin); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(
		attribute.Int("room.id", int(room.ID)),
		attribute.Int("admin.id", int(admin.ID)),
	)
	return nil
}

// FindByID with tracing
func (r *TracingRoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	ctx, span := tracer.Start(ctx, "repository.Room.FindByID",
		trace.WithAttributes(attribute.Int("room.id", int(id))),
	)
	defer span.End()

	room, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("room.closed", room.IsClosed()))
	return room, nil
}

// FindByInvitationCode with tracing
func (r *TracingRoomRepository) FindByInvitationCode(ctx context.Context, code string) (*domain.Room, error) {
	ctx, span := tracer.Start(ctx, "repository.Room.FindByInvitationCode")
	defer span.End()

	room, err := r.next.FindByInvitationCode(ctx, code)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("room.id", int(room.ID)))
	return room, nil
}

// FindByUserCode with tracing
func (r *TracingRoomRepository) FindByUserCode(ctx context.Context, userCode string) (*domain.Room, error) {
	ctx, span := tracer.Start(ctx, "repository.Room.FindByUserCode")
	defer span.End()

	room, err := r.next.FindByUserCode(ctx, userCode)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("room.id", int(room.ID)))
	return room, nil
}

// Update with tracing
func (r *TracingRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	ctx, span := tracer.Start(ctx, "repository.Room.Update",
		trace.WithAttributes(
			attribute.Int("room.id", int(room.ID)),
			attribute.Bool("room.closed", room.IsClosed()),
		),
	)
	defer span.End()

	if err := r.next.Update(ctx, room); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// recordError marks the span as failed. Not-found lookups are expected
// outcomes and only get an event.
func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrRoomNotFound) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
