package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/gift-rooms/internal/room/domain"
	"github.com/tair/gift-rooms/internal/room/usecase/command"
	"github.com/tair/gift-rooms/internal/room/usecase/query"
	"github.com/tair/gift-rooms/kafka"
	"github.com/tair/gift-rooms/pkg/logger"
)

// EventPublisher publishes room events after successful commands
type EventPublisher interface {
	PublishParticipantJoined(ctx context.Context, event kafka.ParticipantJoinedEvent) error
	PublishParticipantRemoved(ctx context.Context, event kafka.ParticipantRemovedEvent) error
	PublishRoomClosed(ctx context.Context, event kafka.RoomClosedEvent) error
}

// RoomHandler handles HTTP requests for rooms and participants using CQRS pattern
type RoomHandler struct {
	// Command handlers
	createRoomHandler *command.CreateRoomHandler
	joinRoomHandler   *command.JoinRoomHandler
	closeRoomHandler  *command.CloseRoomHandler
	deleteUserHandler *command.DeleteUserHandler

	// Query handlers
	getUsersHandler *query.GetUsersHandler
	getUserHandler  *query.GetUserHandler
	getRoomHandler  *query.GetRoomHandler

	cache     domain.ParticipantCache
	publisher EventPublisher
	limiter   *RateLimiter
	metrics   *Metrics
}

// Commands groups the command handlers used by RoomHandler
type Commands struct {
	CreateRoom *command.CreateRoomHandler
	JoinRoom   *command.JoinRoomHandler
	CloseRoom  *command.CloseRoomHandler
	DeleteUser *command.DeleteUserHandler
}

// Queries groups the query handlers used by RoomHandler
type Queries struct {
	GetUsers *query.GetUsersHandler
	GetUser  *query.GetUserHandler
	GetRoom  *query.GetRoomHandler
}

// NewRoomHandler creates a new room handler. cache, publisher and limiter may be nil.
func NewRoomHandler(
	commands *Commands,
	queries *Queries,
	cache domain.ParticipantCache,
	publisher EventPublisher,
	limiter *RateLimiter,
	metrics *Metrics,
) *RoomHandler {
	return &RoomHandler{
		createRoomHandler: commands.CreateRoom,
		joinRoomHandler:   commands.JoinRoom,
		closeRoomHandler:  commands.CloseRoom,
		deleteUserHandler: commands.DeleteUser,
		getUsersHandler:   queries.GetUsers,
		getUserHandler:    queries.GetUser,
		getRoomHandler:    queries.GetRoom,
		cache:             cache,
		publisher:         publisher,
		limiter:           limiter,
		metrics:           metrics,
	}
}

// RegisterRoutes registers all room routes
func (h *RoomHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.Handle("/rooms", h.mutating("create_room", h.CreateRoom)).Methods(http.MethodPost)
	api.Handle("/rooms", h.metrics.instrument("get_room", http.HandlerFunc(h.GetRoom))).Methods(http.MethodGet)
	api.Handle("/rooms/close", h.mutating("close_room", h.CloseRoom)).Methods(http.MethodPost)

	api.Handle("/users", h.mutating("join_room", h.JoinRoom)).Methods(http.MethodPost)
	api.Handle("/users", h.metrics.instrument("get_users", http.HandlerFunc(h.GetUsers))).Methods(http.MethodGet)
	api.Handle("/users/{id}", h.metrics.instrument("get_user", http.HandlerFunc(h.GetUser))).Methods(http.MethodGet)
	api.Handle("/users/{id}", h.mutating("delete_user", h.DeleteUser)).Methods(http.MethodDelete)
}

// mutating applies the rate limit to state-changing routes
func (h *RoomHandler) mutating(endpoint string, next http.HandlerFunc) http.Handler {
	var handler http.Handler = next
	if h.limiter != nil {
		handler = h.limiter.Middleware(handler)
	}
	return h.metrics.instrument(endpoint, handler)
}

// CreateRoom handles POST /api/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, admin, err := h.createRoomHandler.Handle(ctx, command.CreateRoomCommand{
		Name:              req.Name,
		Description:       req.Description,
		GiftExchangeDate:  req.GiftExchangeDate,
		GiftMaximumBudget: req.GiftMaximumBudget,
		Admin:             req.AdminUser.toDetails(),
	})
	if err != nil {
		h.respondCommandError(ctx, w, err, "Failed to create room")
		return
	}

	logger.Info(ctx).Uint("room_id", room.ID).Uint("admin_id", admin.ID).Msg("Room created")

	respondJSON(w, http.StatusCreated, CreateRoomResponse{
		Room:           toRoomResponse(room),
		AdminID:        admin.ID,
		UserCode:       admin.AuthCode,
		InvitationCode: room.InvitationCode,
	})
}

// GetRoom handles GET /api/rooms?userCode=
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	room, err := h.getRoomHandler.Handle(ctx, query.GetRoomQuery{UserCode: userCodeParam(r)})
	if err != nil {
		h.respondQueryError(ctx, w, err, "Failed to get room")
		return
	}

	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

// CloseRoom handles POST /api/rooms/close?userCode=
func (h *RoomHandler) CloseRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	room, err := h.closeRoomHandler.Handle(ctx, command.CloseRoomCommand{AdminUserCode: userCodeParam(r)})
	if err != nil {
		h.respondCommandError(ctx, w, err, "Failed to close room")
		return
	}

	logger.Info(ctx).Uint("room_id", room.ID).Msg("Room closed")

	if h.publisher != nil {
		if err := h.publisher.PublishRoomClosed(ctx, kafka.RoomClosedEvent{RoomID: room.ID, ClosedOn: *room.ClosedOn}); err != nil {
			logger.Error(ctx).Err(err).Uint("room_id", room.ID).Msg("Failed to publish room closed event")
		}
	}

	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

// JoinRoom handles POST /api/users?roomCode=
func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.joinRoomHandler.Handle(ctx, command.JoinRoomCommand{
		RoomCode:    strings.TrimSpace(r.URL.Query().Get("roomCode")),
		Participant: req.toDetails(),
	})
	if err != nil {
		h.respondCommandError(ctx, w, err, "Failed to join room")
		return
	}

	logger.Info(ctx).Uint("room_id", user.RoomID).Uint("user_id", user.ID).Msg("Participant joined room")

	h.invalidateParticipants(ctx, user.RoomID)
	if h.publisher != nil {
		event := kafka.ParticipantJoinedEvent{
			RoomID:    user.RoomID,
			UserID:    user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		}
		if err := h.publisher.PublishParticipantJoined(ctx, event); err != nil {
			logger.Error(ctx).Err(err).Uint("user_id", user.ID).Msg("Failed to publish participant joined event")
		}
	}

	respondJSON(w, http.StatusCreated, toUserResponse(*user, *user))
}

// GetUsers handles GET /api/users?userCode=
func (h *RoomHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	participants, err := h.getUsersHandler.Handle(ctx, query.GetUsersQuery{UserCode: userCodeParam(r)})
	if err != nil {
		h.respondQueryError(ctx, w, err, "Failed to get users")
		return
	}

	respondJSON(w, http.StatusOK, toUserResponses(participants.Users, participants.Viewer))
}

// GetUser handles GET /api/users/{id}?userCode=
func (h *RoomHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, viewer, err := h.getUserHandler.Handle(ctx, query.GetUserQuery{UserCode: userCodeParam(r), ID: id})
	if err != nil {
		h.respondQueryError(ctx, w, err, "Failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(*user, *viewer))
}

// DeleteUser handles DELETE /api/users/{id}?userCode=
func (h *RoomHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	adminCode := userCodeParam(r)
	if adminCode == "" {
		respondError(w, http.StatusBadRequest, "userCode query parameter is required")
		return
	}

	result, err := h.deleteUserHandler.Handle(ctx, command.DeleteUserCommand{UserID: id, AdminUserCode: adminCode})
	if errors.Is(err, command.ErrInvalidCommand) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.metrics.recordDeletion(result, err)
	if err != nil {
		logger.Error(ctx).Err(err).Uint("user_id", id).Msg("Failed to delete user")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := StatusForDeleteResult(result)
	if !result.Success {
		logger.Warn(ctx).
			Uint("user_id", id).
			Str("error_code", string(result.ErrorCode)).
			Int("status", status).
			Msg("User deletion rejected")
		respondError(w, status, MessageForDeleteResult(result))
		return
	}

	logger.Info(ctx).Uint("user_id", id).Uint("room_id", result.RoomID).Msg("User deleted")

	h.invalidateParticipants(ctx, result.RoomID)
	if h.publisher != nil {
		event := kafka.ParticipantRemovedEvent{RoomID: result.RoomID, UserID: id, AdminID: result.AdminID}
		if err := h.publisher.PublishParticipantRemoved(ctx, event); err != nil {
			logger.Error(ctx).Err(err).Uint("user_id", id).Msg("Failed to publish participant removed event")
		}
	}

	w.WriteHeader(status)
}

// invalidateParticipants bumps the room's cache version. A failure leaves the
// cached list stale until its TTL; single-user lookups never read the cache.
func (h *RoomHandler) invalidateParticipants(ctx context.Context, roomID uint) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx, roomID); err != nil {
		logger.Error(ctx).Err(err).Uint("room_id", roomID).Msg("Failed to invalidate participants cache")
	}
}

func (h *RoomHandler) respondCommandError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, command.ErrInvalidCommand):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrRoomNotFound):
		respondError(w, http.StatusNotFound, notFoundMessage(err))
	case errors.Is(err, domain.ErrNotAdmin):
		respondError(w, http.StatusForbidden, "User is not admin.")
	case errors.Is(err, domain.ErrRoomClosed):
		respondError(w, http.StatusConflict, "Room is already closed.")
	case errors.Is(err, domain.ErrRoomFull):
		respondError(w, http.StatusConflict, "Room is full.")
	default:
		logger.Error(ctx).Err(err).Msg(msg)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *RoomHandler) respondQueryError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, query.ErrInvalidQuery):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrRoomNotFound):
		respondError(w, http.StatusNotFound, notFoundMessage(err))
	default:
		logger.Error(ctx).Err(err).Msg(msg)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, domain.ErrRoomNotFound) {
		return "Room not found."
	}
	return "User not found."
}

func userCodeParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("userCode"))
}

func userIDParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Debug().Err(err).Int("status", status).Msg("Failed to write response body")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
