package http

import (
	"time"

	"github.com/tair/gift-rooms/internal/room/domain"
	"github.com/tair/gift-rooms/internal/room/usecase/command"
)

type participantRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	DeliveryInfo string `json:"deliveryInfo"`
}

func (p participantRequest) toDetails() command.ParticipantDetails {
	return command.ParticipantDetails{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		Email:        p.Email,
		DeliveryInfo: p.DeliveryInfo,
	}
}

type createRoomRequest struct {
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	GiftExchangeDate  *time.Time         `json:"giftExchangeDate"`
	GiftMaximumBudget uint               `json:"giftMaximumBudget"`
	AdminUser         participantRequest `json:"adminUser"`
}

// UserResponse is a participant as seen by another member of the room.
// Personal fields are omitted when the viewer may not see them.
type UserResponse struct {
	ID           uint      `json:"id"`
	RoomID       uint      `json:"roomId"`
	IsAdmin      bool      `json:"isAdmin"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	UserCode     string    `json:"userCode,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	DeliveryInfo string    `json:"deliveryInfo,omitempty"`
	CreatedOn    time.Time `json:"createdOn"`
	ModifiedOn   time.Time `json:"modifiedOn"`
}

// RoomResponse is the room as seen by one of its members
type RoomResponse struct {
	ID                uint       `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	InvitationCode    string     `json:"invitationCode"`
	GiftExchangeDate  *time.Time `json:"giftExchangeDate"`
	GiftMaximumBudget uint       `json:"giftMaximumBudget"`
	ClosedOn          *time.Time `json:"closedOn"`
	IsClosed          bool       `json:"isClosed"`
	CreatedOn         time.Time  `json:"createdOn"`
	ModifiedOn        time.Time  `json:"modifiedOn"`
}

// CreateRoomResponse carries the codes the admin needs to manage the room
type CreateRoomResponse struct {
	Room           RoomResponse `json:"room"`
	AdminID        uint         `json:"adminId"`
	UserCode       string       `json:"userCode"`
	InvitationCode string       `json:"invitationCode"`
}

// toUserResponse applies the room visibility rules: the admin and the user
// themself see everything, everyone else sees only the admin's contacts.
func toUserResponse(user, viewer domain.User) UserResponse {
	resp := UserResponse{
		ID:         user.ID,
		RoomID:     user.RoomID,
		IsAdmin:    user.IsAdmin,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		CreatedOn:  user.CreatedOn,
		ModifiedOn: user.ModifiedOn,
	}

	switch {
	case viewer.IsAdmin || viewer.ID == user.ID:
		resp.UserCode = user.AuthCode
		resp.Phone = user.Phone
		resp.Email = user.Email
		resp.DeliveryInfo = user.DeliveryInfo
	case user.IsAdmin:
		resp.Phone = user.Phone
		resp.Email = user.Email
	}

	return resp
}

func toUserResponses(users []domain.User, viewer domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user, viewer))
	}
	return responses
}

func toRoomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:                room.ID,
		Name:              room.Name,
		Description:       room.Description,
		InvitationCode:    room.InvitationCode,
		GiftExchangeDate:  room.GiftExchangeDate,
		GiftMaximumBudget: room.GiftMaximumBudget,
		ClosedOn:          room.ClosedOn,
		IsClosed:          room.IsClosed(),
		CreatedOn:         room.CreatedOn,
		ModifiedOn:        room.ModifiedOn,
	}
}
