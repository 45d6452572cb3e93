package dto

import "time"

// CreateRoomRequest is bound from multipart form fields (or JSON).
type CreateRoomRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=255"`
	Status  string `json:"status" form:"status" validate:"omitempty,oneof=available occupied maintenance"`
	HotelId *uint  `json:"hotel_id" form:"hotel_id"`
}

// UpdateRoomRequest is a partial patch: nil fields are left untouched.
type UpdateRoomRequest struct {
	Name    *string `json:"name" form:"name" validate:"omitempty,max=255"`
	Status  *string `json:"status" form:"status" validate:"omitempty,oneof=available occupied maintenance"`
	HotelId *uint   `json:"hotel_id" form:"hotel_id"`
}

type RoomResponse struct {
	Id          uint                 `json:"id"`
	Name        string               `json:"name"`
	Status      string               `json:"status"`
	Image       string               `json:"image"`
	HotelId     *uint                `json:"hotel_id"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at"`
}

type ReservationResponse struct {
	Id        uint      `json:"id"`
	GuestName string    `json:"guest_name"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Status    string    `json:"status"`
}

// RoomImageCleanupMessage is queued when an obsolete image could not be
// removed right away.
type RoomImageCleanupMessage struct {
	RoomId uint   `json:"room_id"`
	Image  string `json:"image"`
}
