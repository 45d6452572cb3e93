package entity

import "time"

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

type Room struct {
	Id          uint
	Name        string
	Status      RoomStatus
	Image       string // filename in the image store, empty when none
	HotelId     *uint
	Reservation *Reservation // only populated by reservation lookups
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (r *Room) HasImage() bool {
	return r.Image != ""
}

type Reservation struct {
	Id        uint
	RoomId    uint
	GuestName string
	CheckIn   time.Time
	CheckOut  time.Time
	Status    string
	CreatedAt time.Time
}
