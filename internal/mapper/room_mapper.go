package mapper

import (
	"time"

	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/model"
)

type RoomMapper struct{}

func NewRoomMapper() *RoomMapper {
	return &RoomMapper{}
}

func (m *RoomMapper) ToEntity(r *model.Room) *entity.Room {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Room{
		Id:          r.Id,
		Name:        r.Name,
		Status:      entity.RoomStatus(r.Status),
		Image:       r.Image,
		HotelId:     r.HotelId,
		Reservation: m.reservationToEntity(r.Reservation),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *RoomMapper) ToModel(r *entity.Room) *model.Room {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	// Reservation is read-only from the room side, never written through it
	return &model.Room{
		Id:        r.Id,
		Name:      r.Name,
		Status:    string(r.Status),
		Image:     r.Image,
		HotelId:   r.HotelId,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *RoomMapper) ToEntities(rooms []*model.Room) []*entity.Room {
	entities := make([]*entity.Room, len(rooms))
	for i, r := range rooms {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *RoomMapper) reservationToEntity(r *model.Reservation) *entity.Reservation {
	if r == nil {
		return nil
	}
	return &entity.Reservation{
		Id:        r.Id,
		RoomId:    r.RoomId,
		GuestName: r.GuestName,
		CheckIn:   r.CheckIn,
		CheckOut:  r.CheckOut,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
