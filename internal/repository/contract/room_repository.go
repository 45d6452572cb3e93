package contract

import (
	"context"

	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/repository/specification"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, room *entity.Room) error
	// Delete returns the number of rows removed
	Delete(ctx context.Context, id uint) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error)
}
