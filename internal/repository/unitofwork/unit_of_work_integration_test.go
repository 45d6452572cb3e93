package unitofwork

import (
	"context"
	"log"
	"os"
	"testing"

	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/model"
	"hotel-rooms-be/internal/repository/specification"
	"hotel-rooms-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Runs against a real Postgres when DATABASE_URL is set, otherwise skipped.
func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Hotel{}, &model.AdminHotel{}, &model.Room{}, &model.Reservation{}))
	return db
}

func TestUnitOfWork_Integration(t *testing.T) {
	db := setupIntegrationDB(t)
	ctx := context.Background()
	factory := NewRepositoryFactory(db)

	// Unique names keep reruns independent
	name := "it-room-" + uuid.NewString()

	t.Run("rollback discards the insert", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))

		room := &entity.Room{Name: name, Status: entity.RoomStatusAvailable}
		require.NoError(t, uow.RoomRepository().Create(ctx, room))
		require.NotZero(t, room.Id)
		require.NoError(t, uow.Rollback())

		found, err := factory.NewUnitOfWork(ctx).RoomRepository().FindOne(ctx, specification.ByID{ID: room.Id})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("commit persists and delete removes", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))

		room := &entity.Room{Name: name, Status: entity.RoomStatusOccupied, Image: "it.png"}
		require.NoError(t, uow.RoomRepository().Create(ctx, room))
		require.NoError(t, uow.Commit())

		repo := factory.NewUnitOfWork(ctx).RoomRepository()
		rooms, err := repo.FindAll(ctx, specification.NameContains{Name: name}, specification.WithImage{})
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "it.png", rooms[0].Image)

		affected, err := repo.Delete(ctx, room.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("unknown hotel is a foreign key violation", func(t *testing.T) {
		missing := uint(2147483000)
		err := factory.NewUnitOfWork(ctx).RoomRepository().Create(ctx, &entity.Room{
			Name:    name,
			Status:  entity.RoomStatusAvailable,
			HotelId: &missing,
		})
		require.Error(t, err)
		assert.True(t, database.IsForeignKeyViolation(err))
	})
}
