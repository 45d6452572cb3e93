package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hotel-rooms-be/internal/dto"
	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/pkg/apperror"
	"hotel-rooms-be/internal/pkg/imagestore"
	"hotel-rooms-be/internal/pkg/logger"
	"hotel-rooms-be/internal/repository/contract"
	"hotel-rooms-be/internal/repository/specification"
	"hotel-rooms-be/internal/repository/unitofwork"
	"hotel-rooms-be/pkg/database"
	roomEvents "hotel-rooms-be/pkg/hotel/events"
)

type IRoomService interface {
	FindAll(ctx context.Context) ([]*dto.RoomResponse, error)
	FindAllWithImages(ctx context.Context) ([]*dto.RoomResponse, error)
	FindAllByHotel(ctx context.Context, hotelId uint) ([]*dto.RoomResponse, error)
	FindOne(ctx context.Context, id uint) (*dto.RoomResponse, error)
	FindByName(ctx context.Context, name string) ([]*dto.RoomResponse, error)
	FindByStatus(ctx context.Context, status string) ([]*dto.RoomResponse, error)
	FindReservations(ctx context.Context, id uint) (*dto.RoomResponse, error)
	FindRoomsByAdmin(ctx context.Context, adminId uint) ([]*dto.RoomResponse, error)

	// Create and Update take an optional image. The image is only visible
	// under its final name once the row referencing it is committed.
	Create(ctx context.Context, req *dto.CreateRoomRequest, image *imagestore.Upload) (*dto.RoomResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateRoomRequest, image *imagestore.Upload) (*dto.RoomResponse, error)
	Remove(ctx context.Context, id uint) error
}

type roomService struct {
	uowFactory   unitofwork.RepositoryFactory
	imageStore   imagestore.Store
	events       roomEvents.Publisher
	cleanupQueue IPublisherService
	logger       logger.ILogger
}

func NewRoomService(
	uowFactory unitofwork.RepositoryFactory,
	imageStore imagestore.Store,
	events roomEvents.Publisher,
	cleanupQueue IPublisherService,
	logger logger.ILogger,
) IRoomService {
	return &roomService{
		uowFactory:   uowFactory,
		imageStore:   imageStore,
		events:       events,
		cleanupQueue: cleanupQueue,
		logger:       logger,
	}
}

var byRoomId = specification.OrderBy{Field: "rooms.id"}

func (s *roomService) FindAll(ctx context.Context) ([]*dto.RoomResponse, error) {
	return s.findMany(ctx, "No rooms found", byRoomId)
}

func (s *roomService) FindAllWithImages(ctx context.Context) ([]*dto.RoomResponse, error) {
	return s.findMany(ctx, "No rooms with images found", specification.WithImage{}, byRoomId)
}

func (s *roomService) FindAllByHotel(ctx context.Context, hotelId uint) ([]*dto.RoomResponse, error) {
	return s.findMany(ctx, "No rooms found for this hotel", specification.ByHotelID{HotelID: hotelId}, byRoomId)
}

func (s *roomService) FindByName(ctx context.Context, name string) ([]*dto.RoomResponse, error) {
	return s.findMany(ctx, "No rooms found with this name", specification.NameContains{Name: name}, byRoomId)
}

func (s *roomService) FindByStatus(ctx context.Context, status string) ([]*dto.RoomResponse, error) {
	return s.findMany(ctx, "No rooms found with this status", specification.ByStatus{Status: status}, byRoomId)
}

func (s *roomService) FindRoomsByAdmin(ctx context.Context, adminId uint) ([]*dto.RoomResponse, error) {
	return s.findMany(ctx, "No rooms found for this admin", specification.ManagedByAdmin{AdminID: adminId}, byRoomId)
}

func (s *roomService) FindOne(ctx context.Context, id uint) (*dto.RoomResponse, error) {
	return s.findOne(ctx, specification.ByID{ID: id})
}

func (s *roomService) FindReservations(ctx context.Context, id uint) (*dto.RoomResponse, error) {
	return s.findOne(ctx, specification.ByID{ID: id}, specification.WithReservation{})
}

func (s *roomService) findMany(ctx context.Context, notFoundMessage string, specs ...specification.Specification) ([]*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rooms, err := uow.RoomRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("Failed to load rooms", err)
	}
	if len(rooms) == 0 {
		return nil, apperror.NotFound(notFoundMessage)
	}

	res := make([]*dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		res = append(res, toRoomResponse(room))
	}
	return res, nil
}

func (s *roomService) findOne(ctx context.Context, specs ...specification.Specification) (*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := uow.RoomRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("Failed to load room", err)
	}
	if room == nil {
		return nil, apperror.NotFound("Room not found")
	}
	return toRoomResponse(room), nil
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest, image *imagestore.Upload) (*dto.RoomResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.BadRequest("Room name is required")
	}

	status := entity.RoomStatus(req.Status)
	if status == "" {
		status = entity.RoomStatusAvailable
	}
	if !status.IsValid() {
		return nil, apperror.BadRequest(invalidStatusMessage)
	}

	room := &entity.Room{
		Name:      name,
		Status:    status,
		HotelId:   req.HotelId,
		CreatedAt: time.Now(),
	}

	staged, err := s.stageImage(ctx, image)
	if err != nil {
		return nil, err
	}
	room.Image = staged

	err = s.commitWithImage(ctx, staged, func(repo contract.RoomRepository) error {
		return repo.Create(ctx, room)
	})
	if err != nil {
		return nil, s.writeError(err)
	}

	s.logger.Info("ROOM", "Room created", map[string]interface{}{
		"room_id": room.Id,
		"image":   room.Image,
	})
	s.events.PublishRoomCreated(ctx, room)

	return toRoomResponse(room), nil
}

func (s *roomService) Update(ctx context.Context, id uint, req *dto.UpdateRoomRequest, image *imagestore.Upload) (*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("Failed to load room", err)
	}
	if room == nil {
		return nil, apperror.NotFound("Room not found")
	}

	changed, err := applyRoomPatch(room, req)
	if err != nil {
		return nil, err
	}

	staged, err := s.stageImage(ctx, image)
	if err != nil {
		return nil, err
	}

	oldImage := room.Image
	if staged != "" {
		room.Image = staged
		changed = append(changed, "image")
	}
	now := time.Now()
	room.UpdatedAt = &now

	err = s.commitWithImage(ctx, staged, func(repo contract.RoomRepository) error {
		return repo.Update(ctx, room)
	})
	if err != nil {
		return nil, s.writeError(err)
	}

	if staged != "" && oldImage != "" && oldImage != staged {
		s.removeImage(ctx, room.Id, oldImage)
	}

	s.logger.Info("ROOM", "Room updated", map[string]interface{}{
		"room_id": room.Id,
		"changed": changed,
	})
	s.events.PublishRoomUpdated(ctx, room, changed)

	return toRoomResponse(room), nil
}

func (s *roomService) Remove(ctx context.Context, id uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.Internal("Failed to load room", err)
	}
	if room == nil {
		return apperror.NotFound("Room not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("Failed to delete room", err)
	}
	defer uow.Rollback()

	affected, err := uow.RoomRepository().Delete(ctx, id)
	if err != nil {
		return apperror.Internal("Failed to delete room", err)
	}
	if affected == 0 {
		return apperror.NotFound("Room not found")
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal("Failed to delete room", err)
	}

	if room.HasImage() {
		s.removeImage(ctx, id, room.Image)
	}

	s.logger.Info("ROOM", "Room deleted", map[string]interface{}{"room_id": id})
	s.events.PublishRoomDeleted(ctx, id)

	return nil
}

const invalidStatusMessage = "Status must be one of available, occupied, maintenance"

// applyRoomPatch copies the non-nil fields of req onto room and returns the
// names of the fields it touched.
func applyRoomPatch(room *entity.Room, req *dto.UpdateRoomRequest) ([]string, error) {
	changed := make([]string, 0, 4)

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.BadRequest("Room name cannot be empty")
		}
		room.Name = name
		changed = append(changed, "name")
	}

	if req.Status != nil {
		status := entity.RoomStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperror.BadRequest(invalidStatusMessage)
		}
		room.Status = status
		changed = append(changed, "status")
	}

	if req.HotelId != nil {
		hotelId := *req.HotelId
		room.HotelId = &hotelId
		changed = append(changed, "hotel_id")
	}

	return changed, nil
}

// stageImage returns "" when there is nothing to upload.
func (s *roomService) stageImage(ctx context.Context, image *imagestore.Upload) (string, error) {
	if image == nil {
		return "", nil
	}
	name, err := s.imageStore.Stage(ctx, image)
	if err != nil {
		return "", apperror.Internal("Failed to store image", err)
	}
	return name, nil
}

// commitWithImage runs write in a transaction and promotes the staged image
// right before committing. On any failure neither the row change nor the
// file survives.
func (s *roomService) commitWithImage(ctx context.Context, staged string, write func(repo contract.RoomRepository) error) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.discardStaged(ctx, staged)
		return err
	}
	defer uow.Rollback()

	if err := write(uow.RoomRepository()); err != nil {
		s.discardStaged(ctx, staged)
		return err
	}

	if staged != "" {
		if err := s.imageStore.Promote(ctx, staged); err != nil {
			s.discardStaged(ctx, staged)
			return fmt.Errorf("promote image: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		if staged != "" {
			s.removeImage(ctx, 0, staged)
		}
		return err
	}
	return nil
}

func (s *roomService) discardStaged(ctx context.Context, staged string) {
	if staged == "" {
		return
	}
	if err := s.imageStore.Discard(ctx, staged); err != nil {
		s.logger.Warn("ROOM", "Failed to discard staged image", map[string]interface{}{
			"image": staged,
			"error": err.Error(),
		})
	}
}

// removeImage deletes a committed image. Failures are handed to the cleanup
// queue and never reach the caller.
func (s *roomService) removeImage(ctx context.Context, roomId uint, name string) {
	err := s.imageStore.Remove(ctx, name)
	if err == nil {
		return
	}

	details := map[string]interface{}{
		"room_id": roomId,
		"image":   name,
		"error":   err.Error(),
	}
	s.logger.Warn("ROOM", "Failed to remove image, queued for cleanup", details)

	if s.cleanupQueue == nil {
		return
	}
	payload, _ := json.Marshal(dto.RoomImageCleanupMessage{RoomId: roomId, Image: name})
	if err := s.cleanupQueue.Publish(ctx, payload); err != nil {
		details["queue_error"] = err.Error()
		s.logger.Error("ROOM", "Failed to queue image cleanup", details)
	}
}

func (s *roomService) writeError(err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	if database.IsForeignKeyViolation(err) {
		return apperror.BadRequestWrap("Hotel does not exist", err)
	}
	return apperror.Internal("Failed to save room", err)
}

func toRoomResponse(room *entity.Room) *dto.RoomResponse {
	res := &dto.RoomResponse{
		Id:        room.Id,
		Name:      room.Name,
		Status:    string(room.Status),
		Image:     room.Image,
		HotelId:   room.HotelId,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
	if r := room.Reservation; r != nil {
		res.Reservation = &dto.ReservationResponse{
			Id:        r.Id,
			GuestName: r.GuestName,
			CheckIn:   r.CheckIn,
			CheckOut:  r.CheckOut,
			Status:    r.Status,
		}
	}
	return res
}
