package events

import (
	"context"

	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/pkg/logger"
	pkgEvents "hotel-rooms-be/pkg/events"
)

// Bus is the transport the room publisher writes to; *nats.Publisher satisfies it.
type Bus interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// Publisher emits room lifecycle events. Publishing is fire-and-forget:
// failures are logged and never fail the request that caused them.
type Publisher interface {
	PublishRoomCreated(ctx context.Context, room *entity.Room)
	PublishRoomUpdated(ctx context.Context, room *entity.Room, changed []string)
	PublishRoomDeleted(ctx context.Context, roomId uint)
}

type BusPublisher struct {
	bus    Bus
	logger logger.ILogger
}

// NewBusPublisher accepts a nil bus, in which case every publish is a no-op.
func NewBusPublisher(bus Bus, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		bus:    bus,
		logger: logger,
	}
}

func roomPayload(room *entity.Room) map[string]interface{} {
	return map[string]interface{}{
		"room_id":  room.Id,
		"name":     room.Name,
		"status":   string(room.Status),
		"hotel_id": room.HotelId,
		"image":    room.Image,
	}
}

func (p *BusPublisher) PublishRoomCreated(ctx context.Context, room *entity.Room) {
	p.publish(ctx, pkgEvents.New(pkgEvents.RoomCreated, roomPayload(room)))
}

func (p *BusPublisher) PublishRoomUpdated(ctx context.Context, room *entity.Room, changed []string) {
	data := roomPayload(room)
	data["changed"] = changed
	p.publish(ctx, pkgEvents.New(pkgEvents.RoomUpdated, data))
}

func (p *BusPublisher) PublishRoomDeleted(ctx context.Context, roomId uint) {
	p.publish(ctx, pkgEvents.New(pkgEvents.RoomDeleted, map[string]interface{}{
		"room_id": roomId,
	}))
}

func (p *BusPublisher) publish(ctx context.Context, evt pkgEvents.BaseEvent) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(ctx, evt); err != nil {
		p.logger.Error("ROOM_EVENTS", "Failed to publish "+evt.Type+" event", map[string]interface{}{"error": err.Error()})
	}
}
