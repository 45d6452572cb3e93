package events

import "time"

const (
	RoomCreated = "ROOM_CREATED"
	RoomUpdated = "ROOM_UPDATED"
	RoomDeleted = "ROOM_DELETED"
)

// Event is anything that can be put on the bus.
type Event interface {
	// EventType is the subject suffix, e.g. "ROOM_CREATED".
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
