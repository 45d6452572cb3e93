package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/pkg/imagestore"
	"hotel-rooms-be/internal/repository/contract"
	"hotel-rooms-be/internal/repository/specification"
	"hotel-rooms-be/internal/repository/unitofwork"
	pkgEvents "hotel-rooms-be/pkg/events"
)

// fakeDB is a tiny transactional room table. Writes made inside a unit of
// work only land on Commit.
type fakeDB struct {
	mu     sync.Mutex
	rooms  map[uint]*entity.Room
	nextId uint

	writeErr  error
	commitErr error
	readErr   error
	commits   int
}

func newFakeDB(rooms ...*entity.Room) *fakeDB {
	db := &fakeDB{rooms: map[uint]*entity.Room{}, nextId: 1}
	for _, r := range rooms {
		db.rooms[r.Id] = cloneRoom(r)
		if r.Id >= db.nextId {
			db.nextId = r.Id + 1
		}
	}
	return db
}

func (db *fakeDB) get(id uint) *entity.Room {
	db.mu.Lock()
	defer db.mu.Unlock()
	if r, ok := db.rooms[id]; ok {
		return cloneRoom(r)
	}
	return nil
}

func (db *fakeDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{db: db}
}

func cloneRoom(r *entity.Room) *entity.Room {
	c := *r
	return &c
}

type fakeUoW struct {
	db      *fakeDB
	inTx    bool
	pending []func()
}

func (u *fakeUoW) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUoW) Commit() error {
	if !u.inTx {
		return errors.New("no transaction")
	}
	if u.db.commitErr != nil {
		return u.db.commitErr
	}
	u.db.mu.Lock()
	for _, apply := range u.pending {
		apply()
	}
	u.db.commits++
	u.db.mu.Unlock()
	u.pending = nil
	u.inTx = false
	return nil
}

func (u *fakeUoW) Rollback() error {
	u.pending = nil
	u.inTx = false
	return nil
}

func (u *fakeUoW) RoomRepository() contract.RoomRepository {
	return &fakeRoomRepo{uow: u}
}

type fakeRoomRepo struct {
	uow *fakeUoW
}

func (r *fakeRoomRepo) write(apply func()) {
	if r.uow.inTx {
		r.uow.pending = append(r.uow.pending, apply)
		return
	}
	r.uow.db.mu.Lock()
	apply()
	r.uow.db.mu.Unlock()
}

func (r *fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	db := r.uow.db
	if db.writeErr != nil {
		return db.writeErr
	}
	db.mu.Lock()
	room.Id = db.nextId
	db.nextId++
	db.mu.Unlock()

	row := cloneRoom(room)
	r.write(func() { db.rooms[row.Id] = row })
	return nil
}

func (r *fakeRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	db := r.uow.db
	if db.writeErr != nil {
		return db.writeErr
	}
	row := cloneRoom(room)
	r.write(func() { db.rooms[row.Id] = row })
	return nil
}

func (r *fakeRoomRepo) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.uow.db
	if db.writeErr != nil {
		return 0, db.writeErr
	}
	if db.get(id) == nil {
		return 0, nil
	}
	r.write(func() { delete(db.rooms, id) })
	return 1, nil
}

func (r *fakeRoomRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error) {
	rooms, err := r.FindAll(ctx, specs...)
	if err != nil || len(rooms) == 0 {
		return nil, err
	}
	return rooms[0], nil
}

// FindAll understands the filters the service uses; everything else passes.
func (r *fakeRoomRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error) {
	db := r.uow.db
	if db.readErr != nil {
		return nil, db.readErr
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var res []*entity.Room
	for _, room := range db.rooms {
		if matchesAll(room, specs) {
			res = append(res, cloneRoom(room))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

func matchesAll(room *entity.Room, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if room.Id != s.ID {
				return false
			}
		case specification.WithImage:
			if room.Image == "" {
				return false
			}
		case specification.ByStatus:
			if string(room.Status) != s.Status {
				return false
			}
		case specification.ByHotelID:
			if room.HotelId == nil || *room.HotelId != s.HotelID {
				return false
			}
		}
	}
	return true
}

type recordedEvent struct {
	eventType string
	roomId    uint
	changed   []string
}

type fakeRoomEvents struct {
	events []recordedEvent
}

func (f *fakeRoomEvents) PublishRoomCreated(ctx context.Context, room *entity.Room) {
	f.events = append(f.events, recordedEvent{eventType: pkgEvents.RoomCreated, roomId: room.Id})
}

func (f *fakeRoomEvents) PublishRoomUpdated(ctx context.Context, room *entity.Room, changed []string) {
	f.events = append(f.events, recordedEvent{eventType: pkgEvents.RoomUpdated, roomId: room.Id, changed: changed})
}

func (f *fakeRoomEvents) PublishRoomDeleted(ctx context.Context, roomId uint) {
	f.events = append(f.events, recordedEvent{eventType: pkgEvents.RoomDeleted, roomId: roomId})
}

type fakeQueue struct {
	payloads [][]byte
}

func (q *fakeQueue) Publish(ctx context.Context, payload []byte) error {
	q.payloads = append(q.payloads, payload)
	return nil
}

// brokenRemoveStore wraps a real store but refuses to delete promoted files.
type brokenRemoveStore struct {
	imagestore.Store
}

func (s brokenRemoveStore) Remove(ctx context.Context, name string) error {
	return errors.New("permission denied")
}
