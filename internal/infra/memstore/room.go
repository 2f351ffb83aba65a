package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"roomreserve/internal/domain/room"
	"roomreserve/internal/infra"
	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type roomRecord struct {
	id        uuid.UUID
	name      string
	capacity  int
	amenities []string
	state     room.State
	createdAt time.Time
}

type RoomStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]roomRecord
}

func NewRoomStore() *RoomStore {
	return &RoomStore{records: make(map[uuid.UUID]roomRecord)}
}

func (s *RoomStore) Create(_ context.Context, r *room.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[r.ID()]; ok {
		return infra.WrapRepoErr("room already exists", nil, infra.KindDuplicateKey)
	}
	s.records[r.ID()] = toRoomRecord(r)
	return nil
}

func (s *RoomStore) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return toRoomEntity(rec), nil
}

func (s *RoomStore) Save(_ context.Context, r *room.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[r.ID()]; !ok {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	s.records[r.ID()] = toRoomRecord(r)
	return nil
}

type RoomReads struct {
	store *RoomStore
}

func NewRoomReads(store *RoomStore) *RoomReads {
	return &RoomReads{store: store}
}

func (r *RoomReads) FindByID(_ context.Context, id uuid.UUID) (*queries.RoomView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return toRoomView(rec), nil
}

func (r *RoomReads) FindAll(_ context.Context) ([]*queries.RoomView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	views := make([]*queries.RoomView, 0, len(r.store.records))
	for _, rec := range r.store.records {
		views = append(views, toRoomView(rec))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views, nil
}

func toRoomRecord(r *room.Room) roomRecord {
	amenities := make([]string, len(r.Amenities()))
	copy(amenities, r.Amenities())
	return roomRecord{
		id:        r.ID(),
		name:      r.Name(),
		capacity:  r.Capacity(),
		amenities: amenities,
		state:     r.State(),
		createdAt: r.CreatedAt(),
	}
}

func toRoomEntity(rec roomRecord) *room.Room {
	amenities := make([]string, len(rec.amenities))
	copy(amenities, rec.amenities)
	return room.Reconstruct(rec.id, rec.name, rec.capacity, amenities, rec.state, rec.createdAt)
}

func toRoomView(rec roomRecord) *queries.RoomView {
	amenities := make([]string, len(rec.amenities))
	copy(amenities, rec.amenities)
	return &queries.RoomView{
		ID:        rec.id,
		Name:      rec.name,
		Capacity:  rec.capacity,
		Amenities: amenities,
		State:     rec.state.String(),
		CreatedAt: rec.createdAt,
	}
}
