package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/infra"
	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type bookingRecord struct {
	id            uuid.UUID
	roomID        uuid.UUID
	requesterID   uuid.UUID
	requesterName string
	startTime     time.Time
	endTime       time.Time
	status        booking.Status
	createdAt     time.Time
}

// BookingStore keeps bookings in a map guarded by an RWMutex. Records are
// stored as snapshots; entities and views are rebuilt on every read so
// callers never share mutable state.
type BookingStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]bookingRecord
	rooms   *RoomStore
}

func NewBookingStore(rooms *RoomStore) *BookingStore {
	return &BookingStore{
		records: make(map[uuid.UUID]bookingRecord),
		rooms:   rooms,
	}
}

func (s *BookingStore) Create(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	s.records[b.ID()] = toRecord(b)
	return nil
}

func (s *BookingStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return toEntity(rec), nil
}

func (s *BookingStore) Update(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	s.records[b.ID()] = toRecord(b)
	return nil
}

func (s *BookingStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	delete(s.records, id)
	return nil
}

func (s *BookingStore) FindActiveByRequester(_ context.Context, requesterID uuid.UUID) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*booking.Booking
	for _, rec := range s.records {
		if rec.requesterID != requesterID {
			continue
		}
		if rec.status != booking.StatusPending && rec.status != booking.StatusApproved {
			continue
		}
		result = append(result, toEntity(rec))
	}
	return result, nil
}

func (s *BookingStore) FindApprovedOverlapping(_ context.Context, roomID uuid.UUID, start, end time.Time) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*booking.Booking
	for _, rec := range s.records {
		if rec.roomID != roomID || rec.status != booking.StatusApproved {
			continue
		}
		if rec.startTime.Before(end) && rec.endTime.After(start) {
			result = append(result, toEntity(rec))
		}
	}
	return result, nil
}

// BookingReads serves the query side from the same table.
type BookingReads struct {
	store *BookingStore
}

func NewBookingReads(store *BookingStore) *BookingReads {
	return &BookingReads{store: store}
}

func (r *BookingReads) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return r.toView(ctx, rec), nil
}

func (r *BookingReads) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*queries.BookingView, error) {
	return r.collect(ctx, func(rec bookingRecord) bool {
		return rec.requesterID == requesterID
	})
}

func (r *BookingReads) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	return r.collect(ctx, func(bookingRecord) bool { return true })
}

func (r *BookingReads) FindApprovedByRoomBetween(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*queries.BookingView, error) {
	return r.collect(ctx, func(rec bookingRecord) bool {
		return rec.roomID == roomID &&
			rec.status == booking.StatusApproved &&
			rec.startTime.Before(to) && rec.endTime.After(from)
	})
}

func (r *BookingReads) collect(ctx context.Context, match func(bookingRecord) bool) ([]*queries.BookingView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	views := make([]*queries.BookingView, 0)
	for _, rec := range r.store.records {
		if match(rec) {
			views = append(views, r.toView(ctx, rec))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].StartTime.Equal(views[j].StartTime) {
			return views[i].CreatedAt.Before(views[j].CreatedAt)
		}
		return views[i].StartTime.Before(views[j].StartTime)
	})
	return views, nil
}

func (r *BookingReads) toView(ctx context.Context, rec bookingRecord) *queries.BookingView {
	roomName := ""
	if r.store.rooms != nil {
		if roomEntity, err := r.store.rooms.FindByID(ctx, rec.roomID); err == nil {
			roomName = roomEntity.Name()
		}
	}
	return &queries.BookingView{
		ID:            rec.id,
		RoomID:        rec.roomID,
		RoomName:      roomName,
		RequesterID:   rec.requesterID,
		RequesterName: rec.requesterName,
		StartTime:     rec.startTime,
		EndTime:       rec.endTime,
		Status:        rec.status.String(),
		CreatedAt:     rec.createdAt,
	}
}

func toRecord(b *booking.Booking) bookingRecord {
	return bookingRecord{
		id:            b.ID(),
		roomID:        b.RoomID(),
		requesterID:   b.RequesterID(),
		requesterName: b.RequesterName(),
		startTime:     b.Slot().Start(),
		endTime:       b.Slot().End(),
		status:        b.Status(),
		createdAt:     b.CreatedAt(),
	}
}

func toEntity(rec bookingRecord) *booking.Booking {
	return booking.Reconstruct(
		rec.id,
		rec.roomID,
		rec.requesterID,
		rec.requesterName,
		booking.ReconstructTimeSlot(rec.startTime, rec.endTime),
		rec.status,
		rec.createdAt,
	)
}
