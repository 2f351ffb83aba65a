//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/domain/room"
	"roomreserve/internal/infra/memstore"
	"roomreserve/internal/usecase/queries"
	"roomreserve/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	rooms    *memstore.RoomStore
	bookings *memstore.BookingStore
	queries  queries.AvailabilityQueries
	roomID   uuid.UUID
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()

	f := &availabilityFixture{rooms: memstore.NewRoomStore()}
	f.bookings = memstore.NewBookingStore(f.rooms)
	f.queries = queries.NewAvailabilityQueries(
		memstore.NewRoomReads(f.rooms),
		memstore.NewBookingReads(f.bookings),
	)

	roomEntity, err := room.NewRoom(uuid.New(), "Aurora", 4, nil)
	require.NoError(t, err)
	require.NoError(t, f.rooms.Create(context.Background(), roomEntity))
	f.roomID = roomEntity.ID()
	return f
}

func (f *availabilityFixture) addApproved(t *testing.T, date time.Time, hour int, d time.Duration) {
	t.Helper()

	b, err := builder.NewBookingBuilder().
		With(func(b *builder.BookingBuilder) {
			b.RoomID = f.roomID
			b.Start = time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)
			b.End = b.Start.Add(d)
		}).
		BuildDomain()
	require.NoError(t, err)
	require.NoError(t, b.Approve())
	require.NoError(t, f.bookings.Create(context.Background(), b))
}

func TestSlotsForGrid(t *testing.T) {
	f := newAvailabilityFixture(t)
	date := builder.BaseTime.AddDate(0, 0, 3)

	slots, err := f.queries.SlotsFor(context.Background(), f.roomID, date)
	require.NoError(t, err)
	require.Len(t, slots, booking.CloseHour-booking.OpenHour)

	for i, slot := range slots {
		require.Equal(t, booking.OpenHour+i, slot.Hour)
		require.True(t, slot.Available, "empty calendar should leave hour %d free", slot.Hour)
		require.Equal(t, time.Hour, slot.EndTime.Sub(slot.StartTime))
	}

	labels := make([]string, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, slot.Label)
	}
	want := []string{
		"7 AM - 8 AM", "8 AM - 9 AM", "9 AM - 10 AM", "10 AM - 11 AM",
		"11 AM - 12 PM", "12 PM - 1 PM", "1 PM - 2 PM", "2 PM - 3 PM",
		"3 PM - 4 PM", "4 PM - 5 PM", "5 PM - 6 PM", "6 PM - 7 PM",
		"7 PM - 8 PM", "8 PM - 9 PM",
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("slot labels mismatch (-want +got):\n%s", diff)
	}
}

func TestSlotsForApprovedBookingBlocksHours(t *testing.T) {
	f := newAvailabilityFixture(t)
	date := builder.BaseTime.AddDate(0, 0, 3)

	f.addApproved(t, date, 10, 2*time.Hour)

	slots, err := f.queries.SlotsFor(context.Background(), f.roomID, date)
	require.NoError(t, err)

	busy := map[int]bool{}
	for _, slot := range slots {
		if !slot.Available {
			busy[slot.Hour] = true
		}
	}
	if diff := cmp.Diff(map[int]bool{10: true, 11: true}, busy); diff != "" {
		t.Errorf("busy hours mismatch (-want +got):\n%s", diff)
	}
}

func TestSlotsForPendingBookingDoesNotBlock(t *testing.T) {
	f := newAvailabilityFixture(t)
	date := builder.BaseTime.AddDate(0, 0, 3)

	b, err := builder.NewBookingBuilder().
		With(func(b *builder.BookingBuilder) {
			b.RoomID = f.roomID
			b.Start = time.Date(date.Year(), date.Month(), date.Day(), 10, 0, 0, 0, time.UTC)
			b.End = b.Start.Add(time.Hour)
		}).
		BuildDomain()
	require.NoError(t, err)
	require.NoError(t, f.bookings.Create(context.Background(), b))

	slots, err := f.queries.SlotsFor(context.Background(), f.roomID, date)
	require.NoError(t, err)

	for _, slot := range slots {
		require.True(t, slot.Available, "pending booking should not block hour %d", slot.Hour)
	}
}

func TestSlotsForOtherDateUnaffected(t *testing.T) {
	f := newAvailabilityFixture(t)
	date := builder.BaseTime.AddDate(0, 0, 3)

	f.addApproved(t, date, 10, time.Hour)

	slots, err := f.queries.SlotsFor(context.Background(), f.roomID, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	for _, slot := range slots {
		require.True(t, slot.Available)
	}
}

func TestSlotsForUnknownRoom(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.queries.SlotsFor(context.Background(), uuid.New(), builder.BaseTime)
	require.ErrorIs(t, err, queries.ErrRoomNotFound)
}
