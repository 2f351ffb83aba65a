//go:build unit

package memstore_test

import (
	"context"
	"testing"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/domain/room"
	"roomreserve/internal/infra"
	"roomreserve/internal/infra/memstore"
	"roomreserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingStoreFixture struct {
	rooms    *memstore.RoomStore
	store    *memstore.BookingStore
	reads    *memstore.BookingReads
	roomID   uuid.UUID
	roomName string
}

func newBookingStoreFixture(t *testing.T) *bookingStoreFixture {
	t.Helper()

	f := &bookingStoreFixture{rooms: memstore.NewRoomStore(), roomName: "Cascade"}
	f.store = memstore.NewBookingStore(f.rooms)
	f.reads = memstore.NewBookingReads(f.store)

	roomEntity, err := room.NewRoom(uuid.New(), f.roomName, 6, []string{"projector"})
	require.NoError(t, err)
	require.NoError(t, f.rooms.Create(context.Background(), roomEntity))
	f.roomID = roomEntity.ID()
	return f
}

func (f *bookingStoreFixture) newBooking(t *testing.T, mutate func(*builder.BookingBuilder)) *booking.Booking {
	t.Helper()

	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.RoomID = f.roomID
	})
	if mutate != nil {
		b.With(mutate)
	}
	entity, err := b.BuildDomain()
	require.NoError(t, err)
	return entity
}

func TestBookingStoreCreate(t *testing.T) {
	f := newBookingStoreFixture(t)
	ctx := context.Background()

	entity := f.newBooking(t, nil)
	require.NoError(t, f.store.Create(ctx, entity))

	t.Run("round-trips the entity", func(t *testing.T) {
		found, err := f.store.FindByID(ctx, entity.ID())
		require.NoError(t, err)
		assert.Equal(t, entity.ID(), found.ID())
		assert.Equal(t, entity.RequesterName(), found.RequesterName())
		assert.True(t, entity.Slot().Start().Equal(found.Slot().Start()))
		assert.Equal(t, booking.StatusPending, found.Status())
	})

	t.Run("rejects a duplicate id", func(t *testing.T) {
		err := f.store.Create(ctx, entity)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("reads return copies", func(t *testing.T) {
		first, err := f.store.FindByID(ctx, entity.ID())
		require.NoError(t, err)
		require.NoError(t, first.Approve())

		second, err := f.store.FindByID(ctx, entity.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, second.Status())
	})
}

func TestBookingStoreUpdateAndDelete(t *testing.T) {
	f := newBookingStoreFixture(t)
	ctx := context.Background()

	entity := f.newBooking(t, nil)
	require.NoError(t, f.store.Create(ctx, entity))

	require.NoError(t, entity.Approve())
	require.NoError(t, f.store.Update(ctx, entity))

	found, err := f.store.FindByID(ctx, entity.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, found.Status())

	require.NoError(t, f.store.Delete(ctx, entity.ID()))

	_, err = f.store.FindByID(ctx, entity.ID())
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	t.Run("updating a missing booking", func(t *testing.T) {
		ghost := f.newBooking(t, nil)
		err := f.store.Update(ctx, ghost)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("deleting a missing booking", func(t *testing.T) {
		err := f.store.Delete(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestBookingStoreFindApprovedOverlapping(t *testing.T) {
	f := newBookingStoreFixture(t)
	ctx := context.Background()

	approved := f.newBooking(t, func(b *builder.BookingBuilder) {
		b.Start = builder.BaseTime.AddDate(0, 0, 3).Truncate(24 * time.Hour).Add(10 * time.Hour)
		b.End = b.Start.Add(time.Hour)
	})
	require.NoError(t, approved.Approve())
	require.NoError(t, f.store.Create(ctx, approved))

	pending := f.newBooking(t, func(b *builder.BookingBuilder) {
		b.Start = approved.Slot().Start()
		b.End = approved.Slot().End()
	})
	require.NoError(t, f.store.Create(ctx, pending))

	start := approved.Slot().Start()
	end := approved.Slot().End()

	t.Run("only approved bookings count", func(t *testing.T) {
		found, err := f.store.FindApprovedOverlapping(ctx, f.roomID, start, end)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, approved.ID(), found[0].ID())
	})

	t.Run("back-to-back slots do not overlap", func(t *testing.T) {
		found, err := f.store.FindApprovedOverlapping(ctx, f.roomID, end, end.Add(time.Hour))
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("other rooms are invisible", func(t *testing.T) {
		found, err := f.store.FindApprovedOverlapping(ctx, uuid.New(), start, end)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestBookingReads(t *testing.T) {
	f := newBookingStoreFixture(t)
	ctx := context.Background()

	later := f.newBooking(t, func(b *builder.BookingBuilder) {
		b.Start = b.Start.Add(4 * time.Hour)
		b.End = b.Start.Add(time.Hour)
	})
	earlier := f.newBooking(t, nil)
	require.NoError(t, f.store.Create(ctx, later))
	require.NoError(t, f.store.Create(ctx, earlier))

	t.Run("views carry the room name", func(t *testing.T) {
		view, err := f.reads.FindByID(ctx, earlier.ID())
		require.NoError(t, err)
		assert.Equal(t, f.roomName, view.RoomName)
		assert.Equal(t, earlier.RequesterName(), view.RequesterName)
	})

	t.Run("listings sort by start time", func(t *testing.T) {
		views, err := f.reads.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, earlier.ID(), views[0].ID)
		assert.Equal(t, later.ID(), views[1].ID)
	})

	t.Run("requester listing filters by owner", func(t *testing.T) {
		views, err := f.reads.FindByRequesterID(ctx, earlier.RequesterID())
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, earlier.ID(), views[0].ID)
	})

	t.Run("unknown booking view", func(t *testing.T) {
		_, err := f.reads.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
