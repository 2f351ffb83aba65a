package commands

import (
	"context"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/domain/room"
	"roomreserve/internal/infra"
	"roomreserve/internal/pkg/clock"
	"roomreserve/internal/pkg/errs"
	"roomreserve/internal/pkg/keylock"
	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

// ModerationCommands are the administrative lifecycle operations layered
// on top of booking records. The privilege check happens at the
// transport layer; these operations assume an elevated caller.
type ModerationCommands interface {
	Approve(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
	Reject(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
	Reopen(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
	Complete(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error)
	Delete(ctx context.Context, bookingID uuid.UUID) error
}

type moderationCommandsImpl struct {
	bookings BookingRepository
	rooms    RoomRepository
	locks    *keylock.KeyLock
	clock    clock.Clock
}

func NewModerationCommands(
	bookings BookingRepository,
	rooms RoomRepository,
	locks *keylock.KeyLock,
	clk clock.Clock,
) ModerationCommands {
	return &moderationCommandsImpl{
		bookings: bookings,
		rooms:    rooms,
		locks:    locks,
		clock:    clk,
	}
}

// Approve commits a pending booking. Approval is the moment a slot
// becomes binding, so the approved-overlap check runs again under the
// room lock: two pending bookings may overlap, two approved ones never.
func (m *moderationCommandsImpl) Approve(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	bookingEntity, err := m.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	roomEntity, err := m.findRoom(ctx, bookingEntity.RoomID())
	if err != nil {
		return nil, err
	}

	m.locks.Lock(lockKey(roomEntity.ID()))
	defer m.locks.Unlock(lockKey(roomEntity.ID()))

	overlapping, err := m.bookings.FindApprovedOverlapping(ctx, roomEntity.ID(), bookingEntity.Slot().Start(), bookingEntity.Slot().End())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	for _, other := range overlapping {
		// The scan sees the booking itself once it is approved;
		// re-approval must surface as a transition error instead.
		if other.ID() != bookingEntity.ID() {
			return nil, ErrSlotConflict
		}
	}

	if err := bookingEntity.Approve(); err != nil {
		return nil, err
	}
	if err := m.bookings.Update(ctx, bookingEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := roomEntity.SetState(room.StateOccupied); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := m.rooms.Save(ctx, roomEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return bookingToView(bookingEntity, roomEntity.Name()), nil
}

// Reject refuses a pending booking. The room was never occupied by it,
// so room state is untouched.
func (m *moderationCommandsImpl) Reject(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	return m.applyTransition(ctx, bookingID, (*booking.Booking).Reject)
}

// Reopen puts a cancelled booking back in the moderation queue; only
// cancelled bookings can be re-approved.
func (m *moderationCommandsImpl) Reopen(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	return m.applyTransition(ctx, bookingID, (*booking.Booking).Reopen)
}

// Complete finishes an approved booking and releases the room if
// nothing else holds it.
func (m *moderationCommandsImpl) Complete(ctx context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	bookingEntity, err := m.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	m.locks.Lock(lockKey(bookingEntity.RoomID()))
	defer m.locks.Unlock(lockKey(bookingEntity.RoomID()))

	if err := bookingEntity.Complete(); err != nil {
		return nil, err
	}
	if err := m.bookings.Update(ctx, bookingEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := recomputeRoomOccupancy(ctx, m.rooms, m.bookings, bookingEntity.RoomID(), m.clock.Now()); err != nil {
		return nil, err
	}

	roomEntity, err := m.findRoom(ctx, bookingEntity.RoomID())
	if err != nil {
		return nil, err
	}
	return bookingToView(bookingEntity, roomEntity.Name()), nil
}

// Delete is the destructive administrative removal, distinct from
// cancellation: the record disappears and occupancy is recomputed.
func (m *moderationCommandsImpl) Delete(ctx context.Context, bookingID uuid.UUID) error {
	bookingEntity, err := m.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	m.locks.Lock(lockKey(bookingEntity.RoomID()))
	defer m.locks.Unlock(lockKey(bookingEntity.RoomID()))

	if err := m.bookings.Delete(ctx, bookingID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return recomputeRoomOccupancy(ctx, m.rooms, m.bookings, bookingEntity.RoomID(), m.clock.Now())
}

func (m *moderationCommandsImpl) applyTransition(
	ctx context.Context,
	bookingID uuid.UUID,
	transition func(*booking.Booking) error,
) (*queries.BookingView, error) {
	bookingEntity, err := m.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	m.locks.Lock(lockKey(bookingEntity.RoomID()))
	defer m.locks.Unlock(lockKey(bookingEntity.RoomID()))

	if err := transition(bookingEntity); err != nil {
		return nil, err
	}
	if err := m.bookings.Update(ctx, bookingEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	roomEntity, err := m.findRoom(ctx, bookingEntity.RoomID())
	if err != nil {
		return nil, err
	}
	return bookingToView(bookingEntity, roomEntity.Name()), nil
}

func (m *moderationCommandsImpl) findBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	bookingEntity, err := m.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return bookingEntity, nil
}

func (m *moderationCommandsImpl) findRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	roomEntity, err := m.rooms.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return roomEntity, nil
}
