package commands

import (
	"context"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/domain/room"
	reqdto "roomreserve/internal/handler/dto/request"
	"roomreserve/internal/infra"
	"roomreserve/internal/pkg/clock"
	"roomreserve/internal/pkg/errs"
	"roomreserve/internal/pkg/keylock"
	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNotBookingOwner         = errs.New("booking does not belong to requester")
	ErrSlotConflict            = errs.New("slot already booked")
	ErrRoomUnderMaintenance    = errs.New("room is under maintenance")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, requesterID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) error
}

// Option configures the allocation engine.
type Option func(*bookingCommandsImpl)

// WithAutoApprove skips moderation: bookings are created approved and
// the room is marked occupied in the same critical section.
func WithAutoApprove() Option {
	return func(c *bookingCommandsImpl) {
		c.autoApprove = true
	}
}

type bookingCommandsImpl struct {
	bookings    BookingRepository
	rooms       RoomRepository
	users       queries.UserReadStore
	quota       booking.QuotaPolicy
	locks       *keylock.KeyLock
	clock       clock.Clock
	autoApprove bool
}

func NewBookingCommands(
	bookings BookingRepository,
	rooms RoomRepository,
	users queries.UserReadStore,
	quota booking.QuotaPolicy,
	locks *keylock.KeyLock,
	clk clock.Clock,
	opts ...Option,
) BookingCommands {
	c := &bookingCommandsImpl{
		bookings: bookings,
		rooms:    rooms,
		users:    users,
		quota:    quota,
		locks:    locks,
		clock:    clk,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	requesterID uuid.UUID,
) (*queries.BookingView, error) {
	roomEntity, err := c.findRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if roomEntity.IsUnderMaintenance() {
		return nil, ErrRoomUnderMaintenance
	}

	requester, err := c.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	initial := booking.StatusPending
	if c.autoApprove {
		initial = booking.StatusApproved
	}

	bookingEntity, err := booking.NewBooking(
		c.clock,
		roomEntity.ID(),
		requesterID,
		requester.DisplayName,
		req.StartTime,
		req.EndTime,
		initial,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// The per-room lock covers quota read, conflict check and write as
	// one unit: first writer wins, the loser sees the conflict.
	c.locks.Lock(lockKey(roomEntity.ID()))
	defer c.locks.Unlock(lockKey(roomEntity.ID()))

	active, err := c.bookings.FindActiveByRequester(ctx, requesterID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := c.quota.Authorize(active, bookingEntity.Slot()); err != nil {
		return nil, err
	}

	overlapping, err := c.bookings.FindApprovedOverlapping(ctx, roomEntity.ID(), req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(overlapping) > 0 {
		return nil, ErrSlotConflict
	}

	if err := c.bookings.Create(ctx, bookingEntity); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrSlotConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if c.autoApprove {
		if err := roomEntity.SetState(room.StateOccupied); err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		if err := c.rooms.Save(ctx, roomEntity); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return bookingToView(bookingEntity, roomEntity.Name()), nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) error {
	bookingEntity, err := c.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if bookingEntity.RequesterID() != requesterID {
		return ErrNotBookingOwner
	}

	c.locks.Lock(lockKey(bookingEntity.RoomID()))
	defer c.locks.Unlock(lockKey(bookingEntity.RoomID()))

	if err := bookingEntity.Cancel(); err != nil {
		return err
	}

	if err := c.bookings.Update(ctx, bookingEntity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return recomputeRoomOccupancy(ctx, c.rooms, c.bookings, bookingEntity.RoomID(), c.clock.Now())
}

func (c *bookingCommandsImpl) findRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	roomEntity, err := c.rooms.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return roomEntity, nil
}

func (c *bookingCommandsImpl) findBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	bookingEntity, err := c.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return bookingEntity, nil
}

func lockKey(roomID uuid.UUID) string {
	return roomID.String()
}

// recomputeRoomOccupancy sets the room back to available when no
// approved booking overlaps the next 24 hours. An administrative
// maintenance state is never overridden here.
func recomputeRoomOccupancy(
	ctx context.Context,
	rooms RoomRepository,
	bookings BookingRepository,
	roomID uuid.UUID,
	now time.Time,
) error {
	roomEntity, err := rooms.FindByID(ctx, roomID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if roomEntity.IsUnderMaintenance() {
		return nil
	}

	overlapping, err := bookings.FindApprovedOverlapping(ctx, roomID, now, now.Add(24*time.Hour))
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	state := room.StateAvailable
	if len(overlapping) > 0 {
		state = room.StateOccupied
	}
	if roomEntity.State() == state {
		return nil
	}

	if err := roomEntity.SetState(state); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	if err := rooms.Save(ctx, roomEntity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func bookingToView(b *booking.Booking, roomName string) *queries.BookingView {
	return &queries.BookingView{
		ID:            b.ID(),
		RoomID:        b.RoomID(),
		RoomName:      roomName,
		RequesterID:   b.RequesterID(),
		RequesterName: b.RequesterName(),
		StartTime:     b.Slot().Start(),
		EndTime:       b.Slot().End(),
		Status:        b.Status().String(),
		CreatedAt:     b.CreatedAt(),
	}
}
