package booking

import (
	"errors"
	"strings"
	"time"

	"roomreserve/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmptyRequesterName = errors.New("requester name cannot be empty")
)

// Booking is a time-bounded claim by a requester on one room. Identity
// and slot are immutable; a change of time means cancel and re-create.
// The status field is private and only the transition methods below may
// move it.
type Booking struct {
	id            uuid.UUID
	roomID        uuid.UUID
	requesterID   uuid.UUID
	requesterName string
	slot          TimeSlot
	status        Status
	createdAt     time.Time
}

// NewBooking validates the slot against the injected clock and returns a
// booking in the given initial status (StatusPending for the moderated
// workflow, StatusApproved for the auto-approve variant).
func NewBooking(
	clk clock.Clock,
	roomID, requesterID uuid.UUID,
	requesterName string,
	start, end time.Time,
	initial Status,
) (*Booking, error) {
	requesterName = strings.TrimSpace(requesterName)
	if requesterName == "" {
		return nil, ErrEmptyRequesterName
	}
	if initial != StatusPending && initial != StatusApproved {
		return nil, ErrInvalidStatus
	}

	now := clk.Now()
	slot, err := NewTimeSlot(start, end, now)
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:            uuid.New(),
		roomID:        roomID,
		requesterID:   requesterID,
		requesterName: requesterName,
		slot:          slot,
		status:        initial,
		createdAt:     now,
	}, nil
}

func Reconstruct(
	id, roomID, requesterID uuid.UUID,
	requesterName string,
	slot TimeSlot,
	status Status,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		roomID:        roomID,
		requesterID:   requesterID,
		requesterName: requesterName,
		slot:          slot,
		status:        status,
		createdAt:     createdAt,
	}
}

// Approve moves a pending booking to approved.
func (b *Booking) Approve() error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusApproved
	return nil
}

// Reject cancels a pending booking. The room was never occupied, so the
// caller has no occupancy to recompute.
func (b *Booking) Reject() error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	return nil
}

// Cancel withdraws a pending or approved booking.
func (b *Booking) Cancel() error {
	if b.status != StatusPending && b.status != StatusApproved {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	return nil
}

// Complete is terminal and only reachable from approved.
func (b *Booking) Complete() error {
	if b.status != StatusApproved {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	return nil
}

// Reopen puts a cancelled booking back into the moderation queue; a
// moderator has to approve it again.
func (b *Booking) Reopen() error {
	if b.status != StatusCancelled {
		return ErrInvalidTransition
	}
	b.status = StatusPending
	return nil
}

// IsActive reports whether the booking still claims its slot for quota
// purposes. Only approved bookings block other requesters' slots, but
// both pending and approved count against the holder's own quota.
func (b *Booking) IsActive() bool {
	return b.status == StatusPending || b.status == StatusApproved
}

func (b *Booking) IsApproved() bool {
	return b.status == StatusApproved
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) RoomID() uuid.UUID      { return b.roomID }
func (b *Booking) RequesterID() uuid.UUID { return b.requesterID }
func (b *Booking) RequesterName() string  { return b.requesterName }
func (b *Booking) Slot() TimeSlot         { return b.slot }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
