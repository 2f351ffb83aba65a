package commands

import (
	"context"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/domain/room"
	"roomreserve/internal/domain/user"

	"github.com/google/uuid"
)

// Write-side ports. The stores hand back reconstructed domain entities
// so every status change flows through entity transition methods.

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindActiveByRequester returns the requester's pending and approved
	// bookings; input to the quota policy.
	FindActiveByRequester(ctx context.Context, requesterID uuid.UUID) ([]*booking.Booking, error)
	// FindApprovedOverlapping returns approved bookings on the room whose
	// half-open interval overlaps [start, end).
	FindApprovedOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]*booking.Booking, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	Save(ctx context.Context, r *room.Room) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
}
