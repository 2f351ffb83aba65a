package queries

import (
	"context"
	"fmt"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/infra"
	"roomreserve/internal/pkg/errs"

	"github.com/google/uuid"
)

// AvailabilityQueries derives the free/busy grid for one room on one
// date. Pure read path: only approved bookings mark a slot busy.
type AvailabilityQueries interface {
	SlotsFor(ctx context.Context, roomID uuid.UUID, date time.Time) ([]AvailabilitySlot, error)
}

type availabilityQueriesImpl struct {
	rooms    RoomReadStore
	bookings BookingReadStore
}

func NewAvailabilityQueries(rooms RoomReadStore, bookings BookingReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{
		rooms:    rooms,
		bookings: bookings,
	}
}

func (q *availabilityQueriesImpl) SlotsFor(ctx context.Context, roomID uuid.UUID, date time.Time) ([]AvailabilitySlot, error) {
	if _, err := q.rooms.FindByID(ctx, roomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to find room")
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), booking.OpenHour, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), booking.CloseHour, 0, 0, 0, date.Location())

	approved, err := q.bookings.FindApprovedByRoomBetween(ctx, roomID, dayStart, dayEnd)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load approved bookings")
	}

	slots := make([]AvailabilitySlot, 0, booking.CloseHour-booking.OpenHour)
	for h := booking.OpenHour; h < booking.CloseHour; h++ {
		slotStart := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, date.Location())
		slotEnd := slotStart.Add(time.Hour)

		slots = append(slots, AvailabilitySlot{
			Hour:      h,
			StartTime: slotStart,
			EndTime:   slotEnd,
			Label:     slotLabel(h),
			Available: !anyOverlaps(approved, slotStart, slotEnd),
		})
	}

	return slots, nil
}

// anyOverlaps applies the half-open overlap predicate: bookings that
// merely touch a slot boundary do not occupy it.
func anyOverlaps(bookings []*BookingView, slotStart, slotEnd time.Time) bool {
	for _, b := range bookings {
		if b.StartTime.Before(slotEnd) && b.EndTime.After(slotStart) {
			return true
		}
	}
	return false
}

func slotLabel(hour int) string {
	return fmt.Sprintf("%s - %s", hourLabel(hour), hourLabel(hour+1))
}

// hourLabel renders a 12-hour clock label; hours 0 and 24 fold to 12.
func hourLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 && hour < 24 {
		suffix = "PM"
	}

	h := hour % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%d %s", h, suffix)
}
