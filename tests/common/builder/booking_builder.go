//go:build unit

package builder

import (
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/pkg/clock"

	"github.com/google/uuid"
)

// BaseTime is the frozen "now" all builder defaults are anchored on.
var BaseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	RoomID        uuid.UUID
	RequesterID   uuid.UUID
	RequesterName string
	Start         time.Time
	End           time.Time
	Now           time.Time
	Initial       booking.Status
}

// NewBookingBuilder defaults to a valid one-hour slot three days out.
func NewBookingBuilder() *BookingBuilder {
	start := BaseTime.AddDate(0, 0, 3).Truncate(time.Hour).Add(time.Hour) // 10:00 three days out
	return &BookingBuilder{
		RoomID:        uuid.New(),
		RequesterID:   uuid.New(),
		RequesterName: "Taylor Reed",
		Start:         start,
		End:           start.Add(time.Hour),
		Now:           BaseTime,
		Initial:       booking.StatusPending,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithDuration(d time.Duration) *BookingBuilder {
	b.End = b.Start.Add(d)
	return b
}

func (b *BookingBuilder) WithStartHour(hour int) *BookingBuilder {
	d := b.End.Sub(b.Start)
	b.Start = time.Date(b.Start.Year(), b.Start.Month(), b.Start.Day(), hour, 0, 0, 0, b.Start.Location())
	b.End = b.Start.Add(d)
	return b
}

func (b *BookingBuilder) WithDaysAhead(days int) *BookingBuilder {
	d := b.End.Sub(b.Start)
	b.Start = time.Date(b.Now.Year(), b.Now.Month(), b.Now.Day(), b.Start.Hour(), 0, 0, 0, time.UTC).AddDate(0, 0, days)
	b.End = b.Start.Add(d)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(
		clock.NewMockClock(b.Now),
		b.RoomID,
		b.RequesterID,
		b.RequesterName,
		b.Start,
		b.End,
		b.Initial,
	)
}
