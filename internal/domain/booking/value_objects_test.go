//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewTimeSlot(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, time.Hour, actual.Slot().Duration())
		assert.Equal(t, 10, actual.Slot().Start().Hour())
	})

	t.Run("duration validation", func(t *testing.T) {
		runSlotCases(t, []slotCase{
			{
				name:   "one hour is valid",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(time.Hour) },
			},
			{
				name:   "two hours is valid",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(2 * time.Hour) },
			},
			{
				name:   "ninety minutes is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(90 * time.Minute) },
				errIs:  booking.ErrInvalidDuration,
			},
			{
				name:   "three hours is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(3 * time.Hour) },
				errIs:  booking.ErrInvalidDuration,
			},
			{
				name:   "zero duration is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(0) },
				errIs:  booking.ErrNonPositiveDuration,
			},
			{
				name:   "end before start is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(-time.Hour) },
				errIs:  booking.ErrNonPositiveDuration,
			},
		})
	})

	t.Run("operating hours validation", func(t *testing.T) {
		runSlotCases(t, []slotCase{
			{
				name:   "opening hour start is valid",
				mutate: func(b *builder.BookingBuilder) { b.WithStartHour(booking.OpenHour) },
			},
			{
				name:   "last hour before close is valid",
				mutate: func(b *builder.BookingBuilder) { b.WithStartHour(booking.CloseHour - 1).WithDuration(time.Hour) },
			},
			{
				name:   "before opening is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithStartHour(booking.OpenHour - 1) },
				errIs:  booking.ErrOutsideOperatingHours,
			},
			{
				name:   "at closing hour is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithStartHour(booking.CloseHour) },
				errIs:  booking.ErrOutsideOperatingHours,
			},
			{
				name:   "midnight is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithStartHour(0) },
				errIs:  booking.ErrOutsideOperatingHours,
			},
		})
	})

	t.Run("advance notice validation", func(t *testing.T) {
		runSlotCases(t, []slotCase{
			{
				name:   "same day is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithDaysAhead(0) },
				errIs:  booking.ErrInsufficientNotice,
			},
			{
				name:   "next day is rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithDaysAhead(1) },
				errIs:  booking.ErrInsufficientNotice,
			},
			{
				name:   "two days out is valid",
				mutate: func(b *builder.BookingBuilder) { b.WithDaysAhead(2) },
			},
			{
				name:   "a week out is valid",
				mutate: func(b *builder.BookingBuilder) { b.WithDaysAhead(7) },
			},
		})
	})

	t.Run("notice counts calendar days not elapsed hours", func(t *testing.T) {
		// 23:30 now, booking starts two calendar days later at 07:00:
		// under 48 elapsed hours but still two date boundaries away.
		now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
		start := time.Date(2025, 3, 12, 7, 0, 0, 0, time.UTC)

		_, err := booking.NewTimeSlot(start, start.Add(time.Hour), now)
		require.NoError(t, err)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	day := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	slotAt := func(startHour, hours int) booking.TimeSlot {
		start := day.Add(time.Duration(startHour) * time.Hour)
		return booking.ReconstructTimeSlot(start, start.Add(time.Duration(hours)*time.Hour))
	}

	cases := []struct {
		name     string
		a, b     booking.TimeSlot
		overlaps bool
	}{
		{"identical slots", slotAt(10, 1), slotAt(10, 1), true},
		{"contained slot", slotAt(10, 2), slotAt(11, 1), true},
		{"partial overlap", slotAt(10, 2), slotAt(11, 2), true},
		{"back to back slots do not collide", slotAt(10, 1), slotAt(11, 1), false},
		{"disjoint slots", slotAt(7, 1), slotAt(15, 2), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, c.a.Overlaps(c.b))
			assert.Equal(t, c.overlaps, c.b.Overlaps(c.a))
		})
	}
}

func TestTimeSlotStartsOnSameDate(t *testing.T) {
	start := time.Date(2025, 3, 13, 10, 0, 0, 0, time.UTC)
	slot := booking.ReconstructTimeSlot(start, start.Add(time.Hour))

	assert.True(t, slot.StartsOnSameDate(time.Date(2025, 3, 13, 20, 0, 0, 0, time.UTC)))
	assert.False(t, slot.StartsOnSameDate(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)))
}

func runSlotCases(t *testing.T, cases []slotCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
