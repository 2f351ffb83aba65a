//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/tests/common/builder"

	"github.com/stretchr/testify/require"
)

func TestOnePerDayPolicy(t *testing.T) {
	policy := booking.NewOnePerDayPolicy()

	existing, err := builder.NewBookingBuilder().WithDaysAhead(3).BuildDomain()
	require.NoError(t, err)

	t.Run("first booking of the day passes", func(t *testing.T) {
		proposed := existing.Slot()
		require.NoError(t, policy.Authorize(nil, proposed))
	})

	t.Run("second booking on the same date is rejected even in another room", func(t *testing.T) {
		other, err := builder.NewBookingBuilder().WithDaysAhead(3).
			With(func(b *builder.BookingBuilder) { b.WithStartHour(15) }).
			BuildDomain()
		require.NoError(t, err)

		err = policy.Authorize([]*booking.Booking{existing}, other.Slot())
		require.ErrorIs(t, err, booking.ErrDailyQuotaExceeded)
	})

	t.Run("booking on a different date passes", func(t *testing.T) {
		other, err := builder.NewBookingBuilder().WithDaysAhead(4).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, policy.Authorize([]*booking.Booking{existing}, other.Slot()))
	})
}

func TestMaxActivePolicy(t *testing.T) {
	policy := booking.NewMaxActivePolicy(2)

	mk := func(days int) *booking.Booking {
		b, err := builder.NewBookingBuilder().WithDaysAhead(days).BuildDomain()
		require.NoError(t, err)
		return b
	}

	proposed := booking.ReconstructTimeSlot(
		builder.BaseTime.AddDate(0, 0, 9),
		builder.BaseTime.AddDate(0, 0, 9).Add(time.Hour),
	)

	require.NoError(t, policy.Authorize([]*booking.Booking{mk(3)}, proposed))
	require.ErrorIs(t,
		policy.Authorize([]*booking.Booking{mk(3), mk(4)}, proposed),
		booking.ErrActiveQuotaExceeded,
	)
}

func TestCombinedPolicy(t *testing.T) {
	policy := booking.CombinedPolicy{
		booking.NewMaxActivePolicy(5),
		booking.NewOnePerDayPolicy(),
	}

	existing, err := builder.NewBookingBuilder().WithDaysAhead(3).BuildDomain()
	require.NoError(t, err)

	err = policy.Authorize([]*booking.Booking{existing}, existing.Slot())
	require.ErrorIs(t, err, booking.ErrDailyQuotaExceeded)

	other, err := builder.NewBookingBuilder().WithDaysAhead(5).BuildDomain()
	require.NoError(t, err)
	require.NoError(t, policy.Authorize([]*booking.Booking{existing}, other.Slot()))
}
