package booking

import "errors"

var (
	ErrDailyQuotaExceeded  = errors.New("requester already holds a booking for this date")
	ErrActiveQuotaExceeded = errors.New("requester has too many active bookings")
)

// QuotaPolicy caps how many bookings one requester may hold. The engine
// invokes it with the requester's active (pending or approved) bookings
// before running the room-conflict check, so policies can be swapped or
// combined without touching conflict detection.
type QuotaPolicy interface {
	Authorize(active []*Booking, proposed TimeSlot) error
}

// OnePerDayPolicy rejects a second booking starting on the same calendar
// date, regardless of room.
type OnePerDayPolicy struct{}

func NewOnePerDayPolicy() OnePerDayPolicy {
	return OnePerDayPolicy{}
}

func (OnePerDayPolicy) Authorize(active []*Booking, proposed TimeSlot) error {
	for _, b := range active {
		if b.Slot().StartsOnSameDate(proposed.Start()) {
			return ErrDailyQuotaExceeded
		}
	}
	return nil
}

// MaxActivePolicy caps the total number of concurrently active bookings
// a requester may hold system-wide.
type MaxActivePolicy struct {
	Limit int
}

func NewMaxActivePolicy(limit int) MaxActivePolicy {
	return MaxActivePolicy{Limit: limit}
}

func (p MaxActivePolicy) Authorize(active []*Booking, _ TimeSlot) error {
	if len(active) >= p.Limit {
		return ErrActiveQuotaExceeded
	}
	return nil
}

// CombinedPolicy applies every member policy in order.
type CombinedPolicy []QuotaPolicy

func (c CombinedPolicy) Authorize(active []*Booking, proposed TimeSlot) error {
	for _, p := range c {
		if err := p.Authorize(active, proposed); err != nil {
			return err
		}
	}
	return nil
}
