package booking

import (
	"errors"
	"time"
)

// Operating window: bookings may start at any whole hour within
// [OpenHour, CloseHour). A one-hour booking starting at 20:00 is the
// latest legal slot of the day.
const (
	OpenHour  = 7
	CloseHour = 21
)

var (
	ErrNonPositiveDuration   = errors.New("end time must be after start time")
	ErrInvalidDuration       = errors.New("booking duration must be exactly 1 or 2 hours")
	ErrOutsideOperatingHours = errors.New("booking must start within operating hours")
	ErrInsufficientNotice    = errors.New("booking requires at least two days advance notice")
)

// TimeSlot is the half-open interval [start, end) claimed by a booking.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot builds a slot and checks every eligibility rule against the
// supplied clock value. The rules are checked in order and each failure
// carries its own sentinel so callers can surface distinct reasons.
func NewTimeSlot(start, end time.Time, now time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrNonPositiveDuration
	}

	duration := end.Sub(start)
	if duration != time.Hour && duration != 2*time.Hour {
		return TimeSlot{}, ErrInvalidDuration
	}

	if h := start.Hour(); h < OpenHour || h >= CloseHour {
		return TimeSlot{}, ErrOutsideOperatingHours
	}

	if err := validateNotice(start, now); err != nil {
		return TimeSlot{}, err
	}

	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rebuilds a slot from storage without re-running
// eligibility rules; persisted bookings were validated at creation.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

// validateNotice requires the start date to be strictly later than
// tomorrow: bookings for today or tomorrow are too short notice.
func validateNotice(start, now time.Time) error {
	startDate := dateOf(start)
	nowDate := dateOf(now)
	if startDate.Sub(nowDate) < 48*time.Hour {
		return ErrInsufficientNotice
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps reports half-open interval overlap: touching boundaries do
// not collide.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && ts.end.After(other.start)
}

// StartsOnSameDate reports whether the slot starts on the same calendar
// date as t. Used by the per-day quota policy.
func (ts TimeSlot) StartsOnSameDate(t time.Time) bool {
	y1, m1, d1 := ts.start.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
