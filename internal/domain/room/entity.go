package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName   = errors.New("room name cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 255 characters)")
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrInvalidState    = errors.New("invalid room state")
)

const (
	MaxRoomNameLength = 255
)

// Room is a bookable resource with exclusive occupancy semantics.
// Capacity is informational only; it never drives multi-seat allocation.
type Room struct {
	id        uuid.UUID
	name      string
	capacity  int
	amenities []string
	state     State
	createdAt time.Time
}

func NewRoom(id uuid.UUID, name string, capacity int, amenities []string) (*Room, error) {
	if err := validateRoomName(name); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		id:        id,
		name:      strings.TrimSpace(name),
		capacity:  capacity,
		amenities: amenities,
		state:     StateAvailable,
	}, nil
}

func Reconstruct(id uuid.UUID, name string, capacity int, amenities []string, state State, createdAt time.Time) *Room {
	return &Room{
		id:        id,
		name:      name,
		capacity:  capacity,
		amenities: amenities,
		state:     state,
		createdAt: createdAt,
	}
}

// SetState applies an operational state change. Both reservation-driven
// occupancy updates and administrative overrides go through here so the
// state never leaves the closed enum.
func (r *Room) SetState(state State) error {
	if !state.IsValid() {
		return ErrInvalidState
	}
	r.state = state
	return nil
}

func (r *Room) IsUnderMaintenance() bool {
	return r.state == StateMaintenance
}

func validateRoomName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return ErrRoomNameTooLong
	}
	return nil
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Amenities() []string  { return r.amenities }
func (r *Room) State() State         { return r.state }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
