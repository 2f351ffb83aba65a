package commands

import (
	"context"

	"roomreserve/internal/domain/room"
	"roomreserve/internal/infra"
	"roomreserve/internal/pkg/errs"
	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

// RoomCommands covers catalog provisioning and the administrative state
// override, which acts independently of reservation-driven changes.
type RoomCommands interface {
	Provision(ctx context.Context, name string, capacity int, amenities []string) (*queries.RoomView, error)
	SetState(ctx context.Context, roomID uuid.UUID, state string) (*queries.RoomView, error)
}

type roomCommandsImpl struct {
	rooms RoomRepository
}

func NewRoomCommands(rooms RoomRepository) RoomCommands {
	return &roomCommandsImpl{rooms: rooms}
}

func (c *roomCommandsImpl) Provision(ctx context.Context, name string, capacity int, amenities []string) (*queries.RoomView, error) {
	roomEntity, err := room.NewRoom(uuid.New(), name, capacity, amenities)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.rooms.Create(ctx, roomEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return roomToView(roomEntity), nil
}

func (c *roomCommandsImpl) SetState(ctx context.Context, roomID uuid.UUID, state string) (*queries.RoomView, error) {
	newState, err := room.NewState(state)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	roomEntity, err := c.rooms.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := roomEntity.SetState(newState); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := c.rooms.Save(ctx, roomEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return roomToView(roomEntity), nil
}

func roomToView(r *room.Room) *queries.RoomView {
	return &queries.RoomView{
		ID:        r.ID(),
		Name:      r.Name(),
		Capacity:  r.Capacity(),
		Amenities: r.Amenities(),
		State:     r.State().String(),
		CreatedAt: r.CreatedAt(),
	}
}
