package response

import (
	"time"

	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Amenities []string  `json:"amenities"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:        v.ID,
		Name:      v.Name,
		Capacity:  v.Capacity,
		Amenities: v.Amenities,
		State:     v.State,
		CreatedAt: v.CreatedAt,
	}
}

func FromRoomViews(views []*queries.RoomView) ([]*RoomResponse, error) {
	items := make([]*RoomResponse, 0, len(views))
	if err := copier.Copy(&items, views); err != nil {
		return nil, err
	}
	return items, nil
}
