package response

import (
	"time"

	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"roomId"`
	RoomName      string    `json:"roomName"`
	RequesterID   uuid.UUID `json:"requesterId"`
	RequesterName string    `json:"requesterName"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:            v.ID,
		RoomID:        v.RoomID,
		RoomName:      v.RoomName,
		RequesterID:   v.RequesterID,
		RequesterName: v.RequesterName,
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	items := make([]*BookingResponse, 0, len(views))
	if err := copier.Copy(&items, views); err != nil {
		return nil, err
	}
	return items, nil
}
