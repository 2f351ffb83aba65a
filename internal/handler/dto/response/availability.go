package response

import (
	"time"

	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilitySlotResponse struct {
	Hour      int       `json:"hour"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Label     string    `json:"label"`
	Available bool      `json:"available"`
}

type AvailabilityResponse struct {
	RoomID uuid.UUID                   `json:"roomId"`
	Date   string                      `json:"date"`
	Slots  []*AvailabilitySlotResponse `json:"slots"`
}

func FromAvailabilitySlots(roomID uuid.UUID, date time.Time, slots []queries.AvailabilitySlot) *AvailabilityResponse {
	items := make([]*AvailabilitySlotResponse, 0, len(slots))
	for _, s := range slots {
		items = append(items, &AvailabilitySlotResponse{
			Hour:      s.Hour,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Label:     s.Label,
			Available: s.Available,
		})
	}
	return &AvailabilityResponse{
		RoomID: roomID,
		Date:   date.Format("2006-01-02"),
		Slots:  items,
	}
}
