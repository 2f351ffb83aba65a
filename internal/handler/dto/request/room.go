package request

type CreateRoomRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=100"`
	Capacity  int      `json:"capacity" binding:"required,min=1"`
	Amenities []string `json:"amenities"`
}

type UpdateRoomStateRequest struct {
	State string `json:"state" binding:"required,oneof=available occupied maintenance"`
}
