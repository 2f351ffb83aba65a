package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "roomreserve/internal/handler/dto/request"
	resdto "roomreserve/internal/handler/dto/response"
	"roomreserve/internal/handler/httperr"
	"roomreserve/internal/usecase/commands"
	"roomreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomCommands        commands.RoomCommands
	roomQueries         queries.RoomQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewRoomHandler(
	roomCommands commands.RoomCommands,
	roomQueries queries.RoomQueries,
	availabilityQueries queries.AvailabilityQueries,
) *RoomHandler {
	return &RoomHandler{
		roomCommands:        roomCommands,
		roomQueries:         roomQueries,
		availabilityQueries: availabilityQueries,
	}
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	views, err := h.roomQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list rooms", nil)
		return
	}

	items, err := resdto.FromRoomViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list rooms", nil)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	view, err := h.roomQueries.GetByID(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load room", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// GetSlots returns the hourly availability grid for a room on a given
// date (?date=YYYY-MM-DD, default today).
func (h *RoomHandler) GetSlots(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
	}

	slots, err := h.availabilityQueries.SlotsFor(c.Request.Context(), roomID, date)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load availability", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilitySlots(roomID, date, slots))
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.roomCommands.Provision(c.Request.Context(), req.Name, req.Capacity, req.Amenities)
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid room definition", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create room", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRoomView(view))
}

func (h *RoomHandler) SetRoomState(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	var req reqdto.UpdateRoomStateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.roomCommands.SetState(c.Request.Context(), roomID, req.State)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid room state", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update room state", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}
