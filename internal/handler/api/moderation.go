package api

import (
	"context"
	"errors"
	"net/http"

	"roomreserve/internal/domain/booking"
	resdto "roomreserve/internal/handler/dto/response"
	"roomreserve/internal/usecase/commands"
	"roomreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ModerationHandler exposes the admin review queue: every mutation goes
// through the booking state machine, so an out-of-order action comes
// back as a conflict rather than a silent overwrite.
type ModerationHandler struct {
	moderationCommands commands.ModerationCommands
	bookingQueries     queries.BookingQueries
}

func NewModerationHandler(
	moderationCommands commands.ModerationCommands,
	bookingQueries queries.BookingQueries,
) *ModerationHandler {
	return &ModerationHandler{
		moderationCommands: moderationCommands,
		bookingQueries:     bookingQueries,
	}
}

func (h *ModerationHandler) ListAllBookings(c *gin.Context) {
	views, err := h.bookingQueries.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := resdto.FromBookingViews(views)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ModerationHandler) ApproveBooking(c *gin.Context) {
	h.transition(c, h.moderationCommands.Approve)
}

func (h *ModerationHandler) RejectBooking(c *gin.Context) {
	h.transition(c, h.moderationCommands.Reject)
}

func (h *ModerationHandler) ReopenBooking(c *gin.Context) {
	h.transition(c, h.moderationCommands.Reopen)
}

func (h *ModerationHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.moderationCommands.Complete)
}

func (h *ModerationHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	if err := h.moderationCommands.Delete(c.Request.Context(), bookingID); err != nil {
		if errors.Is(err, commands.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ModerationHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, id uuid.UUID) (*queries.BookingView, error),
) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	view, err := apply(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An approved booking already occupies this slot",
			})
		case errors.Is(err, booking.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking cannot change to the requested status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
