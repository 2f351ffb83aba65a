//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/domain/user"
	"roomreserve/internal/handler/api"
	resdto "roomreserve/internal/handler/dto/response"
	"roomreserve/internal/usecase/commands"
	"roomreserve/internal/usecase/queries"
	"roomreserve/tests/common/builder"
	"roomreserve/tests/common/httptest"
	"roomreserve/tests/common/testutil"
	commandsmock "roomreserve/tests/mock/commands"
	queriesmock "roomreserve/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	userID uuid.UUID
	role   user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.role = user.RoleMember

	// Stand-in for the auth middleware.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.GetUserBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) bookingView() *queries.BookingView {
	start := builder.BaseTime.AddDate(0, 0, 3).Truncate(time.Hour).Add(time.Hour)
	return &queries.BookingView{
		ID:            uuid.New(),
		RoomID:        uuid.New(),
		RoomName:      "Aurora",
		RequesterID:   s.userID,
		RequesterName: "Taylor Reed",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Status:        booking.StatusPending.String(),
		CreatedAt:     builder.BaseTime,
	}
}

func (s *BookingHandlerTestSuite) createBody(view *queries.BookingView) map[string]any {
	return map[string]any{
		"room_id":    view.RoomID.String(),
		"start_time": view.StartTime.Format(time.RFC3339),
		"end_time":   view.EndTime.Format(time.RFC3339),
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	view := s.bookingView()

	s.Run("success: returns 201 with the created booking", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(view), "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal(view.RoomName, resp.RoomName)
		s.Equal(booking.StatusPending.String(), resp.Status)
	})

	s.Run("unauthenticated request is rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(view), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	validation := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{name: "missing room_id", mutate: testutil.Field("room_id", nil)},
		{name: "missing start_time", mutate: testutil.Field("start_time", nil)},
		{name: "missing end_time", mutate: testutil.Field("end_time", nil)},
		{name: "malformed room_id", mutate: testutil.Field("room_id", "not-a-uuid")},
		{name: "malformed start_time", mutate: testutil.Field("start_time", "tomorrow")},
	}
	for _, tc := range validation {
		s.Run("validation: "+tc.name, func() {
			body := s.createBody(view)
			tc.mutate(body)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		})
	}

	domainErrors := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "unknown room", err: commands.ErrRoomNotFound, expectCode: http.StatusNotFound, expectMsg: "Room not found"},
		{name: "room under maintenance", err: commands.ErrRoomUnderMaintenance, expectCode: http.StatusConflict, expectMsg: "maintenance"},
		{name: "slot already booked", err: commands.ErrSlotConflict, expectCode: http.StatusConflict, expectMsg: "already booked"},
		{name: "bad duration", err: booking.ErrInvalidDuration, expectCode: http.StatusUnprocessableEntity, expectMsg: "one or two hours"},
		{name: "outside operating hours", err: booking.ErrOutsideOperatingHours, expectCode: http.StatusUnprocessableEntity, expectMsg: "operating hours"},
		{name: "too little notice", err: booking.ErrInsufficientNotice, expectCode: http.StatusUnprocessableEntity, expectMsg: "two days in advance"},
		{name: "daily quota", err: booking.ErrDailyQuotaExceeded, expectCode: http.StatusUnprocessableEntity, expectMsg: "already exists for this date"},
		{name: "unexpected failure", err: fmt.Errorf("connection reset"), expectCode: http.StatusInternalServerError, expectMsg: "Internal server error"},
	}
	for _, tc := range domainErrors {
		s.Run("error mapping: "+tc.name, func() {
			s.mockCommands.EXPECT().
				CreateBooking(gomock.Any(), gomock.Any(), s.userID).
				Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody(view), "token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}

func (s *BookingHandlerTestSuite) TestGetUserBookings() {
	s.Run("returns the caller's bookings", func() {
		view := s.bookingView()
		s.mockQueries.EXPECT().
			ListByRequester(gomock.Any(), s.userID).
			Return([]*queries.BookingView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		var resp []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Require().Len(resp, 1)
		s.Equal(view.ID, resp[0].ID)
	})

	s.Run("empty history is an empty list", func() {
		s.mockQueries.EXPECT().
			ListByRequester(gomock.Any(), s.userID).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		var resp []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Empty(resp)
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("owner sees their booking", func() {
		view := s.bookingView()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("someone else's booking reads as not found", func() {
		view := s.bookingView()
		view.RequesterID = uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("admins see everything", func() {
		s.role = user.RoleAdmin
		defer func() { s.role = user.RoleMember }()

		view := s.bookingView()
		view.RequesterID = uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("unknown booking", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), id).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("success: returns 204", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), id, s.userID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+id.String(), nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	cancelErrors := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "unknown booking", err: commands.ErrBookingNotFound, expectCode: http.StatusNotFound, expectMsg: "Booking not found"},
		{name: "not the owner", err: commands.ErrNotBookingOwner, expectCode: http.StatusForbidden, expectMsg: "another requester"},
		{name: "already terminal", err: booking.ErrInvalidTransition, expectCode: http.StatusConflict, expectMsg: "current status"},
	}
	for _, tc := range cancelErrors {
		s.Run("error mapping: "+tc.name, func() {
			id := uuid.New()
			s.mockCommands.EXPECT().
				CancelBooking(gomock.Any(), id, s.userID).
				Return(tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+id.String(), nil, "token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}
