//go:build unit

package commands_test

import (
	"context"
	"testing"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/domain/room"
	"roomreserve/internal/usecase/commands"
	"roomreserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ModerationCommandsTestSuite struct {
	suite.Suite
	f    *commandsFixture
	mod  commands.ModerationCommands
	cmds commands.BookingCommands
	ctx  context.Context
}

func (s *ModerationCommandsTestSuite) SetupTest() {
	s.f = newCommandsFixture(s.T())
	s.mod = commands.NewModerationCommands(s.f.bookings, s.f.rooms, s.f.locks, s.f.clock)
	s.cmds = s.f.newCommands()
	s.ctx = context.Background()
}

func (s *ModerationCommandsTestSuite) SetupSubTest() {
	s.SetupTest()
}

func TestModerationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ModerationCommandsTestSuite))
}

func (s *ModerationCommandsTestSuite) createPending(daysAhead, hour int, requesterID uuid.UUID) *queries.BookingView {
	view, err := s.cmds.CreateBooking(s.ctx, s.f.validRequest(daysAhead, hour), requesterID)
	s.Require().NoError(err)
	return view
}

func (s *ModerationCommandsTestSuite) TestApprove() {
	s.Run("approves a pending booking and occupies the room", func() {
		view := s.createPending(3, 10, s.f.requesterID)

		approved, err := s.mod.Approve(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Equal(booking.StatusApproved.String(), approved.Status)

		roomEntity, err := s.f.rooms.FindByID(s.ctx, s.f.roomID)
		s.Require().NoError(err)
		s.Equal(room.StateOccupied, roomEntity.State())
	})

	s.Run("second approval of an overlapping pending booking conflicts", func() {
		first := s.createPending(3, 10, s.f.requesterID)
		second := s.createPending(3, 10, s.f.otherID)

		_, err := s.mod.Approve(s.ctx, first.ID)
		s.Require().NoError(err)

		_, err = s.mod.Approve(s.ctx, second.ID)
		s.Require().ErrorIs(err, commands.ErrSlotConflict)
	})

	s.Run("approving an already approved booking is an invalid transition", func() {
		view := s.createPending(3, 10, s.f.requesterID)
		_, err := s.mod.Approve(s.ctx, view.ID)
		s.Require().NoError(err)

		_, err = s.mod.Approve(s.ctx, view.ID)
		s.Require().ErrorIs(err, booking.ErrInvalidTransition)
	})

	s.Run("unknown booking", func() {
		_, err := s.mod.Approve(s.ctx, uuid.New())
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})
}

func (s *ModerationCommandsTestSuite) TestRejectAndReopen() {
	s.Run("rejects a pending booking", func() {
		view := s.createPending(3, 10, s.f.requesterID)

		rejected, err := s.mod.Reject(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled.String(), rejected.Status)
	})

	s.Run("reopens a cancelled booking back into the queue", func() {
		view := s.createPending(3, 10, s.f.requesterID)
		_, err := s.mod.Reject(s.ctx, view.ID)
		s.Require().NoError(err)

		reopened, err := s.mod.Reopen(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Equal(booking.StatusPending.String(), reopened.Status)
	})

	s.Run("rejecting an approved booking is an invalid transition", func() {
		view := s.createPending(3, 10, s.f.requesterID)
		_, err := s.mod.Approve(s.ctx, view.ID)
		s.Require().NoError(err)

		_, err = s.mod.Reject(s.ctx, view.ID)
		s.Require().ErrorIs(err, booking.ErrInvalidTransition)
	})

	s.Run("reopening a pending booking is an invalid transition", func() {
		view := s.createPending(3, 10, s.f.requesterID)

		_, err := s.mod.Reopen(s.ctx, view.ID)
		s.Require().ErrorIs(err, booking.ErrInvalidTransition)
	})
}

func (s *ModerationCommandsTestSuite) TestComplete() {
	s.Run("completes an approved booking and frees the room", func() {
		view := s.createPending(3, 10, s.f.requesterID)
		_, err := s.mod.Approve(s.ctx, view.ID)
		s.Require().NoError(err)

		completed, err := s.mod.Complete(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Equal(booking.StatusCompleted.String(), completed.Status)

		roomEntity, err := s.f.rooms.FindByID(s.ctx, s.f.roomID)
		s.Require().NoError(err)
		s.Equal(room.StateAvailable, roomEntity.State())
	})

	s.Run("completing a pending booking is an invalid transition", func() {
		view := s.createPending(3, 10, s.f.requesterID)

		_, err := s.mod.Complete(s.ctx, view.ID)
		s.Require().ErrorIs(err, booking.ErrInvalidTransition)
	})
}

func (s *ModerationCommandsTestSuite) TestDelete() {
	s.Run("removes the booking entirely", func() {
		view := s.createPending(3, 10, s.f.requesterID)

		s.Require().NoError(s.mod.Delete(s.ctx, view.ID))

		_, err := s.f.bookings.FindByID(s.ctx, view.ID)
		s.Require().Error(err)
	})

	s.Run("deleting an approved booking frees the room", func() {
		view := s.createPending(3, 10, s.f.requesterID)
		_, err := s.mod.Approve(s.ctx, view.ID)
		s.Require().NoError(err)

		s.Require().NoError(s.mod.Delete(s.ctx, view.ID))

		roomEntity, err := s.f.rooms.FindByID(s.ctx, s.f.roomID)
		s.Require().NoError(err)
		s.Equal(room.StateAvailable, roomEntity.State())
	})

	s.Run("unknown booking", func() {
		err := s.mod.Delete(s.ctx, uuid.New())
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})
}
