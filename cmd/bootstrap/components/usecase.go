package components

import (
	"roomreserve/internal/domain/booking"
	"roomreserve/internal/pkg/clock"
	"roomreserve/internal/pkg/keylock"
	"roomreserve/internal/usecase"
	"roomreserve/internal/usecase/commands"
	"roomreserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	keylock.New,
	fx.Annotate(
		booking.NewOnePerDayPolicy,
		fx.As(new(booking.QuotaPolicy)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		newBookingCommands,
		commands.NewModerationCommands,
		commands.NewRoomCommands,
	),
)

func newBookingCommands(
	bookings commands.BookingRepository,
	rooms commands.RoomRepository,
	users queries.UserReadStore,
	quota booking.QuotaPolicy,
	locks *keylock.KeyLock,
	clk clock.Clock,
) commands.BookingCommands {
	return commands.NewBookingCommands(bookings, rooms, users, quota, locks, clk)
}

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewRoomQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
