package components

import (
	"roomreserve/internal/handler"
	"roomreserve/internal/handler/api"
	"roomreserve/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewRoomHandler,
		api.NewModerationHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	booking *api.BookingHandler,
	room *api.RoomHandler,
	moderation *api.ModerationHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:       auth,
		Booking:    booking,
		Room:       room,
		Moderation: moderation,
	}
}
