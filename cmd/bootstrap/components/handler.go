package components

import (
	"class-booking/internal/handler"
	"class-booking/internal/handler/api"
	"class-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewClassHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		func(c *api.ClassHandler, b *api.BookingHandler) handler.Handlers {
			return handler.Handlers{Class: c, Booking: b}
		},
	),
	fx.Invoke(handler.NewRouter),
)
