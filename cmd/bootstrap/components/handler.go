package components

import (
	"tablebook/internal/handler"
	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewAdminHandler,
		api.NewPaymentHandler,
		api.NewStreamHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	adminHandler *api.AdminHandler,
	paymentHandler *api.PaymentHandler,
	streamHandler *api.StreamHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    authHandler,
		Booking: bookingHandler,
		Admin:   adminHandler,
		Payment: paymentHandler,
		Stream:  streamHandler,
	}
}
