package components

import (
	"eventmarket/internal/handler"
	"eventmarket/internal/handler/api"
	"eventmarket/internal/handler/middleware"
	"eventmarket/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			func(svc *jwt.Service) *jwt.Service { return svc },
			fx.As(new(middleware.TokenValidator)),
		),
		api.NewRequestHandler,
		api.NewQuoteHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
