package components

import (
	"eventmarket/internal/pkg/clock"
	"eventmarket/internal/usecase/commands"
	"eventmarket/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRequestUseCase,
		commands.NewQuoteUseCase,
		commands.NewBookingUseCase,
		commands.NewPaymentUseCase,
		commands.NewCancellationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRequestQueries,
		queries.NewQuoteQueries,
		queries.NewBookingQueries,
	),
)
