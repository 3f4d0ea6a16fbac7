package components

import (
	"cinema-booking/internal/domain/booking"
	"cinema-booking/internal/domain/offer"
	"cinema-booking/internal/domain/pricing"
	"cinema-booking/internal/pkg/clock"
	"cinema-booking/internal/pkg/config"
	"cinema-booking/internal/usecase/commands"
	"cinema-booking/internal/usecase/queries"
	"cinema-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		pricing.NewStandardCalculator,
		fx.As(new(pricing.Calculator)),
	),
	offer.NewEngine,
	booking.NewFactory,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewPricingQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.ExpiryCommands {
			return commands.NewExpiryCommands(uow, clk, cfg.Booking.HoldDuration)
		},
	),
)
