package components

import (
	"context"

	"tablebook/internal/pkg/clock"
	"tablebook/internal/usecase"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(StartPaymentSweeper),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	commands.NewTransitioner,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewModerationCommands,
		commands.NewPaymentSweeper,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// StartPaymentSweeper runs the stale-payment sweep for the process
// lifetime. A zero payment timeout leaves it off entirely.
func StartPaymentSweeper(lc fx.Lifecycle, sweeper *commands.PaymentSweeper) {
	if !sweeper.Enabled() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				sweeper.Run(ctx)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
