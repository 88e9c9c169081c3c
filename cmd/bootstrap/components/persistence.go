package components

import (
	"context"

	"tablebook/internal/infra/db"
	"tablebook/internal/infra/memstore"
	"tablebook/internal/infra/repository"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"go.uber.org/fx"
)

// BookingStore is the full persistence surface, both the write contract of
// the commands layer and the read side used by queries. Overlapping methods
// share one signature, so one concrete store serves both.
type BookingStore interface {
	commands.BookingRepository
	queries.BookingReadStore
}

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			NewBookingStore,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

// NewBookingStore selects the backend from config. The memory backend keeps
// everything process-local (used in tests and single-node setups); postgres
// opens a pgx pool whose shutdown is tied to the fx lifecycle.
func NewBookingStore(lc fx.Lifecycle, cfg config.Config) (BookingStore, error) {
	if cfg.DB.Driver == "memory" {
		return memstore.NewBookingStore(), nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return repository.NewBookingStore(pool), nil
}
