package components

import (
	"context"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra/allocator"
	"tablebook/internal/notify"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"go.uber.org/fx"
)

// InfraModule wires the non-store infrastructure: the slot allocator (with
// its startup warm-up from active bookings), the notification hub, and the
// fixed table inventory.
var InfraModule = fx.Module("infra",
	fx.Provide(
		table.DefaultLayout,
		notify.NewHub,
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(commands.EventPublisher)),
		),
		fx.Annotate(
			NewSlotAllocator,
			fx.As(new(commands.SlotAllocator)),
			fx.As(new(queries.SlotChecker)),
		),
	),
)

func NewEventPublisher(hub *notify.Hub) *notify.Hub {
	return hub
}

// NewSlotAllocator rebuilds occupancy from the store before the server
// starts accepting requests, so a restart never double-books held slots.
func NewSlotAllocator(lc fx.Lifecycle, repo commands.BookingRepository) *allocator.SlotAllocator {
	a := allocator.New()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			active, err := repo.ListActive(ctx)
			if err != nil {
				return err
			}
			slots := make([]booking.Slot, len(active))
			for i, b := range active {
				slots[i] = b.Slot()
			}
			a.Warm(slots)
			return nil
		},
	})

	return a
}
