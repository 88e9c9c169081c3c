package bootstrap

import (
	"tablebook/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.AdminConfig { return cfg.Admin },
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	),
)
