package db_fx

import (
	"context"
	"travelwise/internal/config"
	"travelwise/internal/infra"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Invoke(migrate))

func provideDB(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.NewPostgres(cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(func() {
		infra.ClosePostgres(db, logger)
	}))
	return db, nil
}

func migrate(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB, logger *zap.Logger) {
	if !cfg.RunMigrations {
		return
	}
	lc.Append(fx.StartHook(func(ctx context.Context) error {
		return infra.RunMigrations(ctx, db, logger)
	}))
}
