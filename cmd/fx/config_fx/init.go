package config_fx

import (
	"travelwise/internal/config"
	"travelwise/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(
	provideConfig,
	provideLogger)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

// provideLogger also installs the logger globally; HandleServiceError logs
// through zap.L().
func provideLogger(lc fx.Lifecycle, cfg *config.Config) *zap.Logger {
	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	restore := zap.ReplaceGlobals(l)

	lc.Append(fx.StopHook(func() {
		_ = l.Sync()
		restore()
	}))
	return l
}
