package redis_fx

import (
	"context"
	"travelwise/internal/config"
	"travelwise/internal/infra"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(provideRedis)

func provideRedis(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client, err := infra.NewRedis(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	lc.Append(fx.StopHook(client.Close))
	return client, nil
}
