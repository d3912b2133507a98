package account_fx

import (
	"errors"
	"travelwise/internal/config"
	"travelwise/internal/repositories"
	"travelwise/internal/services"
	"travelwise/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideTokenManager,
	provideAccountRepo,
	provideSessionRepo,
	provideAccountService)

func provideTokenManager(cfg *config.Config) (*utils.TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL), nil
}

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideSessionRepo(rdb *redis.Client, cfg *config.Config) repositories.SessionRepository {
	return repositories.NewSessionRepository(rdb, cfg.RedisPrefix)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	sessionRepo repositories.SessionRepository,
	tokens *utils.TokenManager,
	logger *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, sessionRepo, tokens, logger)
}
