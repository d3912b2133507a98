package catalog_fx

import (
	"travelwise/internal/config"
	"travelwise/internal/repositories"
	"travelwise/internal/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	repositories.NewCatalogRepository,
	services.NewCatalogService,
	provideFavoritesRepo,
	services.NewFavoritesService)

func provideFavoritesRepo(rdb *redis.Client, cfg *config.Config) repositories.FavoritesRepository {
	return repositories.NewFavoritesRepository(rdb, cfg.RedisPrefix)
}
