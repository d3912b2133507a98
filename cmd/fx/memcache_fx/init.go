package memcache_fx

import (
	"travelwise/internal/config"
	mem "travelwise/pkg/memcache"

	"go.uber.org/fx"
)

var Module = fx.Provide(provideGenerationCache)

func provideGenerationCache(cfg *config.Config) mem.GenerationCache {
	return mem.NewGenerationCache(cfg.Generation.CacheTTL)
}
