package generation_fx

import (
	"travelwise/internal/config"
	"travelwise/internal/services"
	"travelwise/pkg/aiclient"
	mem "travelwise/pkg/memcache"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(
	provideGenerationClient,
	services.NewPromptBuilder,
	provideItineraryParser,
	provideItineraryService)

func provideGenerationClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (aiclient.GenerationClientInterface, error) {
	client, err := aiclient.NewGenerationClient(cfg.AIClientConfig(), logger)
	if err != nil {
		return nil, err
	}
	logger.Info("generation client ready",
		zap.String("provider", client.Provider()),
		zap.Strings("models", client.Models()))

	lc.Append(fx.StopHook(client.Close))
	return client, nil
}

func provideItineraryParser(cfg *config.Config) services.ItineraryParserInterface {
	p := cfg.Parser
	return services.NewItineraryParser(services.ParserOptions{
		MinProseLength:      p.MinProseLength,
		BulletPrefixes:      p.BulletPrefixes,
		TitleMaxLength:      p.TitleMaxLength,
		ProseTitleMaxLength: p.ProseTitleMaxLength,
		MaxDays:             p.MaxDays,
		MergeSynthetic:      p.MergeSynthetic,
	}, nil)
}

func provideItineraryService(
	cfg *config.Config,
	prompts services.PromptBuilderInterface,
	client aiclient.GenerationClientInterface,
	parser services.ItineraryParserInterface,
	cache mem.GenerationCache,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(
		prompts,
		client,
		parser,
		cache,
		services.ParsePromptStyle(cfg.Generation.PromptStyle),
		logger,
	)
}
