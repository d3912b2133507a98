package services

import (
	"context"
	"time"
	"travelwise/internal/models/request_models"
	"travelwise/internal/models/response_models"
	"travelwise/pkg/aiclient"
	"travelwise/pkg/memcache"
	"travelwise/pkg/utils"

	"go.uber.org/zap"
)

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, req request_models.TripRequest) (*response_models.ItineraryResponse, error)
	ParseItinerary(raw string, req request_models.TripRequest) (*response_models.ItineraryResponse, error)
	BuildPrompt(req request_models.TripRequest, style string) (*response_models.PromptPreviewResponse, error)
	GenerateTripPlan(ctx context.Context, prompt string) string
}

type ItineraryService struct {
	prompts      PromptBuilderInterface
	client       aiclient.GenerationClientInterface
	parser       ItineraryParserInterface
	cache        memcache.GenerationCache
	defaultStyle PromptStyle
	logger       *zap.Logger
}

func NewItineraryService(
	prompts PromptBuilderInterface,
	client aiclient.GenerationClientInterface,
	parser ItineraryParserInterface,
	cache memcache.GenerationCache,
	defaultStyle PromptStyle,
	logger *zap.Logger,
) ItineraryServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = memcache.NewGenerationCache(0)
	}
	return &ItineraryService{
		prompts:      prompts,
		client:       client,
		parser:       parser,
		cache:        cache,
		defaultStyle: defaultStyle,
		logger:       logger.Named("itinerary"),
	}
}

func (s *ItineraryService) styleFor(req request_models.TripRequest) PromptStyle {
	if req.Style != "" {
		return ParsePromptStyle(req.Style)
	}
	return s.defaultStyle
}

// GenerateItinerary runs the whole pipeline. Generation failures come back
// as *aiclient.Failure untouched so the caller can map them by kind.
func (s *ItineraryService) GenerateItinerary(ctx context.Context, req request_models.TripRequest) (*response_models.ItineraryResponse, error) {
	req = req.Normalized()
	if err := ValidateTripRequest(req); err != nil {
		return nil, err
	}

	prompt := s.prompts.Build(req, s.styleFor(req))
	key := memcache.CacheKey(s.client.Provider(), prompt)

	raw, hit := s.cache.Get(key)
	if !hit {
		startTime := time.Now()
		text, err := s.client.Generate(ctx, prompt)
		if err != nil {
			s.logger.Warn("generation failed",
				zap.String("destination", req.Destination),
				zap.String("kind", string(aiclient.KindOf(err))),
				zap.Error(err),
			)
			return nil, err
		}
		s.logger.Info("generation finished",
			zap.String("destination", req.Destination),
			zap.Duration("took", time.Since(startTime)),
		)
		s.cache.Set(key, text)
		raw = text
	}

	return s.present(raw, req, hit)
}

// ParseItinerary parses text a client obtained from the model itself.
func (s *ItineraryService) ParseItinerary(raw string, req request_models.TripRequest) (*response_models.ItineraryResponse, error) {
	return s.present(raw, req.Normalized(), false)
}

func (s *ItineraryService) present(raw string, req request_models.TripRequest, cached bool) (*response_models.ItineraryResponse, error) {
	result := s.parser.Parse(raw, req)
	if len(result.Days) == 0 {
		return nil, utils.ErrItineraryUnavailable
	}

	s.logger.Debug("itinerary parsed",
		zap.String("tier", string(result.Tier)),
		zap.Int("days", len(result.Days)),
		zap.Bool("cached", cached),
	)

	return &response_models.ItineraryResponse{
		Destination:    req.Destination,
		HeaderImageURL: DestinationHeaderImage(req.Destination),
		SourceTier:     string(result.Tier),
		Days:           result.Days,
	}, nil
}

func (s *ItineraryService) BuildPrompt(req request_models.TripRequest, style string) (*response_models.PromptPreviewResponse, error) {
	req = req.Normalized()
	if req.Destination == "" {
		return nil, utils.ErrInvalidInput
	}

	resolved := s.defaultStyle
	if style != "" {
		resolved = ParsePromptStyle(style)
	} else if req.Style != "" {
		resolved = ParsePromptStyle(req.Style)
	}

	return &response_models.PromptPreviewResponse{
		Style:  string(resolved),
		Prompt: s.prompts.Build(req, resolved),
	}, nil
}

func (s *ItineraryService) GenerateTripPlan(ctx context.Context, prompt string) string {
	return s.client.GenerateTripPlan(ctx, prompt)
}
