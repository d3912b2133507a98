package aiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderGemini    = "gemini"
	ProviderGeminiSDK = "gemini-sdk"
	ProviderOpenAI    = "openai"

	// MinCredentialLength is the shortest key accepted before any network call.
	MinCredentialLength = 30

	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultUserAgent     = "TravelWise/1.0 (Go)"
)

var (
	DefaultGeminiModels = []string{"gemini-2.5-flash", "gemini-2.5-pro"}
	DefaultOpenAIModels = []string{"gpt-4o-mini", "gpt-4o"}
)

// GenerationClientInterface is what the itinerary pipeline depends on.
type GenerationClientInterface interface {
	// Generate returns the model text, or a *Failure.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateTripPlan collapses Generate into a single display string.
	GenerateTripPlan(ctx context.Context, prompt string) string
	GenerateAsync(ctx context.Context, prompt string) <-chan Outcome
	Provider() string
	Close() error
}

// Transport performs exactly one request against one model.
//
// A 2xx reply must come back with Text set. Any other status comes back as a
// callResult with Body and RetryAfter filled in. A returned *Failure is
// terminal for the whole call; any other error is treated as a transient
// network problem.
type Transport interface {
	Name() string
	Call(ctx context.Context, model, prompt string) (callResult, error)
	Close() error
}

type callResult struct {
	StatusCode int
	RetryAfter time.Duration
	Body       string
	Text       string
}

// Config describes a generation backend.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	Temperature    float32
	JSONResponse   bool
	ConnectTimeout time.Duration
	CallTimeout    time.Duration
	UserAgent      string
	Retry          RetryPolicy
}

type Client struct {
	transport     Transport
	apiKey        string
	credentialEnv string
	models        []string
	policy        RetryPolicy
	delay         DelayFunc
	logger        *zap.Logger
}

type Option func(*Client)

func WithDelay(delay DelayFunc) Option {
	return func(c *Client) {
		if delay != nil {
			c.delay = delay
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.policy = policy.normalized()
	}
}

// WithModels replaces the candidate model list. Blank entries are ignored.
func WithModels(models ...string) Option {
	return func(c *Client) {
		cleaned := make([]string, 0, len(models))
		for _, m := range models {
			if m = strings.TrimSpace(m); m != "" {
				cleaned = append(cleaned, m)
			}
		}
		if len(cleaned) > 0 {
			c.models = cleaned
		}
	}
}

func WithCredentialEnv(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.credentialEnv = name
		}
	}
}

// New builds a client around an explicit transport.
func New(transport Transport, apiKey string, opts ...Option) *Client {
	c := &Client{
		transport:     transport,
		apiKey:        strings.TrimSpace(apiKey),
		credentialEnv: "GEMINI_API_KEY",
		models:        append([]string(nil), DefaultGeminiModels...),
		policy:        DefaultRetryPolicy(),
		delay:         SleepContext,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewGenerationClient picks a transport for cfg.Provider.
func NewGenerationClient(cfg Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	var (
		transport     Transport
		defaults      []string
		credentialEnv string
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		transport = NewGeminiRESTTransport(cfg)
		defaults, credentialEnv = DefaultGeminiModels, "GEMINI_API_KEY"
	case ProviderGeminiSDK:
		transport = NewGeminiSDKTransport(cfg)
		defaults, credentialEnv = DefaultGeminiModels, "GEMINI_API_KEY"
	case ProviderOpenAI:
		transport = NewOpenAITransport(cfg)
		defaults, credentialEnv = DefaultOpenAIModels, "OPENAI_API_KEY"
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use '%s', '%s' or '%s'",
			cfg.Provider, ProviderGemini, ProviderGeminiSDK, ProviderOpenAI)
	}

	base := []Option{
		WithModels(defaults...),
		WithModels(cfg.Model),
		WithRetryPolicy(cfg.Retry),
		WithLogger(logger),
		WithCredentialEnv(credentialEnv),
	}
	return New(transport, cfg.APIKey, append(base, opts...)...), nil
}

func (c *Client) Provider() string {
	return c.transport.Name()
}

// Models returns the candidate models in the order they are tried.
func (c *Client) Models() []string {
	return append([]string(nil), c.models...)
}

func (c *Client) Close() error {
	return c.transport.Close()
}

func (c *Client) checkCredential() *Failure {
	if c.apiKey == "" {
		return missingCredential(c.credentialEnv)
	}
	if len(c.apiKey) < MinCredentialLength {
		return invalidCredentialShape(c.transport.Name())
	}
	return nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if f := c.checkCredential(); f != nil {
		return "", f
	}

	var last *Failure
	for i, model := range c.models {
		text, f := c.generateWithModel(ctx, model, prompt)
		if f == nil {
			return text, nil
		}

		switch f.Kind {
		case KindModelUnavailable, KindRateLimited, KindServiceError, KindNetworkError:
			last = f
			if i < len(c.models)-1 {
				c.logger.Warn("generation model failed, trying next candidate",
					zap.String("model", model),
					zap.String("kind", string(f.Kind)),
					zap.String("next_model", c.models[i+1]))
			}
		default:
			return "", f
		}
	}

	if last == nil {
		return "", exhausted()
	}
	return "", last
}

func (c *Client) generateWithModel(ctx context.Context, model, prompt string) (string, *Failure) {
	state := newRetryState(c.policy)

	for {
		if err := ctx.Err(); err != nil {
			return "", canceled(model, err)
		}

		res, err := c.transport.Call(ctx, model, prompt)
		if err != nil {
			var f *Failure
			if errors.As(err, &f) {
				f.Model = model
				return "", f
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", canceled(model, ctxErr)
			}

			wait, ok := state.fail(0)
			if !ok {
				return "", networkFailure(model, err)
			}
			c.logger.Warn("generation request failed, backing off",
				zap.String("model", model),
				zap.Int("attempt", state.attempts()),
				zap.Duration("wait", wait),
				zap.Error(err))
			if derr := c.delay(ctx, wait); derr != nil {
				return "", canceled(model, derr)
			}
			continue
		}

		if res.StatusCode >= 200 && res.StatusCode < 300 {
			return res.Text, nil
		}

		if retryableStatus(res.StatusCode) {
			var retryAfter time.Duration
			if res.StatusCode == http.StatusTooManyRequests {
				retryAfter = res.RetryAfter
			}
			wait, ok := state.fail(retryAfter)
			if !ok {
				return "", exhaustedStatus(c.transport.Name(), model, res.StatusCode)
			}
			c.logger.Warn("generation endpoint busy, backing off",
				zap.String("model", model),
				zap.Int("status", res.StatusCode),
				zap.Int("attempt", state.attempts()),
				zap.Duration("wait", wait))
			if derr := c.delay(ctx, wait); derr != nil {
				return "", canceled(model, derr)
			}
			continue
		}

		if modelUnavailableStatus(res.StatusCode, res.Body) {
			return "", modelUnavailable(model, res.StatusCode, res.Body)
		}
		return "", statusFailure(model, res.StatusCode, res.Body, c.credentialEnv)
	}
}

func (c *Client) GenerateTripPlan(ctx context.Context, prompt string) string {
	text, err := c.Generate(ctx, prompt)
	return Outcome{Text: text, Err: err}.Message()
}

// newHTTPClient bounds connect and whole-call time.
func newHTTPClient(cfg Config) *http.Client {
	connect := cfg.ConnectTimeout
	if connect <= 0 {
		connect = 30 * time.Second
	}
	call := cfg.CallTimeout
	if call <= 0 {
		call = 90 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connect, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = connect
	transport.ResponseHeaderTimeout = call

	return &http.Client{Timeout: call, Transport: transport}
}
