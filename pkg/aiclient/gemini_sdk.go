package aiclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiSDKTransport goes through the official Go SDK. The SDK client is
// created on first use so a bad key is rejected by the credential check
// before any client is dialed.
type GeminiSDKTransport struct {
	apiKey       string
	temperature  float32
	jsonResponse bool

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGeminiSDKTransport(cfg Config) *GeminiSDKTransport {
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}
	return &GeminiSDKTransport{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		temperature:  temperature,
		jsonResponse: cfg.JSONResponse,
	}
}

func (t *GeminiSDKTransport) Name() string {
	return "Gemini"
}

func (t *GeminiSDKTransport) ensureClient() (*genai.Client, error) {
	t.once.Do(func() {
		t.client, t.initErr = genai.NewClient(context.Background(), option.WithAPIKey(t.apiKey))
		if t.initErr != nil {
			t.initErr = fmt.Errorf("failed to create Gemini client: %w", t.initErr)
		}
	})
	return t.client, t.initErr
}

func (t *GeminiSDKTransport) Call(ctx context.Context, model, prompt string) (callResult, error) {
	client, err := t.ensureClient()
	if err != nil {
		return callResult{}, unknownFailure(err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(t.temperature)
	if t.jsonResponse {
		m.ResponseMIMEType = "application/json"
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return sdkErrorResult(err, time.Now())
	}

	text := joinCandidateText(resp)
	if text == "" {
		return callResult{}, noCandidates()
	}
	return callResult{StatusCode: 200, Text: text}, nil
}

func joinCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			texts = append(texts, string(txt))
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

func (t *GeminiSDKTransport) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}

// sdkErrorResult turns an SDK error into the status form the retry loop
// classifies. Errors without an HTTP status stay errors.
func sdkErrorResult(err error, now time.Time) (callResult, error) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		res := callResult{StatusCode: apiErr.Code, Body: apiErr.Message}
		if apiErr.Header != nil {
			res.RetryAfter = parseRetryAfter(apiErr.Header.Get("Retry-After"), now)
		}
		return res, nil
	}
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return callResult{}, unknownFailure(blocked)
	}
	return callResult{}, fmt.Errorf("gemini sdk: %w", err)
}
