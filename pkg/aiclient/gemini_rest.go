package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float32 `json:"temperature"`
}

// Every level of the envelope is optional.
type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiRESTTransport calls the v1 generateContent endpoint over plain HTTP.
type GeminiRESTTransport struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	temperature float32
	userAgent   string
	now         func() time.Time
}

func NewGeminiRESTTransport(cfg Config) *GeminiRESTTransport {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}

	return &GeminiRESTTransport{
		httpClient:  newHTTPClient(cfg),
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		temperature: temperature,
		userAgent:   userAgent,
		now:         time.Now,
	}
}

func (t *GeminiRESTTransport) Name() string {
	return "Gemini"
}

func (t *GeminiRESTTransport) Close() error {
	t.httpClient.CloseIdleConnections()
	return nil
}

func (t *GeminiRESTTransport) endpoint(model string) string {
	return fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s",
		t.baseURL, url.PathEscape(model), url.QueryEscape(t.apiKey))
}

func (t *GeminiRESTTransport) Call(ctx context.Context, model, prompt string) (callResult, error) {
	payload, err := json.Marshal(generateRequest{
		Contents:         []requestContent{{Parts: []requestPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: t.temperature},
	})
	if err != nil {
		return callResult{}, unknownFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(model), bytes.NewReader(payload))
	if err != nil {
		return callResult{}, unknownFailure(err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return callResult{}, fmt.Errorf("gemini: do request: %w", stripURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return callResult{}, fmt.Errorf("gemini: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return callResult{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), t.now()),
			Body:       strings.TrimSpace(string(body)),
		}, nil
	}

	text, err := extractText(body)
	if err != nil {
		return callResult{}, err
	}
	return callResult{StatusCode: resp.StatusCode, Text: text}, nil
}

// extractText joins all text parts of the first candidate.
func extractText(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", emptyBody()
	}

	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", unknownFailure(err)
	}
	if len(envelope.Candidates) == 0 || envelope.Candidates[0].Content == nil {
		return "", noCandidates()
	}

	parts := envelope.Candidates[0].Content.Parts
	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		if part.Text != nil {
			texts = append(texts, *part.Text)
		} else {
			texts = append(texts, "")
		}
	}

	text := strings.TrimSpace(strings.Join(texts, "\n"))
	if text == "" {
		return "", noCandidates()
	}
	return text, nil
}

// stripURL drops the request URL from transport errors so the key in the
// query string never reaches a log line or a user message.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
