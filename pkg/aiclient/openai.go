package aiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAITransport sends the prompt as a single user chat message.
type OpenAITransport struct {
	client       *openai.Client
	temperature  float32
	jsonResponse bool
	now          func() time.Time
}

type retryAfterKey struct{}

// retryAfterRecorder copies each response's Retry-After header into the
// *string carried on the request context. go-openai drops response headers
// from the errors it returns.
type retryAfterRecorder struct {
	base http.RoundTripper
}

func (r retryAfterRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.base.RoundTrip(req)
	if err == nil {
		if slot, ok := req.Context().Value(retryAfterKey{}).(*string); ok {
			*slot = resp.Header.Get("Retry-After")
		}
	}
	return resp, err
}

func NewOpenAITransport(cfg Config) *OpenAITransport {
	oc := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		oc.BaseURL = base
	}
	hc := newHTTPClient(cfg)
	hc.Transport = retryAfterRecorder{base: hc.Transport}
	oc.HTTPClient = hc

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}
	return &OpenAITransport{
		client:       openai.NewClientWithConfig(oc),
		temperature:  temperature,
		jsonResponse: cfg.JSONResponse,
		now:          time.Now,
	}
}

func (t *OpenAITransport) Name() string {
	return "OpenAI"
}

func (t *OpenAITransport) Close() error {
	return nil
}

func (t *OpenAITransport) Call(ctx context.Context, model, prompt string) (callResult, error) {
	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: t.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if t.jsonResponse {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var retryAfter string
	ctx = context.WithValue(ctx, retryAfterKey{}, &retryAfter)

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
			return callResult{
				StatusCode: apiErr.HTTPStatusCode,
				Body:       apiErr.Message,
				RetryAfter: parseRetryAfter(retryAfter, t.now()),
			}, nil
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
			body := strings.TrimSpace(string(reqErr.Body))
			if body == "" && reqErr.Err != nil {
				body = reqErr.Err.Error()
			}
			return callResult{
				StatusCode: reqErr.HTTPStatusCode,
				Body:       body,
				RetryAfter: parseRetryAfter(retryAfter, t.now()),
			}, nil
		}
		return callResult{}, fmt.Errorf("openai: %w", stripURL(err))
	}

	if len(resp.Choices) == 0 {
		return callResult{}, noCandidates()
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return callResult{}, noCandidates()
	}
	return callResult{StatusCode: 200, Text: text}, nil
}
