package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

// fakeOpenAI serves scripted chat-completion replies per model.
type fakeOpenAI struct {
	mu      sync.Mutex
	scripts map[string][]reply
	calls   map[string]int
}

func newFakeOpenAI(t *testing.T, scripts map[string][]reply) (*fakeOpenAI, *httptest.Server) {
	f := &fakeOpenAI{scripts: scripts, calls: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeOpenAI) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/chat/completions" {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	var req struct {
		Model string `json:"model"`
	}
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &req)

	f.mu.Lock()
	n := f.calls[req.Model]
	f.calls[req.Model] = n + 1
	script := f.scripts[req.Model]
	f.mu.Unlock()

	rep := reply{status: http.StatusNotFound, body: openAIError("model does not exist")}
	if len(script) > 0 {
		rep = script[len(script)-1]
		if n < len(script) {
			rep = script[n]
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if rep.retryAfter != "" {
		w.Header().Set("Retry-After", rep.retryAfter)
	}
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

func (f *fakeOpenAI) callsFor(model string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[model]
}

func openAIError(msg string) string {
	b, _ := json.Marshal(map[string]any{
		"error": map[string]any{"message": msg, "type": "invalid_request_error", "code": nil},
	})
	return string(b)
}

func openAIChoice(text string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-a",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": text},
			"finish_reason": "stop",
		}},
	})
	return string(b)
}

func newOpenAITestClient(srv *httptest.Server, rec *delayRecorder) *Client {
	transport := NewOpenAITransport(Config{APIKey: testKey, BaseURL: srv.URL + "/v1"})
	return New(transport, testKey,
		WithDelay(rec.delay),
		WithModels("gpt-a", "gpt-b"),
		WithCredentialEnv("OPENAI_API_KEY"))
}

func TestOpenAI_RateLimitHonoursRetryAfter(t *testing.T) {
	fake, srv := newFakeOpenAI(t, map[string][]reply{
		"gpt-a": {
			{status: 429, body: openAIError("slow down"), retryAfter: "7"},
			{status: 503, body: openAIError("overloaded")},
			{status: 200, body: openAIChoice("hello")},
		},
	})
	rec := &delayRecorder{}

	text, err := newOpenAITestClient(srv, rec).Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, 3, fake.callsFor("gpt-a"))
	assert.Equal(t, []time.Duration{7 * time.Second, 3 * time.Second}, rec.waits)
}

func TestOpenAI_NotFoundMovesToNextModel(t *testing.T) {
	fake, srv := newFakeOpenAI(t, map[string][]reply{
		"gpt-a": {{status: 404, body: openAIError("model gpt-a does not exist")}},
		"gpt-b": {{status: 200, body: openAIChoice("from b")}},
	})
	rec := &delayRecorder{}

	text, err := newOpenAITestClient(srv, rec).Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "from b", text)
	assert.Equal(t, 1, fake.callsFor("gpt-a"))
	assert.Empty(t, rec.waits)
}

func TestOpenAI_UnauthorizedIsTerminal(t *testing.T) {
	fake, srv := newFakeOpenAI(t, map[string][]reply{
		"gpt-a": {{status: 401, body: openAIError("Incorrect API key provided")}},
		"gpt-b": {{status: 200, body: openAIChoice("never")}},
	})
	rec := &delayRecorder{}

	_, err := newOpenAITestClient(srv, rec).Generate(context.Background(), "p")

	require.Error(t, err)
	assert.Equal(t, KindInvalidCredential, KindOf(err))
	assert.Equal(t, "Invalid API key (401). Check your OPENAI_API_KEY.", err.Error())
	assert.Zero(t, fake.callsFor("gpt-b"))
	assert.Empty(t, rec.waits)
}

func TestSDKErrorResult(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("api error keeps status and retry-after", func(t *testing.T) {
		header := http.Header{}
		header.Set("Retry-After", "12")
		res, err := sdkErrorResult(&googleapi.Error{Code: 429, Message: "quota", Header: header}, now)
		require.NoError(t, err)
		assert.Equal(t, callResult{StatusCode: 429, Body: "quota", RetryAfter: 12 * time.Second}, res)
	})

	t.Run("api error without header", func(t *testing.T) {
		res, err := sdkErrorResult(&googleapi.Error{Code: 404, Message: "no model"}, now)
		require.NoError(t, err)
		assert.Equal(t, 404, res.StatusCode)
		assert.True(t, modelUnavailableStatus(res.StatusCode, res.Body))
	})

	t.Run("blocked prompt is unknown", func(t *testing.T) {
		_, err := sdkErrorResult(&genai.BlockedError{}, now)
		assert.Equal(t, KindUnknown, KindOf(err))
	})

	t.Run("transport error stays plain", func(t *testing.T) {
		_, err := sdkErrorResult(errors.New("dial tcp: refused"), now)
		require.Error(t, err)
		var f *Failure
		assert.False(t, errors.As(err, &f))
	})
}
