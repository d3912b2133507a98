package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelwise/pkg/aiclient"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini", cfg.Generation.Provider)
	assert.Equal(t, 4, cfg.Generation.MaxAttempts)
	assert.Equal(t, 1500*time.Millisecond, cfg.Generation.InitialBackoff)
	assert.Equal(t, 15*time.Second, cfg.Generation.MaxBackoff)
	assert.Equal(t, time.Hour, cfg.Generation.CacheTTL)
	assert.Equal(t, 20, cfg.Parser.MinProseLength)
	assert.Equal(t, []string{"-", "*"}, cfg.Parser.BulletPrefixes)
	assert.True(t, cfg.Parser.MergeSynthetic)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("GENERATION_INITIAL_BACKOFF", "2s")
	t.Setenv("PARSER_BULLET_PREFIXES", "-,*,•")

	cfg, err := Parse()
	require.NoError(t, err)

	ai := cfg.AIClientConfig()
	assert.Equal(t, aiclient.ProviderOpenAI, ai.Provider)
	assert.Equal(t, "sk-test", ai.APIKey)
	assert.Equal(t, "gpt-4o", ai.Model)
	assert.Equal(t, 2*time.Second, ai.Retry.InitialBackoff)
	assert.True(t, ai.JSONResponse)
	assert.Equal(t, []string{"-", "*", "•"}, cfg.Parser.BulletPrefixes)
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "provider", key: "GENERATION_PROVIDER", val: "llama"},
		{name: "prompt style", key: "PROMPT_STYLE", val: "poem"},
		{name: "attempts", key: "GENERATION_MAX_ATTEMPTS", val: "0"},
		{name: "max days", key: "PARSER_MAX_DAYS", val: "0"},
		{name: "duration syntax", key: "GENERATION_MAX_BACKOFF", val: "soon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestAIClientConfig_GeminiUsesGeminiSettings(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("PROMPT_STYLE", "free_text")

	cfg, err := Parse()
	require.NoError(t, err)

	ai := cfg.AIClientConfig()
	assert.Equal(t, "gemini-key", ai.APIKey)
	assert.Equal(t, "gemini-2.5-pro", ai.Model)
	assert.Equal(t, aiclient.DefaultGeminiBaseURL, ai.BaseURL)
	assert.False(t, ai.JSONResponse)
}
