package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

var sampleInput = domain.MotivationInput{
	HabitName:         "Meditate",
	CompletionHistory: "2024-06-09,2024-06-10",
	StreakLength:      2,
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := buildPrompt(sampleInput)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Habit Name: Meditate")
	assert.Contains(t, prompt, "Completion History: 2024-06-09,2024-06-10")
	assert.Contains(t, prompt, "Streak Length: 2")
	assert.Contains(t, prompt, "keep it alive")
	assert.Contains(t, prompt, "no more than 2 sentences")

	empty, err := buildPrompt(domain.MotivationInput{HabitName: "Run"})
	require.NoError(t, err)
	assert.Contains(t, empty, "(no completions yet)")
	assert.NotContains(t, empty, "keep it alive")
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{"json", `{"message": "Keep going!"}`, "Keep going!", nil},
		{"fenced json", "```json\n{\"message\": \"Nice work.\"}\n```", "Nice work.", nil},
		{"plain text", "You got this.", "You got this.", nil},
		{"blank", "   ", "", domain.ErrEmptyMotivation},
		{"empty message field", `{"message": ""}`, "", domain.ErrEmptyMotivation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReply(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("broken json", func(t *testing.T) {
		_, err := parseReply(`{"message": }`)
		assert.Error(t, err)
	})
}

func TestStaticGenerator(t *testing.T) {
	g := StaticGenerator{}
	ctx := context.Background()

	msg, err := g.GenerateMotivation(ctx, domain.MotivationInput{HabitName: "Run"})
	require.NoError(t, err)
	assert.Contains(t, msg, "Run")

	msg, err = g.GenerateMotivation(ctx, sampleInput)
	require.NoError(t, err)
	assert.Equal(t, "2 days in a row for Meditate. Keep the streak going!", msg)

	cleaned, err := domain.CleanMotivation(msg)
	require.NoError(t, err)
	assert.Equal(t, msg, cleaned)
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	g, err := NewGenerator(ctx, Config{}, nil)
	require.NoError(t, err)
	assert.IsType(t, StaticGenerator{}, g)

	g, err = NewGenerator(ctx, Config{Provider: "none"}, nil)
	require.NoError(t, err)
	assert.Nil(t, g)

	_, err = NewGenerator(ctx, Config{Provider: "gemini"}, nil)
	assert.ErrorContains(t, err, "API key is required")

	_, err = NewGenerator(ctx, Config{Provider: "OpenAI"}, nil)
	assert.ErrorContains(t, err, "API key is required")

	_, err = NewGenerator(ctx, Config{Provider: "llama"}, nil)
	assert.ErrorContains(t, err, `unknown AI provider "llama"`)
}

func openAIServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		raw, _ := io.ReadAll(r.Body)
		var req map[string]any
		assert.NoError(t, json.Unmarshal(raw, &req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chatCompletion(content string) string {
	quoted, _ := json.Marshal(content)
	return fmt.Sprintf(`{
		"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "gpt-4o-mini",
		"choices": [{"index": 0, "finish_reason": "stop",
			"message": {"role": "assistant", "content": %s}}]
	}`, quoted)
}

func TestOpenAIGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		srv := openAIServer(t, http.StatusOK, chatCompletion(`{"message": "Two days strong. Keep it up!"}`))
		g, err := NewOpenAIGenerator(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
		require.NoError(t, err)

		msg, err := g.GenerateMotivation(ctx, sampleInput)
		require.NoError(t, err)
		assert.Equal(t, "Two days strong. Keep it up!", msg)
	})

	t.Run("Unauthorized is rejected", func(t *testing.T) {
		srv := openAIServer(t, http.StatusUnauthorized, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`)
		g, err := NewOpenAIGenerator(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
		require.NoError(t, err)

		_, err = g.GenerateMotivation(ctx, sampleInput)
		assert.ErrorIs(t, err, domain.ErrMotivationRejected)
	})

	t.Run("Rate limit stays retryable", func(t *testing.T) {
		srv := openAIServer(t, http.StatusTooManyRequests, `{"error": {"message": "slow down", "type": "rate_limit_error"}}`)
		g, err := NewOpenAIGenerator(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
		require.NoError(t, err)

		_, err = g.GenerateMotivation(ctx, sampleInput)
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrMotivationRejected))
		assert.Contains(t, err.Error(), "status 429")
	})
}

func geminiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)

		raw, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(raw), "Habit Name: Meditate")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		srv := geminiServer(t, http.StatusOK, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"message\": \"Calm mind, strong streak.\"}"}]}}]
		}`)
		g, err := NewGeminiGenerator(ctx, Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, nil)
		require.NoError(t, err)

		msg, err := g.GenerateMotivation(ctx, sampleInput)
		require.NoError(t, err)
		assert.Equal(t, "Calm mind, strong streak.", msg)
	})

	t.Run("Bad request is rejected", func(t *testing.T) {
		srv := geminiServer(t, http.StatusBadRequest, `{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`)
		g, err := NewGeminiGenerator(ctx, Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, nil)
		require.NoError(t, err)

		_, err = g.GenerateMotivation(ctx, sampleInput)
		assert.ErrorIs(t, err, domain.ErrMotivationRejected)
	})

	t.Run("Server error stays retryable", func(t *testing.T) {
		srv := geminiServer(t, http.StatusServiceUnavailable, `{"error": {"code": 503, "message": "overloaded", "status": "UNAVAILABLE"}}`)
		g, err := NewGeminiGenerator(ctx, Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, nil)
		require.NoError(t, err)

		_, err = g.GenerateMotivation(ctx, sampleInput)
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrMotivationRejected))
	})
}

func TestClassify(t *testing.T) {
	plain := errors.New("connection reset")
	err := classify("test", plain)
	assert.ErrorIs(t, err, plain)
	assert.False(t, errors.Is(err, domain.ErrMotivationRejected))
}
