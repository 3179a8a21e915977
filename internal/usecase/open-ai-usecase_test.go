package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
)

func newOpenAITestServer(t *testing.T, path string, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, path, r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				if captured != nil {
					require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write([]byte(body))
			},
		),
	)
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenAI(srv *httptest.Server) *OpenAIUsecase {
	return NewOpenAIUsecase(
		config.OpenAI{
			OpenAIAPIKey:  "test-key",
			OpenAIModel:   "gpt-4o-mini",
			OpenAIBaseURL: srv.URL + "/v1",
			ImageModel:    "dall-e-3",
		}, 0, nil,
	)
}

func TestOpenAIUsecase_Generate(t *testing.T) {
	var captured map[string]any
	srv := newOpenAITestServer(
		t, "/v1/chat/completions", http.StatusOK, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Well hello there!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
		}`, &captured,
	)

	text, err := newTestOpenAI(srv).Generate(
		context.Background(), GenerationRequest{
			System:      "You are Ben Davis.",
			Message:     "Hi!",
			Temperature: 0.8,
			MaxTokens:   300,
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "Well hello there!", text)
	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.InDelta(t, 0.8, captured["temperature"], 0.0001)
	assert.EqualValues(t, 300, captured["max_tokens"])
	assert.Equal(
		t, []any{
			map[string]any{"role": "system", "content": "You are Ben Davis."},
			map[string]any{"role": "user", "content": "Hi!"},
		}, captured["messages"],
	)
}

func TestOpenAIUsecase_GenerateNoCandidates(t *testing.T) {
	for name, body := range map[string]string{
		"no choices":    `{"id": "1", "choices": []}`,
		"empty content": `{"id": "1", "choices": [{"index": 0, "message": {"role": "assistant", "content": ""}}]}`,
	} {
		t.Run(
			name, func(t *testing.T) {
				srv := newOpenAITestServer(t, "/v1/chat/completions", http.StatusOK, body, nil)

				_, err := newTestOpenAI(srv).Generate(context.Background(), GenerationRequest{Message: "hi"})

				assert.ErrorIs(t, err, ErrNoCandidates)
			},
		)
	}
}

func TestOpenAIUsecase_GenerateUpstreamError(t *testing.T) {
	srv := newOpenAITestServer(
		t, "/v1/chat/completions", http.StatusInternalServerError,
		`{"error": {"message": "overloaded", "type": "server_error"}}`, nil,
	)

	_, err := newTestOpenAI(srv).Generate(context.Background(), GenerationRequest{Message: "hi"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCandidates)
}

func TestOpenAIUsecase_CreateImage(t *testing.T) {
	asset, ok := LookupImageAsset(model.ImageAssetHero)
	require.True(t, ok)

	t.Run("returns the url", func(t *testing.T) {
		var captured map[string]any
		srv := newOpenAITestServer(
			t, "/v1/images/generations", http.StatusOK,
			`{"created": 1, "data": [{"url": "https://images.example/hero.png"}]}`, &captured,
		)

		url, err := newTestOpenAI(srv).CreateImage(context.Background(), asset)

		require.NoError(t, err)
		assert.Equal(t, "https://images.example/hero.png", url)
		assert.Equal(t, "dall-e-3", captured["model"])
		assert.Equal(t, "1792x1024", captured["size"])
		assert.Equal(t, "hd", captured["quality"])
		assert.Equal(t, "natural", captured["style"])
		assert.Equal(t, asset.Prompt, captured["prompt"])
	})

	t.Run("no url", func(t *testing.T) {
		srv := newOpenAITestServer(t, "/v1/images/generations", http.StatusOK, `{"created": 1, "data": []}`, nil)

		_, err := newTestOpenAI(srv).CreateImage(context.Background(), asset)

		assert.ErrorIs(t, err, ErrImageNotGenerated)
	})
}
