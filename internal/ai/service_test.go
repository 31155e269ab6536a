package ai_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vovarama1992/voice_agent/internal/ai"
	"github.com/Vovarama1992/voice_agent/internal/domain"
	"github.com/Vovarama1992/voice_agent/internal/mock"
	"github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type llmFunc func(ctx context.Context, prompt string) (string, error)

func (f llmFunc) GetCompletion(ctx context.Context, prompt string) (string, error) { return f(ctx, prompt) }

func TestAiService_TrimsReply(t *testing.T) {
	t.Parallel()
	svc := ai.NewAiService(llmFunc(func(ctx context.Context, prompt string) (string, error) {
		assert.Equal(t, "user: hi", prompt)
		return "\n  Hello!  \n", nil
	}), "gemini", time.Second, &mock.Logger{})

	got, err := svc.Complete(context.Background(), "user: hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", got)
}

func TestAiService_ErrorsAreCompletionErrors(t *testing.T) {
	t.Parallel()
	providerErr := errors.New("status code: 429")

	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "provider error", err: providerErr},
		{name: "empty reply", reply: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := ai.NewAiService(llmFunc(func(context.Context, string) (string, error) {
				return tt.reply, tt.err
			}), "openai", time.Second, &mock.Logger{})

			_, err := svc.Complete(context.Background(), "p")

			var ce *domain.CompletionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "openai", ce.Provider)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestAiService_AppliesTimeout(t *testing.T) {
	t.Parallel()
	svc := ai.NewAiService(llmFunc(func(ctx context.Context, _ string) (string, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		<-ctx.Done()
		return "", ctx.Err()
	}), "gemini", 10*time.Millisecond, &mock.Logger{})

	_, err := svc.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOpenAIClient_GetCompletion(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
			assert.Equal(t, "user: hi\nassistant: hello\nuser: bye", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Goodbye!"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := ai.NewOpenAIClient("sk-test", "gpt-4o-mini", func(cfg *openai.ClientConfig) {
		cfg.BaseURL = srv.URL + "/v1"
	})

	got, err := c.GetCompletion(context.Background(), "user: hi\nassistant: hello\nuser: bye")
	require.NoError(t, err)
	assert.Equal(t, "Goodbye!", got)
}

func TestOpenAIClient_NoKey(t *testing.T) {
	t.Parallel()
	c := ai.NewOpenAIClient("", "gpt-4o-mini")
	_, err := c.GetCompletion(context.Background(), "p")
	assert.Error(t, err)
}

func TestGeminiClient_NoKey(t *testing.T) {
	t.Parallel()
	c := ai.NewGeminiClient("", "gemini-2.5-flash")
	_, err := c.GetCompletion(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
