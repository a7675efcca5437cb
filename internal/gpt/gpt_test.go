package gpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deusflow/newsagent/internal/agent"
	"github.com/deusflow/newsagent/internal/news"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, answer string, status int) (*httptest.Server, *openai.ChatCompletionRequest) {
	t.Helper()
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answer},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestProcess(t *testing.T) {
	srv, got := newChatServer(t, `Here: [{"title":"Metro","url":"https://ndtv.com/m","relevance_score":1}]`, http.StatusOK)
	c := NewClient("sk-test", "", srv.URL+"/v1")

	out, err := c.Process(context.Background(), []news.Article{{Title: "Metro"}}, agent.Preferences{
		Location: &news.Location{City: "Delhi"},
	})
	require.NoError(t, err)
	require.Equal(t, []news.Article{{Title: "Metro", URL: "https://ndtv.com/m", Source: "Ndtv", Relevance: 1}}, out)

	require.Equal(t, openai.GPT3Dot5Turbo, got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, agent.SystemPrompt, got.Messages[0].Content)
	require.Contains(t, got.Messages[1].Content, "- Location: Delhi")
}

func TestProcessAPIError(t *testing.T) {
	srv, _ := newChatServer(t, "", http.StatusTooManyRequests)
	c := NewClient("sk-test", "gpt-4o-mini", srv.URL+"/v1")

	_, err := c.Process(context.Background(), []news.Article{{Title: "a"}}, agent.Preferences{})
	require.ErrorContains(t, err, "OpenAI request failed")
}

func TestProcessNoJSON(t *testing.T) {
	srv, _ := newChatServer(t, "Sorry, nothing relevant.", http.StatusOK)
	c := NewClient("sk-test", "", srv.URL+"/v1")

	_, err := c.Process(context.Background(), []news.Article{{Title: "a"}}, agent.Preferences{})
	require.ErrorIs(t, err, agent.ErrNoJSONArray)
}
