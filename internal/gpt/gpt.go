// Package gpt is the OpenAI chat-completion backed article processor.
package gpt

import (
	"context"
	"fmt"
	"strings"

	"github.com/deusflow/newsagent/internal/agent"
	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/news"
	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a processor for apiKey. baseURL overrides the API
// endpoint when non-empty.
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Client) Name() string { return "openai" }

// Process asks the chat model to filter, summarize and score the articles.
func (c *Client) Process(ctx context.Context, articles []news.Article, prefs agent.Preferences) ([]news.Article, error) {
	if len(articles) == 0 {
		return []news.Article{}, nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: agent.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: agent.BuildPrompt(articles, prefs)},
		},
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	processed, err := agent.ParseArticles(answer)
	if err != nil {
		logger.Debug("Unparseable OpenAI response", "response", answer)
		return nil, err
	}
	logger.Info("OpenAI processed articles", "in", len(articles), "out", len(processed))
	return processed, nil
}
