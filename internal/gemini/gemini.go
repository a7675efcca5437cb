// Package gemini is the Google Gemini backed article processor.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/deusflow/newsagent/internal/agent"
	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/news"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-1.5-flash"

type Client struct {
	client *genai.Client
	model  string

	// generate is swapped in tests.
	generate func(ctx context.Context, prompt string) (string, error)
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}

	c := &Client{client: client, model: model}
	c.generate = c.generateContent
	return c, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func (c *Client) Name() string { return "gemini" }

// Process asks Gemini to filter, summarize and score the articles.
func (c *Client) Process(ctx context.Context, articles []news.Article, prefs agent.Preferences) ([]news.Article, error) {
	if len(articles) == 0 {
		return []news.Article{}, nil
	}

	response, err := c.generate(ctx, agent.BuildPrompt(articles, prefs))
	if err != nil {
		return nil, err
	}

	processed, err := agent.ParseArticles(response)
	if err != nil {
		logger.Debug("Unparseable Gemini response", "response", response)
		return nil, err
	}
	logger.Info("Gemini processed articles", "in", len(articles), "out", len(processed))
	return processed, nil
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(agent.SystemPrompt)}}
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(2000)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("no response from Gemini")
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}
