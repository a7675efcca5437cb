package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/deusflow/newsagent/internal/news"
)

const (
	promptArticleLimit = 10
	promptContentLimit = 500
)

// SystemPrompt is sent as the system message where the model supports one.
const SystemPrompt = "You are a news processing AI agent. Always return valid JSON."

// ErrNoJSONArray means the model answered without a JSON array.
var ErrNoJSONArray = errors.New("no JSON array found in AI response")

// BuildPrompt asks the model to filter, summarize and score the first few
// articles for the given preferences.
func BuildPrompt(articles []news.Article, prefs Preferences) string {
	var b strings.Builder
	for i, a := range articles {
		if i >= promptArticleLimit {
			break
		}
		fmt.Fprintf(&b, "\nArticle %d:\nTitle: %s\nContent: %s...\nURL: %s\nPublished: %s\n---\n",
			i+1,
			orDefault(a.Title, "No title"),
			Truncate(orDefault(a.Content, "No content"), promptContentLimit),
			orDefault(a.URL, "No URL"),
			orDefault(a.PublishedAt, "Unknown"),
		)
	}

	topics := "Any"
	if names := prefs.topicNames(); len(names) > 0 {
		topics = strings.Join(names, ", ")
	}

	return fmt.Sprintf(`
You are a news processing AI agent. Process these articles and return ONLY the most relevant, high-quality news articles.

User Preferences:
- Location: %s
- Topics: %s
- Time Range: %s

Articles to process:
%s
Instructions:
1. Filter out low-quality, irrelevant, or spam articles
2. Keep only recent, relevant news articles
3. For each article, provide:
   - title: Clean, readable title
   - summary: 2-3 sentence summary
   - relevance_score: 0.0 to 1.0 (how relevant to user)
   - published_at: Clean date format
   - source: Clean source name
   - url: Original URL
   - content: First 200 words of content

Return ONLY a JSON array of processed articles. No other text.
`, orDefault(locationDescription(prefs.Location), "Any"), topics, orDefault(prefs.TimeRange, "Any"), b.String())
}

func locationDescription(loc *news.Location) string {
	if loc == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{loc.City, loc.State, loc.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

type aiArticle struct {
	Title          string          `json:"title"`
	URL            string          `json:"url"`
	Source         string          `json:"source"`
	PublishedAt    string          `json:"published_at"`
	Summary        string          `json:"summary"`
	Content        string          `json:"content"`
	RelevanceScore json.RawMessage `json:"relevance_score"`
}

// ParseArticles extracts the JSON array between the first '[' and the last
// ']' of a model answer.
func ParseArticles(response string) ([]news.Article, error) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end < start {
		return nil, ErrNoJSONArray
	}

	var raw []aiArticle
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parse AI response: %w", err)
	}

	out := make([]news.Article, 0, len(raw))
	for _, r := range raw {
		a := news.Article{
			Title:       strings.TrimSpace(r.Title),
			URL:         strings.TrimSpace(r.URL),
			Source:      strings.TrimSpace(r.Source),
			PublishedAt: strings.TrimSpace(r.PublishedAt),
			Summary:     strings.TrimSpace(r.Summary),
			Content:     strings.TrimSpace(r.Content),
			Relevance:   parseScore(r.RelevanceScore),
		}
		if a.Source == "" && a.URL != "" {
			a.Source = SourceName(a.URL)
		}
		out = append(out, a)
	}
	return out, nil
}

// parseScore accepts a number or a quoted number, 0 otherwise.
func parseScore(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &f); err == nil {
			return f
		}
	}
	return 0
}
