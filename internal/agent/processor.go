package agent

import (
	"context"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/deusflow/newsagent/internal/news"
	"github.com/deusflow/newsagent/internal/search"
	"golang.org/x/net/publicsuffix"
)

const (
	summaryLength    = 200
	defaultRelevance = 0.8
)

// Processor filters, summarizes or scores articles for the user.
type Processor interface {
	Name() string
	Process(ctx context.Context, articles []news.Article, prefs Preferences) ([]news.Article, error)
}

// SimpleProcessor only formats; it keeps every article.
type SimpleProcessor struct{}

func (SimpleProcessor) Name() string { return "simple" }

func (SimpleProcessor) Process(_ context.Context, articles []news.Article, _ Preferences) ([]news.Article, error) {
	out := make([]news.Article, len(articles))
	for i, a := range articles {
		if a.Relevance == 0 {
			a.Relevance = defaultRelevance
		}
		out[i] = a
	}
	return out, nil
}

// FromResults converts search hits to articles in result order.
func FromResults(results []search.Result) []news.Article {
	out := make([]news.Article, 0, len(results))
	for _, r := range results {
		content := strings.TrimSpace(r.Content)
		out = append(out, news.Article{
			Title:       strings.TrimSpace(r.Title),
			URL:         strings.TrimSpace(r.URL),
			Source:      SourceName(r.URL),
			PublishedAt: strings.TrimSpace(r.PublishedDate),
			Summary:     Truncate(content, summaryLength),
			Content:     content,
		})
	}
	return out
}

// Truncate cuts s to n runes and appends "..." when it was longer.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// SourceName derives a display name from the registrable domain,
// e.g. "https://www.hindustantimes.com/x" gives "Hindustantimes".
func SourceName(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "Unknown"
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "Unknown"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	label := host
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = domain
	}
	if i := strings.IndexByte(label, '.'); i > 0 {
		label = label[:i]
	}
	return titleCase(label)
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
