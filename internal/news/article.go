// Package news holds the canonical article record and the filter pipeline
// that narrows fetched articles down to what a request asked for.
package news

import (
	"strings"

	"github.com/deusflow/newsagent/internal/rss"
)

// Article is the canonical record every fetch path produces.
// Stages copy articles, they never modify one in place.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"` // raw upstream format
	Summary     string `json:"summary"`
	Content     string `json:"content"`

	// Relevance is set by AI processors, 0 when unscored.
	Relevance float64 `json:"-"`
}

// Normalize maps a raw feed item to an Article. Missing fields stay empty;
// the summary doubles as content since the fast path never fetches bodies.
func Normalize(item rss.Item, sourceID string) Article {
	summary := strings.TrimSpace(item.Summary)
	return Article{
		Title:       strings.TrimSpace(item.Title),
		URL:         strings.TrimSpace(item.Link),
		Source:      sourceID,
		PublishedAt: strings.TrimSpace(item.Published),
		Summary:     summary,
		Content:     summary,
	}
}

// NormalizeAll normalizes items in order, tagging each with its own source.
func NormalizeAll(items []rss.Item) []Article {
	out := make([]Article, 0, len(items))
	for _, it := range items {
		out = append(out, Normalize(it, it.SourceID))
	}
	return out
}

// fields returns the text a keyword may match, in match order.
func (a Article) fields() [3]string {
	return [3]string{a.Title, a.Summary, a.Content}
}

// mentions reports whether keyword occurs, case-insensitively, in the
// title, summary or content. keyword must already be lower-case.
func (a Article) mentions(keyword string) bool {
	if keyword == "" {
		return false
	}
	for _, f := range a.fields() {
		if strings.Contains(strings.ToLower(f), keyword) {
			return true
		}
	}
	return false
}

func (a Article) mentionsAny(keywords []string) bool {
	for _, k := range keywords {
		if a.mentions(k) {
			return true
		}
	}
	return false
}
