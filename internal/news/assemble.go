package news

import "fmt"

const (
	defaultTitle  = "No title"
	defaultSource = "Unknown"

	NoResultsMessage = "No articles found for your search criteria"
)

// Response is the external shape of a news answer.
type Response struct {
	Articles   []Article `json:"articles"`
	TotalCount int       `json:"total_count"`
	Message    string    `json:"message"`
}

// Assemble shapes the final articles without dropping or reordering any.
// via names the pipeline in the message, e.g. "RSS feeds".
func Assemble(articles []Article, via string) Response {
	out := make([]Article, len(articles))
	for i, a := range articles {
		if a.Title == "" {
			a.Title = defaultTitle
		}
		if a.Source == "" {
			a.Source = defaultSource
		}
		out[i] = a
	}

	return Response{
		Articles:   out,
		TotalCount: len(out),
		Message:    Message(len(out), via),
	}
}

// Message is the human-readable summary for n articles.
func Message(n int, via string) string {
	if n == 0 {
		return NoResultsMessage
	}
	if via == "" {
		return fmt.Sprintf("Found %d relevant articles", n)
	}
	return fmt.Sprintf("Found %d relevant articles using %s", n, via)
}
