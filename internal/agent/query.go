package agent

import (
	"strings"

	"github.com/deusflow/newsagent/internal/news"
)

// Preferences is what the user asked for, as the agent path sees it.
type Preferences struct {
	Location  *news.Location
	Topics    []string // display names, e.g. "Technology"
	TimeRange string   // short code, e.g. "7d"
}

// LocationString is "city, state", the city, or the country, in that order
// of preference. Empty when nothing usable was given.
func (p Preferences) LocationString() string {
	if p.Location == nil {
		return ""
	}
	city := strings.TrimSpace(p.Location.City)
	state := strings.TrimSpace(p.Location.State)
	country := strings.TrimSpace(p.Location.Country)
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return country
	}
}

func (p Preferences) topicNames() []string {
	names := make([]string, 0, len(p.Topics))
	for _, t := range p.Topics {
		if t = strings.TrimSpace(t); t != "" {
			names = append(names, t)
		}
	}
	return names
}

// BuildQuery turns preferences into a search query such as
// "santa clara, California Technology last week news".
func BuildQuery(p Preferences) string {
	var parts []string
	if loc := p.LocationString(); loc != "" {
		parts = append(parts, loc)
	}

	topics := "news"
	if names := p.topicNames(); len(names) > 0 {
		topics = strings.Join(names, ", ")
	}
	parts = append(parts, topics)

	if phrase := news.TimeRangePhrase(p.TimeRange); phrase != "" {
		parts = append(parts, phrase)
	}

	return strings.Join(parts, " ") + " news"
}
