package news

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/deusflow/newsagent/internal/logger"
)

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// TimeWindow is inclusive on both ends. A zero bound disables the window.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Criteria is what one request asks for. It is read-only once built.
type Criteria struct {
	Location *Location
	Topics   []string
	Window   *TimeWindow
}

// NewCriteria copies its inputs and drops blank topics.
func NewCriteria(loc *Location, topics []string, window *TimeWindow) Criteria {
	c := Criteria{Window: window}
	if loc != nil {
		l := *loc
		c.Location = &l
	}
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			c.Topics = append(c.Topics, t)
		}
	}
	return c
}

// City returns the requested city, lower-cased with whitespace collapsed,
// or "" when none was given.
func (c Criteria) City() string {
	if c.Location == nil {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(c.Location.City), " "))
}

// Gazetteer answers the location questions the location stage needs.
// *sources.Registry implements it.
type Gazetteer interface {
	Keywords(city string) []string
	IsCurated(city string) bool
	RegionKeywords(city string) []string
}

// Stage is one step of the filter chain. Apply must not modify its input.
type Stage interface {
	Name() string
	Apply(articles []Article, c Criteria) []Article
}

type TimeFilter struct{}

func (TimeFilter) Name() string { return "time" }

// Apply keeps articles published inside the window. Articles whose date is
// missing, cannot be parsed or names an unknown zone are kept.
func (TimeFilter) Apply(articles []Article, c Criteria) []Article {
	w := c.Window
	if w == nil || w.Start.IsZero() || w.End.IsZero() {
		return articles
	}

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		published, ok := parsePublished(a.PublishedAt)
		if !ok {
			out = append(out, a)
			continue
		}
		if !published.Before(w.Start) && !published.After(w.End) {
			out = append(out, a)
		}
	}
	return out
}

// zoneOffsets resolves the abbreviations feeds commonly use. Go parses an
// abbreviation it does not know as a zero offset. IST is India here.
var zoneOffsets = map[string]int{
	"IST":  5*3600 + 1800,
	"NPT":  5*3600 + 2700,
	"PKT":  5 * 3600,
	"GST":  4 * 3600,
	"MSK":  3 * 3600,
	"EEST": 3 * 3600,
	"EET":  2 * 3600,
	"CEST": 2 * 3600,
	"CET":  1 * 3600,
	"BST":  1 * 3600,
	"WEST": 1 * 3600,
	"WET":  0,
	"SGT":  8 * 3600,
	"HKT":  8 * 3600,
	"JST":  9 * 3600,
	"KST":  9 * 3600,
	"AEST": 10 * 3600,
	"AEDT": 11 * 3600,
	"EST":  -5 * 3600,
	"EDT":  -4 * 3600,
	"CDT":  -5 * 3600,
	"CST":  -6 * 3600,
	"MDT":  -6 * 3600,
	"MST":  -7 * 3600,
	"PDT":  -7 * 3600,
	"PST":  -8 * 3600,
	"AKDT": -8 * 3600,
	"AKST": -9 * 3600,
	"HST":  -10 * 3600,
}

// parsePublished parses a feed date, defaulting to UTC. ok is false when the
// date is missing, unparseable, or carries an abbreviation we cannot place.
func parsePublished(raw string) (time.Time, bool) {
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}

	name, offset := t.Zone()
	if offset != 0 {
		return t, true
	}
	switch name {
	case "", "UTC", "GMT", "UT", "Z":
		return t, true
	}
	off, known := zoneOffsets[name]
	if !known {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.FixedZone(name, off)), true
}

type TopicFilter struct{}

func (TopicFilter) Name() string { return "topic" }

// Apply keeps articles mentioning any topic. A "general" topic lets every
// article through.
func (TopicFilter) Apply(articles []Article, c Criteria) []Article {
	if len(c.Topics) == 0 {
		return articles
	}

	topics := make([]string, 0, len(c.Topics))
	for _, t := range c.Topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if IsGeneralTopic(t) {
			return articles
		}
		topics = append(topics, t)
	}

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.mentionsAny(topics) {
			out = append(out, a)
		}
	}
	return out
}

// IsGeneralTopic reports whether topic matches every article.
func IsGeneralTopic(topic string) bool {
	switch strings.ToLower(strings.TrimSpace(topic)) {
	case "general", "general news":
		return true
	}
	return false
}

type LocationFilter struct {
	Places Gazetteer
}

func (LocationFilter) Name() string { return "location" }

// Apply keeps articles mentioning the city or one of its lexicon keywords.
// For cities without a curated bundle, region keywords are tried as well.
func (f LocationFilter) Apply(articles []Article, c Criteria) []Article {
	city := c.City()
	if city == "" {
		return articles
	}

	keywords := []string{city}
	var region []string
	if f.Places != nil {
		if k := f.Places.Keywords(city); len(k) > 0 {
			keywords = k
		}
		if !f.Places.IsCurated(city) {
			region = f.Places.RegionKeywords(city)
		}
	}
	keywords = lowerAll(keywords)
	region = lowerAll(region)

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.mentionsAny(keywords) || a.mentionsAny(region) {
			out = append(out, a)
		}
	}
	return out
}

func lowerAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Chain runs its stages in order, each on the survivors of the previous one.
type Chain struct {
	stages []Stage
}

// NewChain returns the time, topic, location chain.
func NewChain(places Gazetteer) *Chain {
	return &Chain{stages: []Stage{TimeFilter{}, TopicFilter{}, LocationFilter{Places: places}}}
}

// NewChainWith builds a chain from arbitrary stages.
func NewChainWith(stages ...Stage) *Chain {
	return &Chain{stages: append([]Stage(nil), stages...)}
}

// Apply runs the chain. The input slice is never modified; the result is
// always a fresh slice.
func (ch *Chain) Apply(articles []Article, c Criteria) []Article {
	current := append([]Article(nil), articles...)
	for _, s := range ch.stages {
		before := len(current)
		current = s.Apply(current, c)
		logger.Debug("Filter stage applied", "stage", s.Name(), "in", before, "out", len(current))
		if len(current) == 0 {
			break
		}
	}
	if current == nil {
		current = []Article{}
	}
	return current
}
