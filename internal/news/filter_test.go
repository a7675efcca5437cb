package news_test

import (
	"testing"
	"time"

	"github.com/deusflow/newsagent/internal/news"
	"github.com/deusflow/newsagent/internal/rss"
	"github.com/deusflow/newsagent/internal/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func art(title, summary, published string) news.Article {
	return news.Article{Title: title, Summary: summary, Content: summary, PublishedAt: published, Source: "src"}
}

func titles(articles []news.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Title)
	}
	return out
}

func window(code string) *news.TimeWindow {
	w, err := news.ParseTimeRange(code, now)
	if err != nil {
		panic(err)
	}
	return w
}

func TestNormalize(t *testing.T) {
	a := news.Normalize(rss.Item{
		SourceID:  "bbc_world",
		Title:     "  Headline ",
		Link:      "http://bbc.example/1",
		Published: "Mon, 01 Jan 2024 12:00:00 GMT",
		Summary:   "Short summary",
	}, "bbc_world")

	require.Equal(t, news.Article{
		Title:       "Headline",
		URL:         "http://bbc.example/1",
		Source:      "bbc_world",
		PublishedAt: "Mon, 01 Jan 2024 12:00:00 GMT",
		Summary:     "Short summary",
		Content:     "Short summary",
	}, a)
}

func TestNormalizeMissingFields(t *testing.T) {
	a := news.Normalize(rss.Item{}, "x")
	require.Equal(t, news.Article{Source: "x"}, a)
}

func TestNormalizeAllKeepsOrderAndSources(t *testing.T) {
	out := news.NormalizeAll([]rss.Item{{SourceID: "a", Title: "1"}, {SourceID: "b", Title: "2"}})
	require.Equal(t, []string{"1", "2"}, titles(out))
	require.Equal(t, "a", out[0].Source)
	require.Equal(t, "b", out[1].Source)
}

func TestTimeFilter(t *testing.T) {
	in := []news.Article{
		art("recent", "", "Fri, 08 Mar 2024 09:00:00 GMT"),
		art("old", "", "Mon, 01 Jan 2024 12:00:00 GMT"),
		art("garbage date", "", "sometime last week"),
		art("no date", "", ""),
		art("iso recent", "", "2024-03-10T11:00:00Z"),
		art("future", "", "2024-03-11T11:00:00Z"),
		art("exact start", "", "2024-03-03T12:00:00Z"),
	}
	c := news.NewCriteria(nil, nil, window("7d"))

	got := news.TimeFilter{}.Apply(in, c)
	require.Equal(t, []string{"recent", "garbage date", "no date", "iso recent", "exact start"}, titles(got))
}

func TestTimeFilterZoneAbbreviations(t *testing.T) {
	in := []news.Article{
		art("india", "", "Sun, 10 Mar 2024 17:00:00 IST"),
		art("new york", "", "Sun, 10 Mar 2024 07:30:00 EDT"),
		art("california", "", "Sun, 10 Mar 2024 03:30:00 PST"),
		art("india morning", "", "Sun, 10 Mar 2024 12:30:00 IST"),
		art("numeric offset", "", "Sun, 10 Mar 2024 17:00:00 +0530"),
		art("gmt", "", "Sun, 10 Mar 2024 11:30:00 GMT"),
		art("unknown zone", "", "Sun, 10 Mar 2024 02:00:00 XYZ"),
	}
	c := news.NewCriteria(nil, nil, window("1h"))

	got := news.TimeFilter{}.Apply(in, c)
	require.Equal(t, []string{"india", "new york", "california", "numeric offset", "gmt", "unknown zone"}, titles(got))
}

func TestTimeFilterWithoutWindowIsIdentity(t *testing.T) {
	in := []news.Article{art("old", "", "Mon, 01 Jan 2001 12:00:00 GMT")}
	require.Equal(t, in, news.TimeFilter{}.Apply(in, news.NewCriteria(nil, nil, nil)))
	require.Equal(t, in, news.TimeFilter{}.Apply(in, news.NewCriteria(nil, nil, &news.TimeWindow{End: now})))
}

func TestTopicFilter(t *testing.T) {
	in := []news.Article{
		art("New TECHNOLOGY park", "", ""),
		art("Elections", "politics and technology policy", ""),
		art("Cricket", "match report", ""),
	}

	got := news.TopicFilter{}.Apply(in, news.NewCriteria(nil, []string{"Technology"}, nil))
	require.Equal(t, []string{"New TECHNOLOGY park", "Elections"}, titles(got))

	got = news.TopicFilter{}.Apply(in, news.NewCriteria(nil, []string{"sports", "cricket"}, nil))
	require.Equal(t, []string{"Cricket"}, titles(got))
}

func TestTopicFilterMatchesContentOnly(t *testing.T) {
	a := news.Article{Title: "x", Summary: "y", Content: "deep business analysis"}
	got := news.TopicFilter{}.Apply([]news.Article{a}, news.NewCriteria(nil, []string{"business"}, nil))
	require.Len(t, got, 1)
}

func TestTopicFilterGeneralPassesEverything(t *testing.T) {
	in := []news.Article{art("a", "", ""), art("b", "", "")}
	for _, topic := range []string{"General News", "general", " GENERAL "} {
		got := news.TopicFilter{}.Apply(in, news.NewCriteria(nil, []string{"science", topic}, nil))
		require.Equal(t, in, got, topic)
	}
}

func TestTopicFilterBlankTopicsAreIgnored(t *testing.T) {
	in := []news.Article{art("a", "", "")}
	c := news.NewCriteria(nil, []string{" ", ""}, nil)
	require.Empty(t, c.Topics)
	require.Equal(t, in, news.TopicFilter{}.Apply(in, c))
}

func TestLocationFilterCuratedCity(t *testing.T) {
	reg := sources.Default()
	in := []news.Article{
		art("Kanpur Nagar metro update", "", ""),
		art("Lucknow", "Uttar Pradesh budget", ""),
		art("Paris fashion week", "", ""),
		art("Startup round-up", "growth in the UP region", ""),
	}

	got := news.LocationFilter{Places: reg}.Apply(in, news.NewCriteria(&news.Location{City: "Kanpur"}, nil, nil))
	require.Equal(t, []string{"Kanpur Nagar metro update", "Lucknow", "Startup round-up"}, titles(got))
}

func TestLocationFilterUncuratedUsesRegionFallback(t *testing.T) {
	reg := sources.Default()
	in := []news.Article{
		art("Santa Clara council vote", "", ""),
		art("California wildfire", "", ""),
		art("United States economy", "", ""),
		art("Mumbai rains", "", ""),
	}

	got := news.LocationFilter{Places: reg}.Apply(in, news.NewCriteria(&news.Location{City: "santa clara"}, nil, nil))
	require.Equal(t, []string{"Santa Clara council vote", "California wildfire", "United States economy"}, titles(got))
}

func TestLocationFilterUncuratedWithoutRegion(t *testing.T) {
	reg := sources.Default()
	in := []news.Article{art("Springfield fair", "", ""), art("Illinois news", "", "")}

	got := news.LocationFilter{Places: reg}.Apply(in, news.NewCriteria(&news.Location{City: "Springfield"}, nil, nil))
	require.Equal(t, []string{"Springfield fair"}, titles(got))
}

func TestLocationFilterNoCityIsIdentity(t *testing.T) {
	in := []news.Article{art("a", "", "")}
	require.Equal(t, in, news.LocationFilter{Places: sources.Default()}.Apply(in, news.NewCriteria(nil, nil, nil)))
	require.Equal(t, in, news.LocationFilter{Places: sources.Default()}.Apply(in, news.NewCriteria(&news.Location{Country: "India"}, nil, nil)))
}

func TestChainKanpurScenario(t *testing.T) {
	chain := news.NewChain(sources.Default())
	in := []news.Article{
		art("Kanpur traffic", "", "garbage"),
		art("Delhi pollution", "", ""),
		art("State news", "uttar pradesh cabinet", ""),
	}

	got := chain.Apply(in, news.NewCriteria(&news.Location{City: "kanpur"}, nil, nil))
	require.Equal(t, []string{"Kanpur traffic", "State news"}, titles(got))
}

func TestChainSantaClaraScenario(t *testing.T) {
	chain := news.NewChain(sources.Default())
	in := []news.Article{
		art("California technology boom", "", "2024-03-09T10:00:00Z"),
		art("California technology 2023", "", "2023-03-09T10:00:00Z"),
		art("US technology stocks", "", "unparseable"),
		art("California sports", "", "2024-03-09T10:00:00Z"),
		art("Technology in Berlin", "", "2024-03-09T10:00:00Z"),
	}

	c := news.NewCriteria(&news.Location{City: "santa clara", State: "California", Country: "USA"}, []string{"Technology"}, window("7d"))
	got := chain.Apply(in, c)
	require.Equal(t, []string{"California technology boom", "US technology stocks"}, titles(got))

	for _, a := range got {
		assert.Contains(t, a.Title+a.Summary, "echnology")
	}
}

func TestChainGeneralNewsScenario(t *testing.T) {
	chain := news.NewChain(sources.Default())
	in := []news.Article{art("anything", "", ""), art("else", "", "")}

	got := chain.Apply(in, news.NewCriteria(nil, []string{"General News"}, nil))
	require.Equal(t, titles(in), titles(got))
}

func TestChainNoTopicsNoLocationEqualsTimeStage(t *testing.T) {
	chain := news.NewChain(sources.Default())
	in := []news.Article{
		art("a", "", "2024-03-10T10:00:00Z"),
		art("b", "", "2020-03-09T10:00:00Z"),
		art("c", "", ""),
	}
	c := news.NewCriteria(nil, nil, window("24h"))

	require.Equal(t, news.TimeFilter{}.Apply(in, c), chain.Apply(in, c))
}

func TestChainIsIdempotentAndDoesNotMutateInput(t *testing.T) {
	chain := news.NewChain(sources.Default())
	in := []news.Article{
		art("Mumbai markets", "business", "2024-03-09T10:00:00Z"),
		art("Mumbai cricket", "sports", "2024-03-09T10:00:00Z"),
		art("Chennai business", "business", "2024-03-09T10:00:00Z"),
	}
	snapshot := append([]news.Article(nil), in...)
	c := news.NewCriteria(&news.Location{City: "Mumbai"}, []string{"business"}, window("7d"))

	first := chain.Apply(in, c)
	second := chain.Apply(in, c)

	require.Equal(t, first, second)
	require.Equal(t, first, chain.Apply(first, c))
	require.Equal(t, snapshot, in)
	require.Equal(t, []string{"Mumbai markets"}, titles(first))
}

func TestChainEmptyInput(t *testing.T) {
	got := news.NewChain(sources.Default()).Apply(nil, news.NewCriteria(&news.Location{City: "delhi"}, []string{"ai"}, nil))
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCriteriaCopiesLocation(t *testing.T) {
	loc := &news.Location{City: "Delhi"}
	c := news.NewCriteria(loc, nil, nil)
	loc.City = "Pune"
	require.Equal(t, "delhi", c.City())
}
