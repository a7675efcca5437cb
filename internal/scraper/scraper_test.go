package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deusflow/newsagent/internal/metrics"
	"github.com/deusflow/newsagent/internal/news"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>Page title</title></head><body>
<h1>Kanpur metro opens second line</h1>
<article>
  <p>The second line of the Kanpur metro opened to passengers on Monday morning.</p>
  <p>Officials said the extension would carry forty thousand riders every day.</p>
  <p>Subscribe to our newsletter for daily updates from the city desk and beyond.</p>
  <p>Work on the third corridor is expected to begin before the end of the year.</p>
</article>
</body></html>`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/article":
			_, _ = w.Write([]byte(articlePage))
		case "/short":
			_, _ = w.Write([]byte(`<html><body><p>tiny</p></body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractFullArticle(t *testing.T) {
	srv := newPageServer(t)
	s := New(srv.Client(), 2, 5)

	got, err := s.ExtractFullArticle(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	require.Equal(t, "Kanpur metro opens second line", got.Title)
	require.Contains(t, got.Content, "second line of the Kanpur metro")
	require.Contains(t, got.Content, "third corridor")
	require.NotContains(t, strings.ToLower(got.Content), "subscribe")
}

func TestExtractFullArticleErrors(t *testing.T) {
	srv := newPageServer(t)
	s := New(srv.Client(), 2, 5)

	_, err := s.ExtractFullArticle(context.Background(), srv.URL+"/missing")
	require.Error(t, err)

	_, err = s.ExtractFullArticle(context.Background(), srv.URL+"/short")
	require.Error(t, err)
}

func TestEnrichReplacesContentAndKeepsOrder(t *testing.T) {
	srv := newPageServer(t)
	s := New(srv.Client(), 2, 2)
	s.metrics = metrics.New()

	in := []news.Article{
		{Title: "a", URL: srv.URL + "/article", Summary: "feed a", Content: "feed a"},
		{Title: "b", URL: srv.URL + "/missing", Summary: "feed b", Content: "feed b"},
		{Title: "c", URL: srv.URL + "/article", Summary: "feed c", Content: "feed c"},
	}

	out := s.Enrich(context.Background(), in)

	require.Len(t, out, 3)
	require.Equal(t, []string{"a", "b", "c"}, []string{out[0].Title, out[1].Title, out[2].Title})
	require.Contains(t, out[0].Content, "Kanpur metro")
	require.Equal(t, "feed a", out[0].Summary)
	require.Equal(t, "feed b", out[1].Content)
	require.Equal(t, "feed c", out[2].Content, "beyond maxArticles")
	require.Equal(t, "feed a", in[0].Content, "input must not be modified")
	require.Equal(t, int64(1), s.metrics.GetStats()["articles_enriched"])
}

func TestSelectorsFor(t *testing.T) {
	require.NotNil(t, selectorsFor("https://www.bbc.co.uk/news/world-1"))
	require.NotNil(t, selectorsFor("https://feeds.reuters.com/x"))
	require.Nil(t, selectorsFor("https://example.com/x"))
	require.Nil(t, selectorsFor("://bad"))
}

func TestCleanContentTrimsAtParagraph(t *testing.T) {
	para := strings.Repeat("word ", 80) + "end."
	content := strings.Repeat(para+"\n\n", 6)

	got := cleanContent(content)
	require.LessOrEqual(t, len(got), trimTarget)
	require.True(t, strings.HasSuffix(got, "end."))
}
