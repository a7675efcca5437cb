// Package scraper pulls full article text for articles that survived
// filtering, replacing their feed-summary content.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/deusflow/newsagent/internal/logger"
	"github.com/deusflow/newsagent/internal/metrics"
	"github.com/deusflow/newsagent/internal/news"
	"golang.org/x/sync/errgroup"
)

const (
	minContentLength = 100
	maxContentLength = 1800
	trimTarget       = 1600
)

// ArticleContent is full article content
type ArticleContent struct {
	Title   string
	Content string
	URL     string
}

// siteSelectors lists paragraph selectors per host suffix, tried in order.
var siteSelectors = map[string][]string{
	"timesofindia.indiatimes.com": {"._s30J", ".Normal", ".artText", "article p"},
	"hindustantimes.com":          {".storyDetails p", ".detail p", "article p"},
	"thehindu.com":                {".articlebodycontent p", "#content-body p", "article p"},
	"ndtv.com":                    {".sp-cn p", "#ins_storybody p", "article p"},
	"indianexpress.com":           {"#pcl-full-content p", ".full-details p", "article p"},
	"bbc.co.uk":                   {"[data-component='text-block'] p", "article p"},
	"bbc.com":                     {"[data-component='text-block'] p", "article p"},
	"theguardian.com":             {".article-body-commercial-selector p", "#maincontent p", "article p"},
	"reuters.com":                 {"[data-testid^='paragraph']", ".article-body__content p", "article p"},
	"aljazeera.com":               {".wysiwyg p", "main p"},
}

var genericSelectors = []string{
	"article p",
	".article p",
	".content p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
	".text p",
	"p",
}

var junkPhrases = []string{
	"Subscribe to our newsletter",
	"Sign up for our newsletter",
	"Also Read:", "Also read:", "Read more:", "Read More:", "Watch:",
	"Click here to", "Follow us on", "Download the app",
	"Share this article", "Print this article",
	"Cookie", "Privacy Policy", "Advertisement",
	"Log in", "Create account",
}

var junkIndicators = []string{
	"cookie", "advertisement", "subscribe", "read more",
	"click here", "follow us", "share this", "sign up",
}

type Scraper struct {
	client      *http.Client
	concurrency int
	maxArticles int
	metrics     *metrics.Metrics
}

// New creates a Scraper. concurrency bounds parallel page loads and
// maxArticles bounds how many articles one Enrich call touches.
func New(client *http.Client, concurrency, maxArticles int) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Scraper{
		client:      client,
		concurrency: concurrency,
		maxArticles: maxArticles,
		metrics:     metrics.Global,
	}
}

// Enrich returns a copy of articles where the first maxArticles entries get
// their content replaced by the full page text when it can be extracted.
// Failures leave the feed summary in place.
func (s *Scraper) Enrich(ctx context.Context, articles []news.Article) []news.Article {
	out := append([]news.Article(nil), articles...)

	limit := len(out)
	if s.maxArticles < limit {
		limit = s.maxArticles
	}
	if limit <= 0 {
		return out
	}

	contents := make([]string, limit)
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i := 0; i < limit; i++ {
		link := out[i].URL
		if link == "" {
			continue
		}
		i := i
		g.Go(func() error {
			article, err := s.ExtractFullArticle(ctx, link)
			if err != nil {
				logger.Debug("Can't get full content", "url", link, "error", err)
				return nil
			}
			if len(article.Content) < minContentLength {
				logger.Debug("Content too short", "url", link, "chars", len(article.Content))
				return nil
			}
			contents[i] = article.Content
			return nil
		})
	}
	_ = g.Wait()

	enriched := 0
	for i, c := range contents {
		if c != "" {
			out[i].Content = c
			enriched++
		}
	}
	s.metrics.AddArticlesEnriched(enriched)
	logger.Info("Full text enrichment done", "attempted", limit, "enriched", enriched)
	return out
}

// ExtractFullArticle gets full text of article by URL
func (s *Scraper) ExtractFullArticle(ctx context.Context, pageURL string) (*ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; newsagent/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	content := cleanContent(extractContent(doc, pageURL))
	if content == "" {
		return nil, fmt.Errorf("can't get content")
	}

	return &ArticleContent{
		Title:   extractTitle(doc),
		Content: content,
		URL:     pageURL,
	}, nil
}

func extractContent(doc *goquery.Document, pageURL string) string {
	if selectors := selectorsFor(pageURL); selectors != nil {
		if content := collectParagraphs(doc, selectors, 10, 1); content != "" {
			return content
		}
	}
	return collectParagraphs(doc, genericSelectors, 20, 3)
}

func selectorsFor(pageURL string) []string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for suffix, selectors := range siteSelectors {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return selectors
		}
	}
	return nil
}

// collectParagraphs tries selectors in order and stops at the first one
// that yields at least enough paragraphs longer than minLen.
func collectParagraphs(doc *goquery.Document, selectors []string, minLen, enough int) string {
	var paragraphs []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > minLen {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= enough {
			break
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		"h1",
		"meta[property='og:title']",
		"title",
		".article-title",
		".headline",
	}

	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			title = strings.TrimSpace(sel.AttrOr("content", ""))
		}
		if title != "" {
			return title
		}
	}

	return ""
}

// cleanContent drops boilerplate lines, folds lines into paragraphs and
// trims long text at a paragraph boundary.
func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	for _, phrase := range junkPhrases {
		content = strings.ReplaceAll(content, phrase, "")
	}

	var paragraphs []string
	var current strings.Builder
	flush := func() {
		p := strings.Join(strings.Fields(current.String()), " ")
		if len(p) > 30 {
			paragraphs = append(paragraphs, p)
		}
		current.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			flush()
			continue
		}
		if isJunk(line) {
			continue
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(line)
		if strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") || strings.HasSuffix(line, "?") {
			flush()
		}
	}
	flush()

	result := strings.Join(paragraphs, "\n\n")
	if len(result) <= maxContentLength {
		return result
	}

	var selected []string
	total := 0
	for _, p := range paragraphs {
		if total+len(p) >= trimTarget {
			break
		}
		selected = append(selected, p)
		total += len(p) + 2
	}
	if len(selected) == 0 {
		return strings.ToValidUTF8(result[:trimTarget], "")
	}
	return strings.Join(selected, "\n\n")
}

func isJunk(line string) bool {
	lower := strings.ToLower(line)
	for _, indicator := range junkIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
