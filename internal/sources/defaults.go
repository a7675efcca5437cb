package sources

// DefaultDefinition is the built-in feed table: Indian national outlets,
// international outlets, curated per-city bundles and the city lexicon.
func DefaultDefinition() Definition {
	return Definition{
		National: []FeedDef{
			{ID: "times_of_india", URL: "https://timesofindia.indiatimes.com/rssfeeds/1221656.cms"},
			{ID: "hindustan_times", URL: "https://www.hindustantimes.com/rss/topnews/rssfeed.xml"},
			{ID: "the_hindu", URL: "https://www.thehindu.com/news/national/feeder/default.rss"},
			{ID: "indian_express", URL: "https://indianexpress.com/section/india/feed/"},
			{ID: "ndtv", URL: "https://feeds.feedburner.com/ndtvnews-top-stories"},
			{ID: "business_standard", URL: "https://www.business-standard.com/rss/home_page_top_stories.cms"},
		},
		Global: []FeedDef{
			{ID: "bbc_world", URL: "http://feeds.bbci.co.uk/news/world/rss.xml"},
			{ID: "cnn", URL: "http://rss.cnn.com/rss/edition.rss"},
			{ID: "reuters", URL: "https://feeds.reuters.com/reuters/topNews"},
			{ID: "guardian_world", URL: "https://www.theguardian.com/world/rss"},
			{ID: "aljazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml"},
			{ID: "nyt_world", URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml"},
			{ID: "fox_news", URL: "https://moxie.foxnews.com/google-publisher/world.xml"},
			{ID: "dw_world", URL: "https://rss.dw.com/rdf/rss-en-all"},
			{ID: "bbc_us", URL: "http://feeds.bbci.co.uk/news/world/us_and_canada/rss.xml"},
			{ID: "cnn_us", URL: "http://rss.cnn.com/rss/edition_us.rss"},
			{ID: "reuters_us", URL: "https://feeds.reuters.com/reuters/domesticNews"},
			{ID: "guardian_us", URL: "https://www.theguardian.com/us-news/rss"},
			{ID: "nyt_us", URL: "https://rss.nytimes.com/services/xml/rss/nyt/US.xml"},
			{ID: "npr_us", URL: "https://feeds.npr.org/1001/rss.xml"},
			{ID: "abc_us", URL: "https://abcnews.go.com/abcnews/topstories"},
			{ID: "cbs_us", URL: "https://www.cbsnews.com/latest/rss/main"},
			{ID: "nbc_us", URL: "https://feeds.nbcnews.com/nbcnews/public/news"},
			{ID: "usa_today", URL: "https://rssfeeds.usatoday.com/usatoday-NewsTopStories"},
		},
		Local: map[string][]string{
			"kanpur": {
				"https://timesofindia.indiatimes.com/rssfeeds/2886704.cms",
				"https://www.hindustantimes.com/rss/india/rssfeed.xml",
				"https://indianexpress.com/section/india/feed/",
				"https://www.dailypioneer.com/rss/rss.xml",
				"https://www.amarujala.com/rss/uttar-pradesh.xml",
				"https://www.jagran.com/rss/uttar-pradesh.xml",
				"https://www.bhaskar.com/rss/uttar-pradesh.xml",
				"https://feeds.feedburner.com/ndtvnews-india",
				"https://feeds.reuters.com/reuters/INtopNews",
			},
			"mumbai": {
				"https://timesofindia.indiatimes.com/rssfeeds/2886704.cms",
				"https://www.hindustantimes.com/rss/mumbai/rssfeed.xml",
				"https://www.mid-day.com/rss.xml",
				"https://www.dnaindia.com/rss/mumbai.xml",
				"https://www.freepressjournal.in/rss/mumbai.xml",
			},
			"delhi": {
				"https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
				"https://www.hindustantimes.com/rss/delhi/rssfeed.xml",
				"https://www.dnaindia.com/rss/delhi.xml",
				"https://www.mid-day.com/rss.xml",
				"https://www.thehindu.com/news/cities/Delhi/rssfeeds/2886704.cms",
			},
			"bangalore": {
				"https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
				"https://www.hindustantimes.com/rss/bangalore/rssfeed.xml",
				"https://www.deccanherald.com/rss.xml",
				"https://www.thehindu.com/news/cities/bangalore/rssfeeds/2886704.cms",
			},
			"chennai": {
				"https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
				"https://www.hindustantimes.com/rss/chennai/rssfeed.xml",
				"https://www.thehindu.com/news/cities/chennai/rssfeeds/2886704.cms",
				"https://www.dtnext.in/rss.xml",
			},
			"kolkata": {
				"https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
				"https://www.hindustantimes.com/rss/kolkata/rssfeed.xml",
				"https://www.telegraphindia.com/rss.xml",
				"https://www.anandabazar.com/rss.xml",
			},
			"hyderabad": {
				"https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
				"https://www.hindustantimes.com/rss/hyderabad/rssfeed.xml",
				"https://www.thehindu.com/news/cities/hyderabad/rssfeeds/2886704.cms",
				"https://www.deccanchronicle.com/rss.xml",
			},
			"pune": {
				"https://timesofindia.indiatimes.com/rssfeeds/2886704.cms",
				"https://www.hindustantimes.com/rss/pune/rssfeed.xml",
				"https://www.sakaltimes.com/rss.xml",
				"https://www.loksatta.com/rss.xml",
			},
			"ahmedabad": {
				"https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
				"https://www.hindustantimes.com/rss/ahmedabad/rssfeed.xml",
				"https://www.gujaratsamachar.com/rss.xml",
				"https://www.divyabhaskar.co.in/rss.xml",
			},
			"jaipur": {
				"https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
				"https://www.hindustantimes.com/rss/jaipur/rssfeed.xml",
				"https://www.patrika.com/rss.xml",
				"https://www.dainikbhaskar.com/rss/rajasthan.xml",
			},
		},
		Specific: map[string]string{
			"kanpur":    "https://timesofindia.indiatimes.com/rssfeeds/2886704.cms",
			"mumbai":    "https://timesofindia.indiatimes.com/rssfeeds/2886704.cms",
			"delhi":     "https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
			"bangalore": "https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
			"chennai":   "https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
			"kolkata":   "https://timesofindia.indiatimes.com/rssfeeds/-2128838597.cms",
		},
		Lexicon: map[string][]string{
			"kanpur":        {"kanpur", "kanpur nagar", "uttar pradesh", "up"},
			"mumbai":        {"mumbai", "maharashtra", "bombay", "india"},
			"delhi":         {"delhi", "new delhi", "nct", "national capital", "india"},
			"bangalore":     {"bangalore", "bengaluru", "karnataka"},
			"chennai":       {"chennai", "madras", "tamil nadu", "tamilnadu"},
			"kolkata":       {"kolkata", "calcutta", "west bengal"},
			"hyderabad":     {"hyderabad", "telangana", "andhra pradesh"},
			"pune":          {"pune", "maharashtra"},
			"ahmedabad":     {"ahmedabad", "gujarat"},
			"jaipur":        {"jaipur", "rajasthan"},
			"lucknow":       {"lucknow", "uttar pradesh", "up"},
			"bhopal":        {"bhopal", "madhya pradesh", "mp"},
			"patna":         {"patna", "bihar"},
			"chandigarh":    {"chandigarh", "punjab", "haryana"},
			"kochi":         {"kochi", "cochin", "kerala"},
			"indore":        {"indore", "madhya pradesh", "mp"},
			"coimbatore":    {"coimbatore", "tamil nadu", "tamilnadu"},
			"vadodara":      {"vadodara", "baroda", "gujarat"},
			"nagpur":        {"nagpur", "maharashtra"},
			"visakhapatnam": {"visakhapatnam", "vizag", "andhra pradesh"},
			"santa clara":   {"santa clara", "california", "san francisco bay area", "silicon valley", "bay area"},
			"san francisco": {"san francisco", "sf", "california", "bay area"},
			"new york":      {"new york", "nyc", "manhattan", "brooklyn", "queens", "bronx", "staten island"},
			"los angeles":   {"los angeles", "la", "california", "hollywood", "beverly hills"},
			"chicago":       {"chicago", "illinois", "windy city"},
			"london":        {"london", "england", "uk", "united kingdom", "britain"},
			"paris":         {"paris", "france", "french"},
			"tokyo":         {"tokyo", "japan", "japanese"},
			"sydney":        {"sydney", "australia", "australian"},
			"toronto":       {"toronto", "canada", "canadian", "ontario"},
			"berlin":        {"berlin", "germany", "german"},
			"singapore":     {"singapore", "singaporean"},
			"dubai":         {"dubai", "uae", "united arab emirates"},
		},
		Regions: []Region{
			{Match: []string{"california", "santa clara"}, Keywords: []string{"california", "us", "usa", "united states", "america"}},
			{Match: []string{"new york"}, Keywords: []string{"new york", "ny", "us", "usa", "united states", "america"}},
			{Match: []string{"london"}, Keywords: []string{"london", "england", "uk", "britain", "united kingdom"}},
			{Match: []string{"paris"}, Keywords: []string{"paris", "france", "french"}},
			{Match: []string{"tokyo"}, Keywords: []string{"tokyo", "japan", "japanese"}},
		},
	}
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := New(DefaultDefinition())
	if err != nil {
		// the built-in table is static; a failure here is a programming error
		panic(err)
	}
	return r
}
