package app

// Topic is a selectable news topic. Name is what the filters match on.
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// TimeRange is a selectable time window preset.
type TimeRange struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

var topics = []Topic{
	{ID: "general", Name: "General News", Icon: "📰"},
	{ID: "technology", Name: "Technology", Icon: "💻"},
	{ID: "ai", Name: "Artificial Intelligence", Icon: "🤖"},
	{ID: "business", Name: "Business", Icon: "💼"},
	{ID: "stocks", Name: "Stock Market", Icon: "📈"},
	{ID: "finance", Name: "Finance", Icon: "💰"},
	{ID: "politics", Name: "Politics", Icon: "🏛️"},
	{ID: "world", Name: "World News", Icon: "🌍"},
	{ID: "science", Name: "Science", Icon: "🔬"},
	{ID: "health", Name: "Health", Icon: "🏥"},
	{ID: "sports", Name: "Sports", Icon: "⚽"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬"},
	{ID: "crime", Name: "Crime", Icon: "🚨"},
	{ID: "education", Name: "Education", Icon: "📚"},
	{ID: "environment", Name: "Environment", Icon: "🌱"},
	{ID: "energy", Name: "Energy", Icon: "⚡"},
	{ID: "space", Name: "Space", Icon: "🚀"},
	{ID: "weather", Name: "Weather", Icon: "🌤️"},
	{ID: "travel", Name: "Travel", Icon: "✈️"},
	{ID: "food", Name: "Food & Dining", Icon: "🍽️"},
	{ID: "lifestyle", Name: "Lifestyle", Icon: "🌟"},
	{ID: "automotive", Name: "Automotive", Icon: "🚗"},
	{ID: "real-estate", Name: "Real Estate", Icon: "🏠"},
	{ID: "cryptocurrency", Name: "Cryptocurrency", Icon: "₿"},
	{ID: "startups", Name: "Startups", Icon: "🚀"},
}

// "custom" has no fixed window; requests carrying it are not time filtered.
var timeRanges = []TimeRange{
	{ID: "1h", Label: "Last Hour", Value: "1h", Description: "Breaking news"},
	{ID: "24h", Label: "Last 24 Hours", Value: "24h", Description: "Today's news"},
	{ID: "7d", Label: "Last Week", Value: "7d", Description: "Weekly roundup"},
	{ID: "30d", Label: "Last Month", Value: "30d", Description: "Monthly digest"},
	{ID: "custom", Label: "Custom Range", Value: "custom", Description: "Choose dates"},
}

// Topics returns the topic catalogue.
func Topics() []Topic {
	return append([]Topic(nil), topics...)
}

func TimeRanges() []TimeRange {
	return append([]TimeRange(nil), timeRanges...)
}

// TopicName resolves a topic id to its display name, or "" when unknown.
func TopicName(id string) string {
	for _, t := range topics {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}
