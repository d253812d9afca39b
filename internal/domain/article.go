package domain

import "time"

// Article is a news item about a company supplied by an article source.
type Article struct {
	ID          string
	Title       string
	Content     string
	URL         string
	Source      string
	PublishedAt time.Time
	// Sentiment is set when the source already scored the article.
	Sentiment *float64
}
