package ranking

import (
	"time"

	"github.com/lysyi3m/rss-top-news/app/feed"
)

// ScoredItem is a RawItem that passed the date filter. Score is filled in
// by the Scorer.
type ScoredItem struct {
	feed.RawItem
	PublishedAt time.Time
	Score       int
}

// Article is the public projection of a ranked item. Empty title, link and
// pubDate are left out of the JSON entirely.
type Article struct {
	Title   string `json:"title,omitempty"`
	Link    string `json:"link,omitempty"`
	PubDate string `json:"pubDate,omitempty"`
	Source  string `json:"source"`
	Score   int    `json:"score"`
}
