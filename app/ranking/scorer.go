package ranking

import (
	"strings"

	"github.com/lysyi3m/rss-top-news/app/feed"
)

type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score counts the keywords found in the item's title and body. Keywords
// are expected to be normalized already; a keyword listed twice counts twice.
func (s *Scorer) Score(item feed.RawItem, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}

	text := feed.Lower(item.Title) + " " + feed.Lower(item.Body())

	score := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			score++
		}
	}
	return score
}

func (s *Scorer) Run(items []ScoredItem, keywords []string) {
	for i := range items {
		items[i].Score = s.Score(items[i].RawItem, keywords)
	}
}
