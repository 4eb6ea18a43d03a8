package ranking

import "cmp"

const DefaultLimit = 5

type Selector struct {
	limit int
}

func NewSelector(limit int) *Selector {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Selector{limit: limit}
}

// Run projects the first items of a ranked list. The result is never nil.
func (s *Selector) Run(items []ScoredItem) []Article {
	n := min(len(items), s.limit)

	articles := make([]Article, 0, n)
	for _, item := range items[:n] {
		articles = append(articles, Article{
			Title:   item.Title,
			Link:    item.Link,
			PubDate: item.PubDate,
			Source:  cmp.Or(item.Source, item.Creator),
			Score:   item.Score,
		})
	}
	return articles
}
