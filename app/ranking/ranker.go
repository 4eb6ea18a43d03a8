package ranking

import (
	"slices"
	"time"
)

type Ranker struct {
	location *time.Location
}

func NewRanker(loc *time.Location) *Ranker {
	return &Ranker{location: loc}
}

// Run sorts items by score, then by publication time, both descending.
// Exact ties keep their input order.
func (r *Ranker) Run(items []ScoredItem) {
	loc := r.location
	if loc == nil {
		loc = time.Local
	}

	for i := range items {
		if items[i].PublishedAt.IsZero() {
			// unparseable dates become the zero time and sort last among equal scores
			items[i].PublishedAt, _ = PublishedAt(items[i].RawItem, loc)
		}
	}

	slices.SortStableFunc(items, func(a, b ScoredItem) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}
