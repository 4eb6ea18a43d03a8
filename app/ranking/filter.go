package ranking

import (
	"log/slog"
	"time"

	"github.com/araddon/dateparse"
	"github.com/lysyi3m/rss-top-news/app/feed"
)

// PublishedAt resolves the publication instant of an item: the parser's
// timestamp when present, else a best-effort parse of the raw date string
// in loc.
func PublishedAt(item feed.RawItem, loc *time.Location) (time.Time, bool) {
	if item.Published != nil && !item.Published.IsZero() {
		return *item.Published, true
	}
	if item.PubDate == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(item.PubDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type DateFilter struct {
	location *time.Location
}

// NewDateFilter compares calendar days in loc; nil means time.Local.
func NewDateFilter(loc *time.Location) *DateFilter {
	return &DateFilter{location: loc}
}

func (f *DateFilter) loc() *time.Location {
	if f.location == nil {
		return time.Local
	}
	return f.location
}

// Run keeps the items published on the calendar day of now.
func (f *DateFilter) Run(items []feed.RawItem, now time.Time) []ScoredItem {
	loc := f.loc()
	year, month, day := now.In(loc).Date()

	kept := make([]ScoredItem, 0, len(items))
	undated := 0
	for _, item := range items {
		publishedAt, ok := PublishedAt(item, loc)
		if !ok {
			undated++
			continue
		}

		y, m, d := publishedAt.In(loc).Date()
		if y != year || m != month || d != day {
			continue
		}

		kept = append(kept, ScoredItem{RawItem: item, PublishedAt: publishedAt})
	}

	slog.Debug("Items filtered by date",
		"total", len(items),
		"today", len(kept),
		"undated", undated)

	return kept
}
