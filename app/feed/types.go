package feed

import (
	"time"
)

// RawItem is one parsed feed entry before filtering and scoring.
type RawItem struct {
	Title          string
	Link           string
	PubDate        string     // as published by the feed, possibly unparseable
	Published      *time.Time // parser-provided timestamp, nil when the feed date was not understood
	ContentSnippet string     // plain text of content, falling back to description
	Summary        string     // Atom summary
	Description    string     // RSS description
	Source         string     // RSS <source> title
	Creator        string     // dc:creator, falling back to the author name

	FeedURL string
}

// Body returns the text scored alongside the title.
func (i RawItem) Body() string {
	for _, v := range []string{i.ContentSnippet, i.Summary, i.Description} {
		if v != "" {
			return v
		}
	}
	return ""
}

// Query is the normalized input of one top-news request.
type Query struct {
	Sources  []string
	Keywords []string
}

// Collection is the concatenated result of fetching every source of a query.
type Collection struct {
	Items         []RawItem
	SourceCount   int
	FailedSources int
}
