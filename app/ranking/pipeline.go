package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/rss-top-news/app/feed"
)

type CollectorInterface interface {
	Run(ctx context.Context, sources []string) feed.Collection
}

var _ CollectorInterface = (*feed.Aggregator)(nil)

type Pipeline struct {
	collector CollectorInterface
	filter    *DateFilter
	scorer    *Scorer
	ranker    *Ranker
	selector  *Selector
	now       func() time.Time
}

// NewPipeline builds the request pipeline. Calendar days are taken in loc
// (nil means time.Local); now defaults to time.Now.
func NewPipeline(collector CollectorInterface, loc *time.Location, limit int, now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		collector: collector,
		filter:    NewDateFilter(loc),
		scorer:    NewScorer(),
		ranker:    NewRanker(loc),
		selector:  NewSelector(limit),
		now:       now,
	}
}

// Run returns the top articles published today for query. Failing sources
// only reduce the candidate set; an error means the pipeline itself broke.
func (p *Pipeline) Run(ctx context.Context, query feed.Query) (articles []Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			articles = nil
			err = fmt.Errorf("ranking pipeline failed: %v", r)
		}
	}()

	// one instant for every item of the request
	now := p.now()

	collection := p.collector.Run(ctx, query.Sources)

	items := p.filter.Run(collection.Items, now)
	p.scorer.Run(items, query.Keywords)
	p.ranker.Run(items)
	articles = p.selector.Run(items)

	slog.Debug("Top news selected",
		"sources", collection.SourceCount,
		"failed_sources", collection.FailedSources,
		"candidates", len(collection.Items),
		"today", len(items),
		"keywords", len(query.Keywords),
		"returned", len(articles))

	return articles, nil
}
