package feed

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

type FetcherInterface interface {
	Run(ctx context.Context, url string) ([]byte, error)
}

var _ FetcherInterface = (*Fetcher)(nil)

type Aggregator struct {
	fetcher        FetcherInterface
	parser         *Parser
	maxConcurrency int
}

func NewAggregator(fetcher FetcherInterface, parser *Parser, maxConcurrency int) *Aggregator {
	return &Aggregator{
		fetcher:        fetcher,
		parser:         parser,
		maxConcurrency: maxConcurrency,
	}
}

// sourceResult is the outcome of one source: items or err, never both.
type sourceResult struct {
	items []RawItem
	err   error
}

func (r sourceResult) itemsOrEmpty() []RawItem {
	if r.err != nil {
		return nil
	}
	return r.items
}

// Run fetches and parses every source concurrently and joins the results
// in source order. A failing source contributes no items and never fails
// the collection.
func (a *Aggregator) Run(ctx context.Context, sources []string) Collection {
	start := time.Now()
	results := make([]sourceResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}

	for i, source := range sources {
		g.Go(func() error {
			results[i] = a.collectSource(gctx, source)
			return nil
		})
	}
	// goroutines only report through results
	_ = g.Wait()

	collection := Collection{SourceCount: len(sources)}
	for i, result := range results {
		if result.err != nil {
			collection.FailedSources++
			slog.Warn("Feed source skipped", "feed", sources[i], "error", result.err)
			continue
		}
		collection.Items = append(collection.Items, result.itemsOrEmpty()...)
	}

	slog.Debug("Feed sources collected",
		"sources", collection.SourceCount,
		"failed", collection.FailedSources,
		"items", len(collection.Items),
		"duration", time.Since(start))

	return collection
}

func (a *Aggregator) collectSource(ctx context.Context, source string) sourceResult {
	if err := ctx.Err(); err != nil {
		return sourceResult{err: err}
	}

	data, err := a.fetcher.Run(ctx, source)
	if err != nil {
		return sourceResult{err: err}
	}

	metadata, items, err := a.parser.Run(data)
	if err != nil {
		return sourceResult{err: err}
	}

	for i := range items {
		items[i].FeedURL = source
	}

	slog.Debug("Feed parsed", "feed", source, "title", metadata.Title, "type", metadata.FeedType, "items", len(items))

	return sourceResult{items: items}
}
