package api

import (
	"context"

	"github.com/lysyi3m/rss-top-news/app/feed"
	"github.com/lysyi3m/rss-top-news/app/ranking"
)

type PipelineInterface interface {
	Run(ctx context.Context, query feed.Query) ([]ranking.Article, error)
}

var _ PipelineInterface = (*ranking.Pipeline)(nil)

type Handler struct {
	resolver *feed.Resolver
	pipeline PipelineInterface
}
