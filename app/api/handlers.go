package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/rss-top-news/app/feed"
)

func NewHandler(resolver *feed.Resolver, pipeline PipelineInterface) *Handler {
	return &Handler{
		resolver: resolver,
		pipeline: pipeline,
	}
}

func (h *Handler) GetTopNews(c *gin.Context) {
	query := h.resolver.Resolve(queryValues(c, "feed"), queryValues(c, "keyword"))

	articles, err := h.pipeline.Run(c.Request.Context(), query)
	if err != nil {
		slog.Error("Top news pipeline error", "sources", len(query.Sources), "keywords", len(query.Keywords), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// queryValues accepts both ?key=a&key=b and ?key[]=a&key[]=b.
func queryValues(c *gin.Context, key string) []string {
	values := c.QueryArray(key)
	return append(values, c.QueryArray(key+"[]")...)
}
