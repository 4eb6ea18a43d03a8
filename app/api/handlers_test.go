package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/lysyi3m/rss-top-news/app/feed"
	"github.com/lysyi3m/rss-top-news/app/ranking"
)

type stubPipeline struct {
	query    feed.Query
	articles []ranking.Article
	err      error
	panics   bool
}

func (s *stubPipeline) Run(ctx context.Context, query feed.Query) ([]ranking.Article, error) {
	if s.panics {
		panic("unexpected nil item")
	}
	s.query = query
	return s.articles, s.err
}

func serve(handler *Handler, method, target string) *httptest.ResponseRecorder {
	server := NewServer(handler, false)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	server.ServeHTTP(w, req)
	return w
}

func TestGetTopNews_DefaultsWhenNoFeeds(t *testing.T) {
	pipeline := &stubPipeline{articles: []ranking.Article{}}
	handler := NewHandler(feed.NewResolver(nil), pipeline)

	w := serve(handler, http.MethodGet, "/top-news")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("Expected empty JSON array, got %s", w.Body.String())
	}
	if !reflect.DeepEqual(pipeline.query.Sources, feed.DefaultSources()) {
		t.Errorf("Expected default sources, got %v", pipeline.query.Sources)
	}
	if len(pipeline.query.Keywords) != 0 {
		t.Errorf("Expected no keywords, got %v", pipeline.query.Keywords)
	}
}

func TestGetTopNews_ScalarAndRepeatedParameters(t *testing.T) {
	pipeline := &stubPipeline{articles: []ranking.Article{}}
	handler := NewHandler(feed.NewResolver(nil), pipeline)

	params := url.Values{}
	params.Add("feed", "https://a.example/rss")
	params.Add("feed", "https://a.example/rss")
	params.Add("feed[]", "https://b.example/rss")
	params.Add("keyword", " Climate ")
	params.Add("keyword", "  ")
	params.Add("keyword[]", "AI")

	w := serve(handler, http.MethodGet, "/top-news?"+params.Encode())

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	expectedSources := []string{"https://a.example/rss", "https://a.example/rss", "https://b.example/rss"}
	if !reflect.DeepEqual(pipeline.query.Sources, expectedSources) {
		t.Errorf("Expected sources %v, got %v", expectedSources, pipeline.query.Sources)
	}

	expectedKeywords := []string{"climate", "ai"}
	if !reflect.DeepEqual(pipeline.query.Keywords, expectedKeywords) {
		t.Errorf("Expected keywords %v, got %v", expectedKeywords, pipeline.query.Keywords)
	}
}

func TestGetTopNews_PipelineError(t *testing.T) {
	pipeline := &stubPipeline{err: errors.New("ranking pipeline failed: boom")}
	handler := NewHandler(feed.NewResolver(nil), pipeline)

	w := serve(handler, http.MethodGet, "/top-news")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %s", w.Body.String())
	}
	if body["error"] != "ranking pipeline failed: boom" {
		t.Errorf("Expected error message, got %q", body["error"])
	}
}

func TestGetTopNews_PanicReturnsJSONError(t *testing.T) {
	handler := NewHandler(feed.NewResolver(nil), &stubPipeline{panics: true})

	w := serve(handler, http.MethodGet, "/top-news")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %s", w.Body.String())
	}
	if body["error"] != "unexpected nil item" {
		t.Errorf("Expected panic message, got %q", body["error"])
	}
}

func TestCORS(t *testing.T) {
	handler := NewHandler(feed.NewResolver(nil), &stubPipeline{articles: []ranking.Article{}})

	w := serve(handler, http.MethodGet, "/top-news")
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected CORS header on GET, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	w = serve(handler, http.MethodOptions, "/top-news")
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected CORS header on preflight, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestUnknownRoute(t *testing.T) {
	handler := NewHandler(feed.NewResolver(nil), &stubPipeline{})

	w := serve(handler, http.MethodGet, "/health")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

const endToEndRSS = `<?xml version="1.0"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>End to end</title>
    <item>
      <title>Budget vote today</title>
      <link>https://example.com/budget</link>
      <description>Parliament debates the budget</description>
      <pubDate>%s</pubDate>
      <dc:creator>Desk</dc:creator>
    </item>
    <item>
      <title>Local sports</title>
      <link>https://example.com/sports</link>
      <description>Scores from the weekend</description>
      <pubDate>%s</pubDate>
    </item>
    <item>
      <title>Old budget story</title>
      <link>https://example.com/old</link>
      <pubDate>Mon, 03 Jul 2000 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func newEndToEndServer(t *testing.T) *httptest.Server {
	t.Helper()
	published := time.Now().Format(time.RFC1123Z)
	mux := http.NewServeMux()
	mux.HandleFunc("/rss", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, endToEndRSS, published, published)
	})
	mux.HandleFunc("/down", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newEndToEndHandler(server *httptest.Server) *Handler {
	fetcher := feed.NewFetcher(server.Client(), "Test Agent", 5*time.Second, 1<<20)
	aggregator := feed.NewAggregator(fetcher, feed.NewParser(), 4)
	pipeline := ranking.NewPipeline(aggregator, time.Local, ranking.DefaultLimit, time.Now)
	return NewHandler(feed.NewResolver(nil), pipeline)
}

func TestGetTopNews_EndToEnd(t *testing.T) {
	server := newEndToEndServer(t)
	handler := newEndToEndHandler(server)

	params := url.Values{}
	params.Add("feed", server.URL+"/rss")
	params.Add("feed", server.URL+"/down")
	params.Add("keyword", "Budget")

	w := serve(handler, http.MethodGet, "/top-news?"+params.Encode())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var articles []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &articles); err != nil {
		t.Fatalf("Expected JSON array, got %s", w.Body.String())
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles published today, got %d", len(articles))
	}
	if articles[0]["title"] != "Budget vote today" {
		t.Errorf("Expected keyword match first, got %v", articles[0]["title"])
	}
	if articles[0]["score"] != float64(1) {
		t.Errorf("Expected score 1, got %v", articles[0]["score"])
	}
	if articles[0]["source"] != "Desk" {
		t.Errorf("Expected creator as source, got %v", articles[0]["source"])
	}
	if articles[1]["score"] != float64(0) {
		t.Errorf("Expected score 0, got %v", articles[1]["score"])
	}
}

func TestGetTopNews_AllFeedsFail(t *testing.T) {
	server := newEndToEndServer(t)
	handler := newEndToEndHandler(server)

	params := url.Values{}
	params.Add("feed", server.URL+"/down")
	params.Add("feed", "http://127.0.0.1:0/unreachable")

	w := serve(handler, http.MethodGet, "/top-news?"+params.Encode())

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("Expected empty JSON array, got %s", w.Body.String())
	}
}
