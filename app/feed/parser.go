package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
)

const customSourceKey = "source"

type Metadata struct {
	Title    string
	Link     string
	FeedType string
}

type Parser struct {
	stripPolicy *bluemonday.Policy
}

func NewParser() *Parser {
	stripPolicy := bluemonday.StrictPolicy()
	stripPolicy.AddSpaceWhenStrippingTag(true)

	return &Parser{
		stripPolicy: stripPolicy,
	}
}

// Run parses RSS, Atom or JSON feed data. gofeed parsers keep decoding
// state, so a fresh one is built per call.
func (p *Parser) Run(data []byte) (*Metadata, []RawItem, error) {
	gofeedParser := gofeed.NewParser()
	gofeedParser.RSSTranslator = &sourceRSSTranslator{}

	feed, err := gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:    feed.Title,
		Link:     feed.Link,
		FeedType: feed.FeedType,
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, p.normalizeItem(item, feed.FeedType))
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item, feedType string) RawItem {
	normalized := RawItem{
		Title:          item.Title,
		Link:           item.Link,
		PubDate:        cmp.Or(item.Published, item.Updated),
		Creator:        p.extractCreator(item),
	}

	if item.PublishedParsed != nil {
		normalized.Published = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		normalized.Published = item.UpdatedParsed
	}

	// gofeed maps the Atom <summary> onto Description. RSS snippets come
	// from <description> only; <content:encoded> is not searched.
	if feedType == "atom" {
		normalized.Summary = item.Description
		normalized.ContentSnippet = p.snippet(cmp.Or(item.Content, item.Description))
	} else {
		normalized.Description = item.Description
		normalized.ContentSnippet = p.snippet(item.Description)
	}

	if item.Custom != nil {
		normalized.Source = item.Custom[customSourceKey]
	}

	return normalized
}

func (p *Parser) snippet(content string) string {
	if content == "" {
		return ""
	}
	text := html.UnescapeString(p.stripPolicy.Sanitize(content))
	return strings.Join(strings.Fields(text), " ")
}

func (p *Parser) extractCreator(item *gofeed.Item) string {
	if item.DublinCoreExt != nil {
		for _, creator := range item.DublinCoreExt.Creator {
			if creator = strings.TrimSpace(creator); creator != "" {
				return creator
			}
		}
	}

	if item.Author != nil {
		if name := strings.TrimSpace(item.Author.Name); name != "" {
			return name
		}
	}

	for _, author := range item.Authors {
		if author != nil && strings.TrimSpace(author.Name) != "" {
			return strings.TrimSpace(author.Name)
		}
	}

	return ""
}

// sourceRSSTranslator keeps the RSS <source> element, which the universal
// gofeed item does not carry.
type sourceRSSTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *sourceRSSTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	rssFeed, ok := feed.(*rss.Feed)
	if !ok {
		return nil, fmt.Errorf("feed did not match expected type of *rss.Feed")
	}

	result, err := t.DefaultRSSTranslator.Translate(rssFeed)
	if err != nil {
		return nil, err
	}

	if len(result.Items) != len(rssFeed.Items) {
		return result, nil
	}

	for i, rssItem := range rssFeed.Items {
		if rssItem == nil || rssItem.Source == nil || result.Items[i] == nil {
			continue
		}
		title := strings.TrimSpace(rssItem.Source.Title)
		if title == "" {
			continue
		}
		if result.Items[i].Custom == nil {
			result.Items[i].Custom = make(map[string]string)
		}
		result.Items[i].Custom[customSourceKey] = title
	}

	return result, nil
}
