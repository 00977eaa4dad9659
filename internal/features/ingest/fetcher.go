package ingest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
)

// Item is one normalized feed entry, ready for storage
type Item struct {
	Title       string
	Link        string
	Description string
	ImageURL    string
	PublishedAt time.Time
}

// Fetcher retrieves and normalizes one feed URL
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]Item, error)
}

// FeedFetcher parses RSS/Atom feeds over HTTP
type FeedFetcher struct {
	parser *gofeed.Parser
}

func NewFeedFetcher() *FeedFetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 10 * time.Second}
	parser.UserAgent = "Mozilla/5.0 (compatible; GvoneBot/1.0)"
	return &FeedFetcher{parser: parser}
}

func (f *FeedFetcher) Fetch(ctx context.Context, feedURL string) ([]Item, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}
	return itemsFromFeed(feed), nil
}

// itemsFromFeed extracts the fields we store. Entries without a title
// or link are dropped; missing publish dates fall back to now.
func itemsFromFeed(feed *gofeed.Feed) []Item {
	var items []Item
	for _, entry := range feed.Items {
		if entry.Title == "" || entry.Link == "" {
			continue
		}

		published := time.Now().UTC()
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		}

		description := entry.Description
		if description == "" {
			description = entry.Content
		}

		items = append(items, Item{
			Title:       entry.Title,
			Link:        entry.Link,
			Description: description,
			ImageURL:    itemImage(entry),
			PublishedAt: published,
		})
	}
	return items
}

// itemImage walks the usual places feeds hide images: an image
// enclosure, media:content, media:thumbnail, the feed-level item
// image, and finally the first <img> in the content HTML.
func itemImage(entry *gofeed.Item) string {
	for _, enc := range entry.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image") {
			return enc.URL
		}
	}

	if media, ok := entry.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, ext := range media[key] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}

	if src := firstImageSrc(entry.Content); src != "" {
		return src
	}
	return firstImageSrc(entry.Description)
}

// firstImageSrc returns the src of the first <img> tag in an HTML
// fragment, or "" when there is none or the fragment will not parse.
func firstImageSrc(content string) string {
	if content == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var src string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if src != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "img" {
			for _, attr := range n.Attr {
				if attr.Key == "src" && attr.Val != "" {
					src = attr.Val
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return src
}
