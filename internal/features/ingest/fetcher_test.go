package ingest

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Example News</title>
    <item>
      <title>With enclosure</title>
      <link>https://example.com/a</link>
      <description>First article</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
      <enclosure url="https://example.com/a.jpg" length="1000" type="image/jpeg"/>
    </item>
    <item>
      <title>With media content</title>
      <link>https://example.com/b</link>
      <description>Second article</description>
      <media:content url="https://example.com/b.png" medium="image"/>
    </item>
    <item>
      <title>With inline image</title>
      <link>https://example.com/c</link>
      <description><![CDATA[<p>Intro</p><img src="https://example.com/c.gif" alt=""/>]]></description>
    </item>
    <item>
      <title></title>
      <link>https://example.com/no-title</link>
    </item>
    <item>
      <title>No link</title>
    </item>
  </channel>
</rss>`

func parseSample(t *testing.T) []Item {
	t.Helper()
	feed, err := gofeed.NewParser().ParseString(sampleRSS)
	require.NoError(t, err)
	return itemsFromFeed(feed)
}

func TestItemsFromFeed_DropsIncompleteEntries(t *testing.T) {
	items := parseSample(t)
	require.Len(t, items, 3, "entries without title or link are dropped")
}

func TestItemsFromFeed_PublishedDates(t *testing.T) {
	items := parseSample(t)

	want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	require.Equal(t, want, items[0].PublishedAt)

	// No pubDate falls back to roughly now
	require.WithinDuration(t, time.Now().UTC(), items[1].PublishedAt, time.Minute)
}

func TestItemImage_EnclosureWins(t *testing.T) {
	items := parseSample(t)
	require.Equal(t, "https://example.com/a.jpg", items[0].ImageURL)
}

func TestItemImage_MediaContent(t *testing.T) {
	items := parseSample(t)
	require.Equal(t, "https://example.com/b.png", items[1].ImageURL)
}

func TestItemImage_InlineHTMLFallback(t *testing.T) {
	items := parseSample(t)
	require.Equal(t, "https://example.com/c.gif", items[2].ImageURL)
}

func TestFirstImageSrc(t *testing.T) {
	require.Equal(t, "https://x.test/i.png",
		firstImageSrc(`<div><p>text</p><img src="https://x.test/i.png"></div>`))
	require.Equal(t, "", firstImageSrc("<p>no image here</p>"))
	require.Equal(t, "", firstImageSrc(""))
	require.Equal(t, "", firstImageSrc(`<img alt="no src">`))

	// First of several
	require.Equal(t, "one.png", firstImageSrc(`<img src="one.png"><img src="two.png">`))
}
