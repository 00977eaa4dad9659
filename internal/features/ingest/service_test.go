package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/gvone/gvone-api/pkg/errors"
)

type memStore struct {
	channels map[string]*Channel
	posts    map[string]*ChannelPost // channelID|refID
}

func newIngestMemStore() *memStore {
	return &memStore{
		channels: make(map[string]*Channel),
		posts:    make(map[string]*ChannelPost),
	}
}

func (m *memStore) GetChannel(_ context.Context, id string) (*Channel, error) {
	channel, ok := m.channels[id]
	if !ok {
		return nil, fmt.Errorf("channel %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *channel
	return &cp, nil
}

func (m *memStore) ListChannels(_ context.Context, limit int) ([]Channel, error) {
	var channels []Channel
	for _, c := range m.channels {
		if len(channels) >= limit {
			break
		}
		channels = append(channels, *c)
	}
	return channels, nil
}

func (m *memStore) InsertPost(_ context.Context, post *ChannelPost) (bool, error) {
	key := post.ChannelID + "|" + post.RefID
	if _, ok := m.posts[key]; ok {
		return false, nil
	}
	m.posts[key] = post
	return true, nil
}

// fakeFetcher serves canned items per URL; unknown URLs fail
type fakeFetcher struct {
	feeds map[string][]Item
}

func (f *fakeFetcher) Fetch(_ context.Context, feedURL string) ([]Item, error) {
	items, ok := f.feeds[feedURL]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return items, nil
}

func testItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			Title:       fmt.Sprintf("Article %d", i+1),
			Link:        fmt.Sprintf("https://example.com/articles/%d", i+1),
			Description: "body",
			PublishedAt: time.Now().UTC(),
		}
	}
	return items
}

func TestRun_AddsNewItems(t *testing.T) {
	store := newIngestMemStore()
	store.channels["ch1"] = &Channel{ID: "ch1", Name: "News", FeedURLs: []string{"https://example.com/rss"}}
	fetcher := &fakeFetcher{feeds: map[string][]Item{
		"https://example.com/rss": testItems(3),
	}}
	svc := NewService(store, fetcher)

	summary, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, &RunSummary{Processed: 1, Added: 3}, summary)
	require.Len(t, store.posts, 3)
}

func TestRun_DeduplicatesByRefID(t *testing.T) {
	store := newIngestMemStore()
	store.channels["ch1"] = &Channel{ID: "ch1", FeedURLs: []string{"https://example.com/rss"}}
	fetcher := &fakeFetcher{feeds: map[string][]Item{
		"https://example.com/rss": testItems(3),
	}}
	svc := NewService(store, fetcher)

	_, err := svc.Run(context.Background(), "")
	require.NoError(t, err)

	// Second run sees the same items again
	summary, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, 0, summary.Added)
	require.Equal(t, 3, summary.Skipped)
	require.Len(t, store.posts, 3, "re-fetched items must not duplicate")
}

func TestRun_FeedErrorDoesNotAbortRun(t *testing.T) {
	store := newIngestMemStore()
	store.channels["ch1"] = &Channel{ID: "ch1", FeedURLs: []string{"https://bad.example.com/rss", "https://good.example.com/rss"}}
	fetcher := &fakeFetcher{feeds: map[string][]Item{
		"https://good.example.com/rss": testItems(2),
	}}
	svc := NewService(store, fetcher)

	summary, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Errors)
	require.Equal(t, 2, summary.Added)
	require.Equal(t, 1, summary.Processed)
}

func TestRun_SingleChannelScope(t *testing.T) {
	store := newIngestMemStore()
	store.channels["ch1"] = &Channel{ID: "ch1", FeedURLs: []string{"https://one.example.com/rss"}}
	store.channels["ch2"] = &Channel{ID: "ch2", FeedURLs: []string{"https://two.example.com/rss"}}
	fetcher := &fakeFetcher{feeds: map[string][]Item{
		"https://one.example.com/rss": testItems(1),
		"https://two.example.com/rss": testItems(1),
	}}
	svc := NewService(store, fetcher)

	summary, err := svc.Run(context.Background(), "ch1")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Processed)
	require.Equal(t, 1, summary.Added)
}

func TestRun_UnknownChannel(t *testing.T) {
	svc := NewService(newIngestMemStore(), &fakeFetcher{})

	_, err := svc.Run(context.Background(), "nope")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRun_ChannelWithoutFeeds(t *testing.T) {
	store := newIngestMemStore()
	store.channels["ch1"] = &Channel{ID: "ch1"}
	svc := NewService(store, &fakeFetcher{})

	summary, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, &RunSummary{}, summary)
}

func TestRefIDIsStableMD5(t *testing.T) {
	a := refID("ch1", "https://example.com/x")
	b := refID("ch1", "https://example.com/x")
	require.Equal(t, a, b)
	require.Len(t, a, 32, "md5 hex")

	require.NotEqual(t, a, refID("ch2", "https://example.com/x"), "hash is per channel")
	require.NotEqual(t, a, refID("ch1", "https://example.com/y"))
}

func TestTruncateDescription(t *testing.T) {
	store := newIngestMemStore()
	store.channels["ch1"] = &Channel{ID: "ch1", FeedURLs: []string{"https://example.com/rss"}}

	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'a'
	}
	fetcher := &fakeFetcher{feeds: map[string][]Item{
		"https://example.com/rss": {{
			Title:       "Long one",
			Link:        "https://example.com/long",
			Description: string(long),
			PublishedAt: time.Now().UTC(),
		}},
	}}
	svc := NewService(store, fetcher)

	_, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	for _, post := range store.posts {
		require.Len(t, post.Description, maxDescriptionLen)
	}
}

func TestChannelFeedURLNormalization(t *testing.T) {
	channel := &Channel{FeedURLs: []string{
		" https://a.example.com/rss , https://b.example.com/rss",
		"https://c.example.com/rss",
		"  ",
	}}

	require.Equal(t, []string{
		"https://a.example.com/rss",
		"https://b.example.com/rss",
		"https://c.example.com/rss",
	}, channel.feedURLs())
}
