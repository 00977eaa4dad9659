package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log"
	"time"
)

// maxDescriptionLen caps stored descriptions, matching the document
// field limit in the channel_posts collection.
const maxDescriptionLen = 1000

// channelBatchLimit bounds how many channels one run polls.
const channelBatchLimit = 100

// Store is what the ingest pipeline needs from persistence
type Store interface {
	GetChannel(ctx context.Context, id string) (*Channel, error)
	ListChannels(ctx context.Context, limit int) ([]Channel, error)
	InsertPost(ctx context.Context, post *ChannelPost) (bool, error)
}

// Service polls channel feeds and stores new items. A broken feed
// counts as an error and the run moves on; it never aborts the batch.
type Service struct {
	store   Store
	fetcher Fetcher
}

func NewService(store Store, fetcher Fetcher) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
	}
}

// Run ingests one channel when channelID is set, otherwise every
// channel up to the batch limit.
func (s *Service) Run(ctx context.Context, channelID string) (*RunSummary, error) {
	var channels []Channel
	if channelID != "" {
		channel, err := s.store.GetChannel(ctx, channelID)
		if err != nil {
			return nil, err
		}
		channels = []Channel{*channel}
	} else {
		var err error
		channels, err = s.store.ListChannels(ctx, channelBatchLimit)
		if err != nil {
			return nil, err
		}
	}

	summary := &RunSummary{}
	for i := range channels {
		s.runChannel(ctx, &channels[i], summary)
	}
	return summary, nil
}

func (s *Service) runChannel(ctx context.Context, channel *Channel, summary *RunSummary) {
	urls := channel.feedURLs()
	if len(urls) == 0 {
		log.Printf("No feed URLs for channel %s (%s)", channel.Name, channel.ID)
		return
	}

	for _, url := range urls {
		items, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			log.Printf("Error fetching feed %s: %v", url, err)
			summary.Errors++
			continue
		}

		for _, item := range items {
			post := &ChannelPost{
				ChannelID:   channel.ID,
				RefID:       refID(channel.ID, item.Link),
				Title:       item.Title,
				URL:         item.Link,
				PublishedAt: item.PublishedAt,
				Description: truncate(item.Description, maxDescriptionLen),
				ImageURL:    item.ImageURL,
				CreatedAt:   time.Now().UTC(),
			}

			inserted, err := s.store.InsertPost(ctx, post)
			if err != nil {
				log.Printf("Error storing item %q from %s: %v", item.Title, url, err)
				summary.Errors++
				break
			}
			if inserted {
				summary.Added++
			} else {
				summary.Skipped++
			}
		}
	}

	summary.Processed++
}

// refID hashes (channelID, link) so the same article fetched twice
// maps to the same stored post. The md5 hex format is part of the
// stored data; do not change it.
func refID(channelID, link string) string {
	sum := md5.Sum([]byte(channelID + "-" + link))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
