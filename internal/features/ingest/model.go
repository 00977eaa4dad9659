package ingest

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel is an RSS-backed publisher profile. Created by the channel
// management side; this pipeline only reads it.
type Channel struct {
	ID       string   `bson:"_id" json:"id"`
	Name     string   `bson:"name" json:"name"`
	FeedURLs []string `bson:"feedUrls" json:"feedUrls"`
}

// feedURLs normalizes the stored list: older documents carry a single
// comma-separated entry, newer ones one URL per element.
func (c *Channel) feedURLs() []string {
	var urls []string
	for _, entry := range c.FeedURLs {
		for _, u := range strings.Split(entry, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// ChannelPost is one ingested feed item. refId is the md5 hex of
// "channelID-link", and the unique (channelId, refId) index is what
// deduplicates re-fetched items.
type ChannelPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChannelID   string             `bson:"channelId" json:"channelId"`
	RefID       string             `bson:"refId" json:"refId"`
	Title       string             `bson:"title" json:"title"`
	URL         string             `bson:"url" json:"url"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// RunRequest optionally narrows an ingest run to one channel
type RunRequest struct {
	ChannelID string `json:"channelId"`
}

// RunSummary is the result of one ingest run
type RunSummary struct {
	Processed int `json:"processed"`
	Added     int `json:"added"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}
