// Package cache layers a TTL-bounded segment cache in front of the
// sponsorblock client. The core client deliberately does not cache; this is
// the collaborator a deployment puts in front of it.
package cache

import (
	"context"
	"time"

	"sbclient/sponsorblock"
	"sbclient/storage"
)

// Fetcher is the part of the sponsorblock client the cache needs.
// *sponsorblock.Client satisfies it.
type Fetcher interface {
	FetchSegments(ctx context.Context, videoID string, categories sponsorblock.AcceptedCategories) ([]sponsorblock.Segment, error)
}

// Client serves segment lookups from a SegmentStore when a fresh entry
// exists, and delegates to the inner Fetcher otherwise.
//
// Entries are stored unfiltered (fetched with all categories) and narrowed
// on the way out, so one cached lookup serves every category filter.
type Client struct {
	inner Fetcher
	store storage.SegmentStore
	ttl   time.Duration

	// now is replaceable for tests.
	now func() time.Time
}

// New creates a caching client. Entries older than ttl are refetched; a ttl
// of zero means entries never expire.
func New(inner Fetcher, store storage.SegmentStore, ttl time.Duration) *Client {
	return &Client{
		inner: inner,
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// FetchSegments returns the segments for a video narrowed to the accepted
// categories, from cache when possible.
//
// Store read failures fall through to a live fetch; store write failures are
// returned, since a deployment running a cache that never fills is worth
// surfacing.
func (c *Client) FetchSegments(ctx context.Context, videoID string, categories sponsorblock.AcceptedCategories) ([]sponsorblock.Segment, error) {
	// Missing, stale, and unreadable entries all fall through to a live
	// fetch; a broken cache must not take lookups down with it.
	if entry, err := c.store.Get(ctx, videoID); err == nil && c.fresh(entry) {
		return filter(entry.Segments, categories), nil
	}

	segments, err := c.inner.FetchSegments(ctx, videoID, sponsorblock.AllCategories())
	if err != nil {
		return nil, err
	}

	err = c.store.Put(ctx, &storage.CachedSegments{
		VideoID:   videoID,
		FetchedAt: c.now().UTC(),
		Segments:  segments,
	})
	if err != nil {
		return nil, err
	}

	return filter(segments, categories), nil
}

func (c *Client) fresh(entry *storage.CachedSegments) bool {
	if c.ttl <= 0 {
		return true
	}
	return entry.Age(c.now()) < c.ttl
}

func filter(segments []sponsorblock.Segment, categories sponsorblock.AcceptedCategories) []sponsorblock.Segment {
	out := []sponsorblock.Segment{}
	for _, seg := range segments {
		if categories.Accepts(seg.Category) {
			out = append(out, seg)
		}
	}
	return out
}
