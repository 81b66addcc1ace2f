package storage

import (
	"time"

	"sbclient/sponsorblock"
)

// CachedSegments is one stored lookup result: every segment recorded for a
// video at fetch time, before any category narrowing. Category filters are
// applied on the way out of the cache, so one entry serves all filters.
type CachedSegments struct {
	// ID is the internal record ID.
	ID string `json:"id"`
	// VideoID is the video the segments belong to.
	VideoID string `json:"video_id"`
	// FetchedAt is when the lookup was made, used for TTL expiry.
	FetchedAt time.Time `json:"fetched_at"`
	// Segments is the full fetched segment set, in response order.
	Segments []sponsorblock.Segment `json:"segments"`
}

// Age returns how long ago the entry was fetched.
func (c *CachedSegments) Age(now time.Time) time.Duration {
	return now.Sub(c.FetchedAt)
}
