// Package youtube lists a channel's uploaded videos, so segment lookups can
// be swept across a whole channel.
package youtube

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for video listing operations.
var (
	ErrChannelNotFound = errors.New("youtube: channel not found")
	ErrInvalidChannel  = errors.New("youtube: invalid channel reference")
)

// VideoLister fetches the videos uploaded by a channel.
type VideoLister interface {
	// ListVideos resolves a channel reference (channel URL, UC... ID, or
	// @handle) and returns its uploads, newest first.
	ListVideos(ctx context.Context, channel string, opts *ListOptions) ([]VideoInfo, error)
}

// ListOptions configures video listing behavior.
type ListOptions struct {
	// MaxResults limits the number of videos returned. 0 means no limit.
	MaxResults int
}

// VideoInfo describes one uploaded video.
type VideoInfo struct {
	// ID is the video ID, the input to a segment lookup.
	ID string
	// Title of the video.
	Title string
	// Published is when the video was published.
	Published time.Time
}
