// Package sweep runs segment lookups across every upload of a channel.
//
// The sponsorblock client is a pure request/response translator; pacing and
// retry policy live here, on the caller's side, where the spec of the remote
// API puts them.
package sweep

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"sbclient/retry"
	"sbclient/sponsorblock"
	"sbclient/youtube"
)

// Fetcher is the part of the sponsorblock client a sweep needs. Both
// *sponsorblock.Client and the cache wrapper satisfy it.
type Fetcher interface {
	FetchSegments(ctx context.Context, videoID string, categories sponsorblock.AcceptedCategories) ([]sponsorblock.Segment, error)
}

// Config tunes a sweep.
type Config struct {
	// RequestsPerSecond paces lookups against the segment API. Zero means
	// no pacing.
	RequestsPerSecond float64
	// Retry configures per-video retry on transient failures.
	Retry retry.Config
	// MaxVideos limits how many uploads are swept. 0 means all.
	MaxVideos int
}

// DefaultConfig returns conservative pacing and retry defaults.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 4,
		Retry:             retry.DefaultConfig(),
	}
}

// VideoSegments pairs one upload with its fetched segments.
type VideoSegments struct {
	VideoID  string
	Title    string
	Segments []sponsorblock.Segment
}

// Result is the outcome of one sweep run.
type Result struct {
	// RunID identifies this sweep in logs and stored output.
	RunID string
	// Videos holds per-video results, in upload-list order. Videos whose
	// lookups ultimately failed are omitted; see Failed.
	Videos []VideoSegments
	// Failed maps video IDs to the error that exhausted their retries.
	Failed map[string]error
}

// Sweeper lists a channel's uploads and fetches segments for each.
type Sweeper struct {
	lister  youtube.VideoLister
	fetcher Fetcher
	config  Config
	limiter *rate.Limiter
}

// New creates a sweeper.
func New(lister youtube.VideoLister, fetcher Fetcher, cfg Config) *Sweeper {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Sweeper{
		lister:  lister,
		fetcher: fetcher,
		config:  cfg,
		limiter: limiter,
	}
}

// Run sweeps a channel. Per-video failures are collected rather than
// aborting the run; only listing failures and context cancellation stop a
// sweep early.
func (s *Sweeper) Run(ctx context.Context, channel string, categories sponsorblock.AcceptedCategories) (*Result, error) {
	videos, err := s.lister.ListVideos(ctx, channel, &youtube.ListOptions{MaxResults: s.config.MaxVideos})
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:  uuid.New().String(),
		Failed: make(map[string]error),
	}
	log.Printf("sweep %s: %d videos from %s", result.RunID, len(videos), channel)

	for _, video := range videos {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var segments []sponsorblock.Segment
		err := retry.Do(ctx, s.config.Retry, isTransient, func(ctx context.Context) error {
			var fetchErr error
			segments, fetchErr = s.fetcher.FetchSegments(ctx, video.ID, categories)
			return fetchErr
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("sweep %s: %s failed: %v", result.RunID, video.ID, err)
			result.Failed[video.ID] = err
			continue
		}

		result.Videos = append(result.Videos, VideoSegments{
			VideoID:  video.ID,
			Title:    video.Title,
			Segments: segments,
		})
	}

	return result, nil
}

// isTransient classifies lookup errors for retry purposes: server-side and
// network failures are worth another attempt, everything else is permanent.
func isTransient(err error) bool {
	if !retry.IsRetryable(err) {
		return false
	}
	if errors.Is(err, sponsorblock.ErrInvalidInput) {
		return false
	}

	var svcErr *sponsorblock.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode >= 500 || svcErr.StatusCode == 429
	}

	var decodeErr *sponsorblock.DecodeError
	if errors.As(err, &decodeErr) {
		// A malformed schema won't fix itself on retry.
		return false
	}

	return true
}
