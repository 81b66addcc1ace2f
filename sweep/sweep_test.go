package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"sbclient/retry"
	"sbclient/sponsorblock"
	"sbclient/youtube"
)

// fakeLister returns a fixed upload list.
type fakeLister struct {
	videos []youtube.VideoInfo
	err    error
}

func (f *fakeLister) ListVideos(ctx context.Context, channel string, opts *youtube.ListOptions) ([]youtube.VideoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	videos := f.videos
	if opts != nil && opts.MaxResults > 0 && len(videos) > opts.MaxResults {
		videos = videos[:opts.MaxResults]
	}
	return videos, nil
}

// fakeFetcher serves canned per-video responses.
type fakeFetcher struct {
	segments map[string][]sponsorblock.Segment
	errs     map[string]error
	calls    map[string]int
}

func (f *fakeFetcher) FetchSegments(ctx context.Context, videoID string, categories sponsorblock.AcceptedCategories) ([]sponsorblock.Segment, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[videoID]++
	if err, ok := f.errs[videoID]; ok {
		return nil, err
	}
	return f.segments[videoID], nil
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.RequestsPerSecond = 0
	cfg.Retry = retry.Config{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
	return cfg
}

func TestSweepCollectsSegments(t *testing.T) {
	lister := &fakeLister{videos: []youtube.VideoInfo{
		{ID: "vid-1", Title: "first"},
		{ID: "vid-2", Title: "second"},
	}}
	fetcher := &fakeFetcher{segments: map[string][]sponsorblock.Segment{
		"vid-1": {{Category: sponsorblock.CategorySponsor, UUID: "a"}},
		"vid-2": {},
	}}

	s := New(lister, fetcher, fastConfig())
	result, err := s.Run(context.Background(), "@channel", sponsorblock.AllCategories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RunID == "" {
		t.Error("expected a run ID")
	}
	if len(result.Videos) != 2 {
		t.Fatalf("expected 2 video results, got %d", len(result.Videos))
	}
	if result.Videos[0].VideoID != "vid-1" || len(result.Videos[0].Segments) != 1 {
		t.Errorf("unexpected first result: %+v", result.Videos[0])
	}
	if len(result.Failed) != 0 {
		t.Errorf("expected no failures, got %v", result.Failed)
	}
}

func TestSweepRetriesTransientErrors(t *testing.T) {
	lister := &fakeLister{videos: []youtube.VideoInfo{{ID: "flaky"}}}
	fetcher := &fakeFetcher{errs: map[string]error{
		"flaky": &sponsorblock.ServiceError{StatusCode: 503},
	}}

	s := New(lister, fetcher, fastConfig())
	result, err := s.Run(context.Background(), "@channel", sponsorblock.AllCategories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls["flaky"] != 3 {
		t.Errorf("expected 3 attempts, got %d", fetcher.calls["flaky"])
	}
	if _, ok := result.Failed["flaky"]; !ok {
		t.Error("expected the video to be recorded as failed")
	}
}

func TestSweepDoesNotRetryDecodeErrors(t *testing.T) {
	lister := &fakeLister{videos: []youtube.VideoInfo{{ID: "bad"}}}
	fetcher := &fakeFetcher{errs: map[string]error{
		"bad": &sponsorblock.DecodeError{Field: "category", Value: "nonsense"},
	}}

	s := New(lister, fetcher, fastConfig())
	result, err := s.Run(context.Background(), "@channel", sponsorblock.AllCategories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls["bad"] != 1 {
		t.Errorf("expected 1 attempt, got %d", fetcher.calls["bad"])
	}
	if len(result.Failed) != 1 {
		t.Errorf("expected 1 failure, got %d", len(result.Failed))
	}
}

func TestSweepListingFailureAborts(t *testing.T) {
	lister := &fakeLister{err: youtube.ErrChannelNotFound}
	s := New(lister, &fakeFetcher{}, fastConfig())

	_, err := s.Run(context.Background(), "@missing", sponsorblock.AllCategories())
	if !errors.Is(err, youtube.ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &sponsorblock.ServiceError{StatusCode: 502}, true},
		{"rate limited", &sponsorblock.ServiceError{StatusCode: 429}, true},
		{"client error", &sponsorblock.ServiceError{StatusCode: 400}, false},
		{"decode error", &sponsorblock.DecodeError{Value: "x"}, false},
		{"invalid input", sponsorblock.ErrInvalidInput, false},
		{"transport error", &sponsorblock.TransportError{Err: errors.New("refused")}, true},
		{"canceled", context.Canceled, false},
	}
	for _, tc := range cases {
		if got := isTransient(tc.err); got != tc.want {
			t.Errorf("isTransient(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
