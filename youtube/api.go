package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var channelIDRegex = regexp.MustCompile(`UC[a-zA-Z0-9_-]{22}`)

// APILister implements VideoLister using the YouTube Data API v3.
type APILister struct {
	service *youtube.Service
}

// NewAPILister creates a Data API backed lister.
func NewAPILister(ctx context.Context, apiKey string) (*APILister, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: api key required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}
	return &APILister{service: service}, nil
}

// ListVideos fetches the channel's uploads playlist and pages through it.
func (a *APILister) ListVideos(ctx context.Context, channel string, opts *ListOptions) ([]VideoInfo, error) {
	playlistID, err := a.uploadsPlaylistID(ctx, channel)
	if err != nil {
		return nil, err
	}
	return a.listPlaylistVideos(ctx, playlistID, opts)
}

// uploadsPlaylistID resolves a channel reference to its uploads playlist.
func (a *APILister) uploadsPlaylistID(ctx context.Context, channel string) (string, error) {
	call := a.service.Channels.List([]string{"contentDetails"}).Context(ctx)

	switch {
	case strings.HasPrefix(channel, "@"):
		call = call.ForHandle(channel)
	case channelIDRegex.MatchString(channel):
		call = call.Id(channelIDRegex.FindString(channel))
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}

	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("youtube: resolve channel: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", ErrChannelNotFound
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// listPlaylistVideos pages through a playlist, collecting video info.
func (a *APILister) listPlaylistVideos(ctx context.Context, playlistID string, opts *ListOptions) ([]VideoInfo, error) {
	var videos []VideoInfo

	pageToken := ""
	for {
		if opts != nil && opts.MaxResults > 0 && len(videos) >= opts.MaxResults {
			return videos[:opts.MaxResults], nil
		}

		call := a.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(50).
			PageToken(pageToken).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("youtube: list playlist: %w", err)
		}

		for _, item := range resp.Items {
			video := VideoInfo{ID: item.ContentDetails.VideoId}
			if item.Snippet != nil {
				video.Title = item.Snippet.Title
				if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
					video.Published = t
				}
			}
			videos = append(videos, video)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return videos, nil
		}
	}
}
