package sbclient

import (
	"context"

	"sbclient/sponsorblock"
)

// FetchSegments looks up the segments for a video with a default-config
// client. Programs making more than an occasional lookup should build a
// sponsorblock.Client once and reuse its connection pool.
func FetchSegments(ctx context.Context, userID, videoID string, categories sponsorblock.AcceptedCategories) ([]sponsorblock.Segment, error) {
	client := sponsorblock.New(userID, nil)
	defer client.Close()
	return client.FetchSegments(ctx, videoID, categories)
}

// FetchAPIStatus fetches the official API's status with a default-config
// client.
func FetchAPIStatus(ctx context.Context) (*sponsorblock.APIStatus, error) {
	client := sponsorblock.New("", nil)
	defer client.Close()
	return client.FetchAPIStatus(ctx)
}
