// Package sbclient provides a client library for the SponsorBlock API.
//
// Lookups use the privacy-preserving hash-prefix protocol: the video ID is
// never sent to the server, only the first few characters of its SHA-256
// digest, and near-miss matches are discarded locally.
//
// # Quick Start
//
// Fetch the segments for a video:
//
//	ctx := context.Background()
//	segments, err := sbclient.FetchSegments(ctx, userID, "dQw4w9WgXcQ", sponsorblock.AllCategories())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range segments {
//		fmt.Printf("%s %s %.1f-%.1f\n", s.Category, s.ActionType, s.Start, s.End)
//	}
//
// Long-lived programs should construct one client and reuse it:
//
//	client := sponsorblock.New(userID, nil)
//	defer client.Close()
//	segments, err := client.FetchSegments(ctx, videoID, categories)
//
// Mint a user ID once per user and store it:
//
//	userID := sponsorblock.GenerateLocalUserID()
//
// # Packages
//
//   - sponsorblock: the core lookup client, segment model, and filters
//   - cache: a TTL cache collaborator layered in front of the client
//   - storage: the JSON-file segment store backing the cache
//   - sweep: bulk lookups across a channel's uploads
//   - youtube: channel upload listing via the YouTube Data API
//   - retry: caller-side retry policy used by sweep
//   - config: file/env configuration for the CLI
//
// # Configuration
//
// The library takes configuration as plain values (sponsorblock.Config).
// The CLI front end loads sbclient.json and SBCLIENT_* environment
// variables; see the config package.
package sbclient
