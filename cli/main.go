package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"sbclient/cache"
	"sbclient/config"
	"sbclient/sponsorblock"
	"sbclient/storage"
	"sbclient/sweep"
	"sbclient/youtube"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "segments":
		cmdSegments(args)
	case "status":
		cmdStatus(args)
	case "channel":
		cmdChannel(args)
	case "gen-id":
		cmdGenID(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `sbclient - SponsorBlock segment lookup

Usage:
  sbclient segments [flags] <video-id>   Fetch segments for a video
  sbclient channel [flags] <channel>     Fetch segments for a channel's uploads
  sbclient status                        Show API server status
  sbclient gen-id                        Generate a new local user ID
  sbclient help                          Show this help message

Examples:
  sbclient segments dQw4w9WgXcQ                         # All categories
  sbclient segments --categories sponsor,outro <id>     # Narrowed
  sbclient channel --max 25 @SomeChannel                # Sweep recent uploads
  sbclient segments --json <id>                         # Machine-readable output

Configuration is read from sbclient.json and SBCLIENT_* environment
variables; the user ID can also be passed with --user-id.

For help on a specific command: sbclient <command> -h
`)
}

// parseCategories turns a comma-separated flag value into a filter.
func parseCategories(value string) (sponsorblock.AcceptedCategories, error) {
	if value == "" || value == "all" {
		return sponsorblock.AllCategories(), nil
	}
	var categories []sponsorblock.Category
	for _, name := range strings.Split(value, ",") {
		c, err := sponsorblock.ParseCategory(strings.TrimSpace(name))
		if err != nil {
			return sponsorblock.AcceptedCategories{}, fmt.Errorf("unknown category %q", strings.TrimSpace(name))
		}
		categories = append(categories, c)
	}
	return sponsorblock.SelectCategories(categories...)
}

func loadConfig(userIDFlag string) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if userIDFlag != "" {
		cfg.UserID = userIDFlag
	}
	return cfg
}

// newFetcher builds the lookup pipeline: core client, optionally wrapped in
// the file-backed cache.
func newFetcher(cfg *config.Config, noCache bool) (sweep.Fetcher, func()) {
	client := sponsorblock.New(cfg.UserID, cfg.ClientConfig())
	if noCache || cfg.CachePath == "" {
		return client, func() { client.Close() }
	}

	store, err := storage.NewJSONStore(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open cache: %v\n", err)
		os.Exit(1)
	}
	cleanup := func() {
		store.Close()
		client.Close()
	}
	return cache.New(client, store, cfg.CacheTTL), cleanup
}

func cmdSegments(args []string) {
	fs := flag.NewFlagSet("segments", flag.ExitOnError)
	categoriesFlag := fs.String("categories", "all", "Comma-separated categories, or \"all\"")
	userID := fs.String("user-id", "", "Local user ID (overrides config)")
	noCache := fs.Bool("no-cache", false, "Bypass the local segment cache")
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sbclient segments [flags] <video-id>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing video-id\n")
		fs.Usage()
		os.Exit(1)
	}
	videoID := argv[0]

	categories, err := parseCategories(*categoriesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(*userID)
	fetcher, cleanup := newFetcher(cfg, *noCache)
	defer cleanup()

	segments, err := fetcher.FetchSegments(context.Background(), videoID, categories)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		json.NewEncoder(os.Stdout).Encode(segments)
		return
	}
	printSegments(segments)
}

func printSegments(segments []sponsorblock.Segment) {
	if len(segments) == 0 {
		fmt.Println("No segments found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tACTION\tSTART\tEND\tVOTES\tLOCKED\tUUID")
	for _, s := range segments {
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%d\t%v\t%s\n",
			s.Category, s.ActionType, s.Start, s.End, s.Votes, s.Locked, s.UUID)
	}
	w.Flush()
}

func cmdStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.Parse(args)

	cfg := loadConfig("")
	client := sponsorblock.New(cfg.UserID, cfg.ClientConfig())
	defer client.Close()

	status, err := client.FetchAPIStatus(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		json.NewEncoder(os.Stdout).Encode(status)
		return
	}

	fmt.Printf("Uptime:       %v\n", status.Uptime)
	fmt.Printf("Commit:       %s\n", status.Commit)
	fmt.Printf("DB version:   %d\n", status.DBVersion)
	fmt.Printf("Start time:   %v\n", status.StartTime)
	fmt.Printf("Process time: %v\n", status.ProcessTime)
	fmt.Printf("Load average: %.2f / %.2f\n", status.LoadAverage[0], status.LoadAverage[1])
}

func cmdChannel(args []string) {
	fs := flag.NewFlagSet("channel", flag.ExitOnError)
	categoriesFlag := fs.String("categories", "all", "Comma-separated categories, or \"all\"")
	userID := fs.String("user-id", "", "Local user ID (overrides config)")
	maxVideos := fs.Int("max", 0, "Maximum uploads to sweep (0 = all)")
	noCache := fs.Bool("no-cache", false, "Bypass the local segment cache")
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sbclient channel [flags] <channel-id-or-handle>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing channel\n")
		fs.Usage()
		os.Exit(1)
	}
	channel := argv[0]

	categories, err := parseCategories(*categoriesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(*userID)
	if cfg.YouTubeAPIKey == "" {
		fmt.Fprintf(os.Stderr, "Error: channel sweeps need a YouTube API key (SBCLIENT_YOUTUBE_API_KEY)\n")
		os.Exit(1)
	}

	ctx := context.Background()
	lister, err := youtube.NewAPILister(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fetcher, cleanup := newFetcher(cfg, *noCache)
	defer cleanup()

	sweepCfg := sweep.DefaultConfig()
	sweepCfg.RequestsPerSecond = cfg.SweepRequestsPerSecond
	sweepCfg.Retry.MaxRetries = cfg.MaxRetries
	sweepCfg.MaxVideos = *maxVideos

	result, err := sweep.New(lister, fetcher, sweepCfg).Run(ctx, channel, categories)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		json.NewEncoder(os.Stdout).Encode(result)
		return
	}

	for _, v := range result.Videos {
		if len(v.Segments) == 0 {
			continue
		}
		fmt.Printf("%s  %s\n", v.VideoID, v.Title)
		printSegments(v.Segments)
		fmt.Println()
	}
	fmt.Printf("Swept %d videos, %d failed.\n", len(result.Videos), len(result.Failed))
	if len(result.Failed) > 0 {
		os.Exit(1)
	}
}

func cmdGenID(args []string) {
	fs := flag.NewFlagSet("gen-id", flag.ExitOnError)
	fs.Parse(args)

	fmt.Println(sponsorblock.GenerateLocalUserID())
}
