package sponsorblock

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const (
	testVideoID = "7U-RbOKanYs"
	// SHA-256 of testVideoID.
	testVideoHash = "aec85db28bf53c8e97dc72b970653368a6078d1d692c5fac054099f801251b3f"
	// SHA-256 of "decoy-video", an unrelated video sharing the response.
	decoyHash = "9dd6b814d0cf6031ed50e6e2032729b7660dd7687cc5db682818756333550c98"
)

// newTestClient builds a client pointed at a mock server.
func newTestClient(serverURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = serverURL
	return New("test-user-id", cfg)
}

func TestFetchSegmentsEndToEnd(t *testing.T) {
	response := `[
		{
			"videoID": "` + testVideoID + `",
			"hash": "` + testVideoHash + `",
			"segments": [
				{"category": "sponsor", "actionType": "skip", "segment": [10.0, 20.0], "UUID": "uuid-1", "votes": 5, "locked": 0, "videoDuration": 300.0},
				{"category": "outro", "actionType": "skip", "segment": [200.5, 210.0], "UUID": "uuid-2", "votes": 2, "locked": 1, "videoDuration": 300.0}
			]
		},
		{
			"videoID": "decoy-video",
			"hash": "` + decoyHash + `",
			"segments": [
				{"category": "sponsor", "actionType": "skip", "segment": [0.0, 5.0], "UUID": "uuid-decoy", "votes": 9, "locked": 0, "videoDuration": 60.0}
			]
		}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/skipSegments/aec8" {
			t.Errorf("expected path /skipSegments/aec8, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("service"); got != "YouTube" {
			t.Errorf("expected service YouTube, got %q", got)
		}
		if got := r.URL.Query().Get("userID"); got != "test-user-id" {
			t.Errorf("expected userID to be attached, got %q", got)
		}
		if got := r.URL.Query().Get("categories"); got == "" {
			t.Error("expected categories parameter to be set")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	segments, err := client.FetchSegments(context.Background(), testVideoID, AllCategories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Category != CategorySponsor || segments[0].Start != 10.0 || segments[0].End != 20.0 {
		t.Errorf("unexpected first segment: %+v", segments[0])
	}
	if segments[1].Category != CategoryOutro || segments[1].Start != 200.5 || segments[1].End != 210.0 {
		t.Errorf("unexpected second segment: %+v", segments[1])
	}
	if segments[0].UUID != "uuid-1" || segments[1].UUID != "uuid-2" {
		t.Errorf("unexpected UUIDs: %q, %q", segments[0].UUID, segments[1].UUID)
	}
	if segments[0].Locked || !segments[1].Locked {
		t.Errorf("unexpected locked flags: %v, %v", segments[0].Locked, segments[1].Locked)
	}
	for _, seg := range segments {
		if seg.UUID == "uuid-decoy" {
			t.Error("decoy video's segment leaked into the result")
		}
	}
}

func TestFetchSegmentsEmptyVideoID(t *testing.T) {
	client := newTestClient("http://localhost:1")
	defer client.Close()

	_, err := client.FetchSegments(context.Background(), "", AllCategories())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFetchSegmentsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	segments, err := client.FetchSegments(context.Background(), testVideoID, AllCategories())
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("expected empty result, got %d segments", len(segments))
	}
}

func TestFetchSegmentsServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("database is down"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	_, err := client.FetchSegments(context.Background(), testVideoID, AllCategories())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", svcErr.StatusCode)
	}
	if string(svcErr.Body) != "database is down" {
		t.Errorf("expected body to be preserved, got %q", svcErr.Body)
	}
}

func TestFetchSegmentsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"this is": "not an array`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	segments, err := client.FetchSegments(context.Background(), testVideoID, AllCategories())
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("expected no partial results, got %d segments", len(segments))
	}
}

func TestFetchSegmentsUnknownCategory(t *testing.T) {
	response := `[{"videoID": "` + testVideoID + `", "hash": "` + testVideoHash + `", "segments": [
		{"category": "sponsor", "actionType": "skip", "segment": [1.0, 2.0], "UUID": "ok", "votes": 0, "locked": 0, "videoDuration": 10.0},
		{"category": "hologram_ad", "actionType": "skip", "segment": [3.0, 4.0], "UUID": "bad", "votes": 0, "locked": 0, "videoDuration": 10.0}
	]}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	segments, err := client.FetchSegments(context.Background(), testVideoID, AllCategories())
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Value != "hologram_ad" {
		t.Errorf("expected offending value in error, got %q", decodeErr.Value)
	}
	if len(segments) != 0 {
		t.Errorf("expected no partial results, got %d segments", len(segments))
	}
}

func TestFetchSegmentsBadTimes(t *testing.T) {
	cases := []struct {
		name    string
		segment string
	}{
		{"start after end", `[20.0, 10.0]`},
		{"negative start", `[-1.0, 10.0]`},
		{"wrong arity", `[10.0]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			response := `[{"videoID": "` + testVideoID + `", "hash": "` + testVideoHash + `", "segments": [
				{"category": "sponsor", "actionType": "skip", "segment": ` + tc.segment + `, "UUID": "u", "votes": 0, "locked": 0, "videoDuration": 10.0}
			]}]`
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(response))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			defer client.Close()

			_, err := client.FetchSegments(context.Background(), testVideoID, AllCategories())
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
		})
	}
}

func TestFetchSegmentsCategoryFilter(t *testing.T) {
	response := `[{"videoID": "` + testVideoID + `", "hash": "` + testVideoHash + `", "segments": [
		{"category": "sponsor", "actionType": "skip", "segment": [1.0, 2.0], "UUID": "s1", "votes": 0, "locked": 0, "videoDuration": 10.0},
		{"category": "intro", "actionType": "skip", "segment": [3.0, 4.0], "UUID": "i1", "votes": 0, "locked": 0, "videoDuration": 10.0},
		{"category": "sponsor", "actionType": "skip", "segment": [5.0, 6.0], "UUID": "s2", "votes": 0, "locked": 0, "videoDuration": 10.0}
	]}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	sponsorOnly, err := SelectCategories(CategorySponsor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segments, err := client.FetchSegments(context.Background(), testVideoID, sponsorOnly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("expected 2 sponsor segments, got %d", len(segments))
	}
	// Relative response order must be preserved.
	if segments[0].UUID != "s1" || segments[1].UUID != "s2" {
		t.Errorf("order not preserved: %q, %q", segments[0].UUID, segments[1].UUID)
	}
}

func TestFetchSegmentsNoMatchingHash(t *testing.T) {
	// The prefix matched but the full digest doesn't: the queried video has
	// no segments, which is a routine empty result.
	response := `[{"videoID": "decoy-video", "hash": "` + decoyHash + `", "segments": [
		{"category": "sponsor", "actionType": "skip", "segment": [1.0, 2.0], "UUID": "d", "votes": 0, "locked": 0, "videoDuration": 10.0}
	]}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	segments, err := client.FetchSegments(context.Background(), testVideoID, AllCategories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("expected empty result, got %d segments", len(segments))
	}
}

func TestFetchSegmentsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(server.URL)
	defer client.Close()

	_, err := client.FetchSegments(context.Background(), testVideoID, AllCategories())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestFetchSegmentsWithOptions(t *testing.T) {
	response := `[{"videoID": "` + testVideoID + `", "hash": "` + testVideoHash + `", "segments": [
		{"category": "sponsor", "actionType": "skip", "segment": [1.0, 2.0], "UUID": "skip-seg", "votes": 0, "locked": 0, "videoDuration": 10.0},
		{"category": "sponsor", "actionType": "mute", "segment": [3.0, 4.0], "UUID": "mute-seg", "votes": 0, "locked": 0, "videoDuration": 10.0}
	]}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("requiredSegments"); got != `["mute-seg"]` {
			t.Errorf("unexpected requiredSegments parameter: %q", got)
		}
		w.Write([]byte(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	muteOnly, err := SelectActions(ActionMute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segments, err := client.FetchSegmentsWithOptions(context.Background(), testVideoID, AllCategories(), FetchOptions{
		Actions:          muteOnly,
		RequiredSegments: []string{"mute-seg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 || segments[0].UUID != "mute-seg" {
		t.Fatalf("expected only the mute segment, got %+v", segments)
	}
}

func TestFetchSegmentsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.FetchSegments(ctx, testVideoID, AllCategories())
	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}
