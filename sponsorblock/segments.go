package sponsorblock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// FetchOptions tunes a segment lookup beyond the category filter.
type FetchOptions struct {
	// Actions narrows results by action type. The zero value means all
	// action types.
	Actions AcceptedActions

	// RequiredSegments lists segment UUIDs the server must include even if
	// they fall below its vote threshold.
	RequiredSegments []string
}

// rawHashMatch is one per-video record of a hash-prefix lookup response. The
// field names are the API's wire contract and must stay byte-compatible.
type rawHashMatch struct {
	VideoID  string       `json:"videoID"`
	Hash     string       `json:"hash"`
	Segments []rawSegment `json:"segments"`
}

// rawSegment is the wire form of a single segment record.
type rawSegment struct {
	Category      string    `json:"category"`
	ActionType    string    `json:"actionType"`
	Segment       []float64 `json:"segment"`
	UUID          string    `json:"UUID"`
	Votes         int       `json:"votes"`
	Locked        int       `json:"locked"`
	VideoDuration float64   `json:"videoDuration"`
}

// FetchSegments looks up the segments recorded for a video, narrowed to the
// accepted categories.
//
// The video ID itself is never sent to the server. The request carries only
// the first HashPrefixLength characters of its SHA-256 digest, the server
// answers with every video sharing that prefix, and non-matching videos are
// discarded locally by comparing the full digest.
//
// A video with no recorded segments yields an empty slice, not an error.
// Errors are ErrInvalidInput, *ServiceError, *DecodeError, or
// *TransportError; see their definitions for when each occurs.
func (c *Client) FetchSegments(ctx context.Context, videoID string, categories AcceptedCategories) ([]Segment, error) {
	return c.FetchSegmentsWithOptions(ctx, videoID, categories, FetchOptions{})
}

// FetchSegmentsWithOptions is FetchSegments with action type narrowing and
// required segment UUIDs. Most callers want plain FetchSegments.
func (c *Client) FetchSegmentsWithOptions(ctx context.Context, videoID string, categories AcceptedCategories, opts FetchOptions) ([]Segment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: empty video ID", ErrInvalidInput)
	}

	actions := opts.Actions
	if !actions.all && len(actions.set) == 0 {
		actions = AllActions()
	}

	digest := HashVideoID(videoID)
	prefix := HashPrefix(digest, c.config.HashPrefixLength)

	query := url.Values{}
	query.Set("categories", categories.queryValue())
	query.Set("actionTypes", actions.queryValue())
	query.Set("service", c.config.Service)
	if c.userID != "" {
		query.Set("userID", c.userID)
	}
	if len(opts.RequiredSegments) > 0 {
		// The API expects the UUID list as a JSON array, like the
		// categories parameter.
		b, _ := json.Marshal(opts.RequiredSegments)
		query.Set("requiredSegments", string(b))
	}

	requestURL := fmt.Sprintf("%s/skipSegments/%s?%s", c.config.BaseURL, prefix, query.Encode())
	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	// A 404 means the database has no videos under this prefix. That is the
	// routine "no segments exist" outcome, not an error.
	if body == nil {
		return []Segment{}, nil
	}

	var matches []rawHashMatch
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, &DecodeError{Err: err}
	}

	// Decode every record before selecting by hash, so a malformed response
	// is rejected as a whole and can never yield partial results.
	decoded := make([][]Segment, len(matches))
	for i, match := range matches {
		segments, err := decodeSegments(match.Segments)
		if err != nil {
			return nil, err
		}
		decoded[i] = segments
	}

	// The prefix match is ambiguous on purpose: many videos can share a
	// 4-character prefix. Exact matching on the full digest is what keeps
	// unrelated videos' segments out of the result.
	results := []Segment{}
	for i, match := range matches {
		if match.Hash != digest {
			continue
		}
		for _, seg := range decoded[i] {
			if !categories.Accepts(seg.Category) {
				continue
			}
			if !actions.Accepts(seg.ActionType) {
				continue
			}
			results = append(results, seg)
		}
	}
	return results, nil
}

// decodeSegments converts raw segment records into Segments, enforcing the
// closed category/action enumerations and time sanity. Any failure rejects
// the whole record set.
func decodeSegments(raws []rawSegment) ([]Segment, error) {
	segments := make([]Segment, 0, len(raws))
	for _, raw := range raws {
		if len(raw.Segment) != 2 {
			return nil, &DecodeError{Field: "segment", Err: fmt.Errorf("expected 2 time points, got %d", len(raw.Segment))}
		}
		start, end := raw.Segment[0], raw.Segment[1]
		if start < 0 {
			return nil, &DecodeError{Field: "segment", Err: fmt.Errorf("start (%v) < 0", start)}
		}
		if end < 0 {
			return nil, &DecodeError{Field: "segment", Err: fmt.Errorf("end (%v) < 0", end)}
		}
		if start > end {
			return nil, &DecodeError{Field: "segment", Err: fmt.Errorf("start (%v) > end (%v)", start, end)}
		}

		category, err := ParseCategory(raw.Category)
		if err != nil {
			return nil, err
		}
		action, err := ParseActionType(raw.ActionType)
		if err != nil {
			return nil, err
		}

		segments = append(segments, Segment{
			Category:      category,
			ActionType:    action,
			Start:         start,
			End:           end,
			UUID:          raw.UUID,
			Votes:         raw.Votes,
			Locked:        raw.Locked != 0,
			VideoDuration: raw.VideoDuration,
		})
	}
	return segments, nil
}

// get issues a single GET and classifies the outcome. It returns a nil body
// with a nil error for 404, the spec'd "nothing recorded" signal.
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("sponsorblock: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Keep a bounded slice of the body for diagnostics.
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ServiceError{StatusCode: resp.StatusCode, Body: errBody}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return body, nil
}
