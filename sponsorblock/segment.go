package sponsorblock

// Segment is one annotated time range in a video, together with its
// provenance metadata. Segments are immutable value objects built fresh for
// each response.
type Segment struct {
	// Category is what kind of content the segment covers.
	Category Category
	// ActionType is what a player should do with the segment.
	ActionType ActionType
	// Start and End are offsets into the video, in seconds.
	// 0 <= Start <= End always holds for decoded segments. For
	// point-of-interest segments Start == End.
	Start float64
	End   float64
	// UUID uniquely identifies this submitted segment in the database,
	// stable across queries.
	UUID string
	// Votes is the segment's vote count. Opaque pass-through from the API.
	Votes int
	// Locked reports whether the segment has been locked by a moderator.
	Locked bool
	// VideoDuration is the video length recorded when the segment was
	// submitted, in seconds. Callers compare it against the current video
	// length to detect segments made stale by a re-edit.
	VideoDuration float64
}

// Duration returns the length of the segment in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}
