package sponsorblock

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash prefix bounds accepted by the API. Shorter prefixes match more
// unrelated videos and therefore give more privacy at the cost of larger
// responses.
const (
	// DefaultHashPrefixLength is the prefix length documented by the API.
	DefaultHashPrefixLength = 4
	// MinHashPrefixLength is the shortest prefix the API accepts.
	MinHashPrefixLength = 4
	// MaxHashPrefixLength is the full digest length.
	MaxHashPrefixLength = 32
)

// HashVideoID computes the SHA-256 digest of a video ID as a lowercase hex
// string. The server matches against the same digest space, so the algorithm
// must stay in sync with the API's published scheme.
//
// The function is deterministic: the same video ID always produces the same
// digest.
func HashVideoID(videoID string) string {
	sum := sha256.Sum256([]byte(videoID))
	return hex.EncodeToString(sum[:])
}

// HashPrefix returns the first n characters of a digest. This is the only
// part of the digest sent over the wire; the full digest is kept locally for
// exact matching. If n exceeds the digest length the whole digest is
// returned.
func HashPrefix(digest string, n int) string {
	if n >= len(digest) {
		return digest
	}
	return digest[:n]
}
