package sponsorblock

import (
	"crypto/rand"
	"math/big"
)

const (
	userIDLength  = 36
	userIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateLocalUserID mints a new local user ID: 36 random alphanumeric
// characters, matching the scheme the official browser extension uses.
//
// Do not call this on every start-up. Generate one ID per user, store it,
// and treat it like a password: whoever holds it shares the user's rate
// bucket with the API.
func GenerateLocalUserID() string {
	max := big.NewInt(int64(len(userIDCharset)))
	id := make([]byte, userIDLength)
	for i := range id {
		// crypto/rand.Int only fails if the randomness source is broken,
		// which is not a recoverable situation.
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("sponsorblock: randomness source unavailable: " + err.Error())
		}
		id[i] = userIDCharset[n.Int64()]
	}
	return string(id)
}
