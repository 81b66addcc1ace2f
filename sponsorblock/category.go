package sponsorblock

import (
	"encoding/json"
	"fmt"
)

// Category classifies what kind of content a segment covers. The set is
// closed: values received from the API that are not listed here fail
// decoding rather than being smuggled through as an "unknown" catch-all.
//
// The constant values are the API's wire names.
type Category string

const (
	// CategorySponsor is a paid promotion, paid referral, or direct
	// advertisement.
	CategorySponsor Category = "sponsor"
	// CategorySelfPromotion is unpaid or self-promotion: merchandise,
	// donations, or collaborator information.
	CategorySelfPromotion Category = "selfpromo"
	// CategoryInteraction is a short reminder to like, subscribe, or follow.
	CategoryInteraction Category = "interaction"
	// CategoryHighlight marks the point the video is actually about.
	CategoryHighlight Category = "poi_highlight"
	// CategoryIntro is an intermission or intro animation without content.
	CategoryIntro Category = "intro"
	// CategoryOutro covers endcards and credits.
	CategoryOutro Category = "outro"
	// CategoryPreview is a recap of previous episodes or a preview of what
	// comes later in the same video.
	CategoryPreview Category = "preview"
	// CategoryNonMusic is a non-music section of a music video.
	CategoryNonMusic Category = "music_offtopic"
	// CategoryFiller is tangential filler content.
	CategoryFiller Category = "filler"
	// CategoryExclusiveAccess marks a video showcasing a product the creator
	// received free or early access to.
	CategoryExclusiveAccess Category = "exclusive_access"
)

// allCategories lists every known category, in a stable order used when
// building request parameters.
var allCategories = []Category{
	CategorySponsor,
	CategorySelfPromotion,
	CategoryInteraction,
	CategoryHighlight,
	CategoryIntro,
	CategoryOutro,
	CategoryPreview,
	CategoryNonMusic,
	CategoryFiller,
	CategoryExclusiveAccess,
}

// Categories returns every category known to this client.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory maps an API category string to a Category. Unrecognized
// values produce a DecodeError; this is how the closed-set invariant is
// enforced at the deserialization boundary.
func ParseCategory(s string) (Category, error) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &DecodeError{Field: "category", Value: s}
}

// AcceptedCategories is the caller's category filter: either every category,
// or an explicit allow-list. The zero value accepts nothing and is not
// usable; construct via AllCategories or SelectCategories.
type AcceptedCategories struct {
	all bool
	set []Category
}

// AllCategories accepts every category.
func AllCategories() AcceptedCategories {
	return AcceptedCategories{all: true}
}

// SelectCategories accepts exactly the given categories. An empty list is
// rejected with ErrInvalidInput: an empty allow-list silently returning
// nothing is almost always a caller bug, so it fails at construction
// instead.
func SelectCategories(categories ...Category) (AcceptedCategories, error) {
	if len(categories) == 0 {
		return AcceptedCategories{}, fmt.Errorf("%w: empty category set", ErrInvalidInput)
	}
	set := make([]Category, len(categories))
	copy(set, categories)
	return AcceptedCategories{set: set}, nil
}

// Accepts reports whether a segment of the given category passes the filter.
func (a AcceptedCategories) Accepts(c Category) bool {
	if a.all {
		return true
	}
	for _, want := range a.set {
		if want == c {
			return true
		}
	}
	return false
}

// queryValue renders the filter as the JSON array the categories request
// parameter expects. "All" expands to the full known set: the API defaults
// to sponsor-only when the parameter is omitted.
func (a AcceptedCategories) queryValue() string {
	cats := a.set
	if a.all {
		cats = allCategories
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	// Marshaling a []string cannot fail.
	b, _ := json.Marshal(names)
	return string(b)
}
