package sponsorblock

import (
	"encoding/json"
	"fmt"
)

// ActionType describes what a player should do with a segment. It is
// orthogonal to Category: the category says what the content is, the action
// type says what to do about it.
//
// The constant values are the API's wire names.
type ActionType string

const (
	// ActionSkip skips over the segment entirely.
	ActionSkip ActionType = "skip"
	// ActionMute mutes the segment without skipping it.
	ActionMute ActionType = "mute"
	// ActionPointOfInterest is a single point worth jumping to, not a span
	// to remove.
	ActionPointOfInterest ActionType = "poi"
	// ActionFullVideo labels the entire video; nothing can be cleanly
	// skipped.
	ActionFullVideo ActionType = "full"
)

var allActions = []ActionType{
	ActionSkip,
	ActionMute,
	ActionPointOfInterest,
	ActionFullVideo,
}

// ActionTypes returns every action type known to this client.
func ActionTypes() []ActionType {
	out := make([]ActionType, len(allActions))
	copy(out, allActions)
	return out
}

// ParseActionType maps an API action type string to an ActionType,
// rejecting unrecognized values with a DecodeError.
func ParseActionType(s string) (ActionType, error) {
	for _, a := range allActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", &DecodeError{Field: "actionType", Value: s}
}

// AcceptedActions is the caller's action type filter, mirroring
// AcceptedCategories.
type AcceptedActions struct {
	all bool
	set []ActionType
}

// AllActions accepts every action type.
func AllActions() AcceptedActions {
	return AcceptedActions{all: true}
}

// SelectActions accepts exactly the given action types. An empty list is
// rejected with ErrInvalidInput.
func SelectActions(actions ...ActionType) (AcceptedActions, error) {
	if len(actions) == 0 {
		return AcceptedActions{}, fmt.Errorf("%w: empty action type set", ErrInvalidInput)
	}
	set := make([]ActionType, len(actions))
	copy(set, actions)
	return AcceptedActions{set: set}, nil
}

// Accepts reports whether a segment with the given action type passes the
// filter.
func (a AcceptedActions) Accepts(t ActionType) bool {
	if a.all {
		return true
	}
	for _, want := range a.set {
		if want == t {
			return true
		}
	}
	return false
}

// queryValue renders the filter as the JSON array the actionTypes request
// parameter expects.
func (a AcceptedActions) queryValue() string {
	actions := a.set
	if a.all {
		actions = allActions
	}
	names := make([]string, len(actions))
	for i, t := range actions {
		names[i] = string(t)
	}
	b, _ := json.Marshal(names)
	return string(b)
}
