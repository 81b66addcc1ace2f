package youtube

import (
	"context"
	"testing"
)

func TestNewAPIListerRequiresKey(t *testing.T) {
	_, err := NewAPILister(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error for empty api key")
	}
}

func TestChannelIDRegex(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"UCuAXFkgsw1L7xaCfnd5JJOw", true},
		{"https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw", true},
		{"@SomeHandle", false},
		{"not-a-channel", false},
	}
	for _, tc := range cases {
		if got := channelIDRegex.MatchString(tc.input); got != tc.want {
			t.Errorf("channelIDRegex.MatchString(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
