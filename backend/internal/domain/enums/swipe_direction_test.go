package enums

import (
	"errors"
	"testing"
)

func TestParseSwipeDirection(t *testing.T) {
	cases := []struct {
		raw   string
		want  SwipeDirection
		super bool
	}{
		{raw: "right", want: SwipeDirectionRight},
		{raw: " Left ", want: SwipeDirectionLeft},
		{raw: "LIKE", want: SwipeDirectionRight},
		{raw: "SUPER_LIKE", want: SwipeDirectionRight, super: true},
		{raw: "superlike", want: SwipeDirectionRight, super: true},
		{raw: "DISLIKE", want: SwipeDirectionLeft},
		{raw: "pass", want: SwipeDirectionLeft},
	}

	for _, tc := range cases {
		got, super, err := ParseSwipeDirection(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want || super != tc.super {
			t.Fatalf("parse %q: got (%s, %v) want (%s, %v)", tc.raw, got, super, tc.want, tc.super)
		}
	}
}

func TestParseSwipeDirectionRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "up", "maybe"} {
		if _, _, err := ParseSwipeDirection(raw); !errors.Is(err, ErrUnknownSwipeDirection) {
			t.Fatalf("expected ErrUnknownSwipeDirection for %q, got %v", raw, err)
		}
	}
}

func TestSwipeDirectionValid(t *testing.T) {
	if !SwipeDirectionLeft.Valid() || !SwipeDirectionRight.Valid() {
		t.Fatalf("left and right must be valid")
	}
	if SwipeDirection("up").Valid() {
		t.Fatalf("unexpected valid direction")
	}
}
