package enums

import (
	"errors"
	"strings"
)

var ErrUnknownSwipeDirection = errors.New("unknown swipe direction")

type SwipeDirection string

const (
	SwipeDirectionLeft  SwipeDirection = "left"
	SwipeDirectionRight SwipeDirection = "right"
)

func (d SwipeDirection) Valid() bool {
	return d == SwipeDirectionLeft || d == SwipeDirectionRight
}

func (d SwipeDirection) String() string {
	return string(d)
}

// ParseSwipeDirection accepts the wire values and the legacy action names
// (LIKE, SUPERLIKE, DISLIKE, PASS). The second result reports a super like.
func ParseSwipeDirection(raw string) (SwipeDirection, bool, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, "_", "")
	switch value {
	case "right", "like":
		return SwipeDirectionRight, false, nil
	case "superlike":
		return SwipeDirectionRight, true, nil
	case "left", "dislike", "pass":
		return SwipeDirectionLeft, false, nil
	default:
		return "", false, ErrUnknownSwipeDirection
	}
}
