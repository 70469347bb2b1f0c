package domain

import (
	"strconv"
	"strings"
)

// SwipeCountKey stores the lifetime number of cards moved past. It lives
// outside the State blob so clearing progress keeps it, and the other way
// round.
const SwipeCountKey = "go-there-swipe-count"

// EncouragementAfter is how many swipes pass before micro-copy shows up.
// Before that the onboarding hint does the talking.
const EncouragementAfter = 3

var encouragingPrompts = []string{
	"This one's good...",
	"Ready for the next?",
	"Keep going!",
	"You're on a roll",
	"Good question, right?",
	"Let that one sit...",
	"Swipe when ready",
}

// Encouragement returns the micro-copy line for a swipe count, rotating
// through the prompts once the count reaches EncouragementAfter.
func Encouragement(swipes int) string {
	if swipes < EncouragementAfter {
		return ""
	}
	return encouragingPrompts[swipes%len(encouragingPrompts)]
}

func EncodeSwipeCount(n int) []byte {
	if n < 0 {
		n = 0
	}
	return []byte(strconv.Itoa(n))
}

// DecodeSwipeCount reads a stored counter. Anything unreadable counts as 0.
func DecodeSwipeCount(raw []byte) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
