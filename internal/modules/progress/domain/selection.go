package domain

import (
	"math"
	"unicode/utf16"
)

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280

	rareEvery = 15
)

// DeckSource is the slice of the content catalog the selection engine reads.
type DeckSource interface {
	Deck(relationshipID, vibeID string) []string
	AvailableVibes(relationshipID string) []string
}

// MixedCard is one prompt of a mixed deck with the vibe it came from.
type MixedCard struct {
	Text       string
	SourceVibe string
}

// NextUnseenIndex returns the lowest index not yet seen, or 0 once every
// index has been seen so the deck starts over.
func NextUnseenIndex(s State, relationshipID, vibeID string, deckLength int) int {
	for i := 0; i < deckLength; i++ {
		if !s.HasSeen(relationshipID, vibeID, i) {
			return i
		}
	}
	return 0
}

// AdvanceIndex scans circularly from current+1 for an unseen index. ok is
// false when the deck has no unseen index left.
func AdvanceIndex(s State, relationshipID, vibeID string, current, deckLength int) (int, bool) {
	if deckLength <= 0 {
		return 0, false
	}
	for step := 1; step <= deckLength; step++ {
		candidate := ((current+step)%deckLength + deckLength) % deckLength
		if !s.HasSeen(relationshipID, vibeID, candidate) {
			return candidate, true
		}
	}
	return 0, false
}

// BuildMixedDeck concatenates every vibe deck of a relationship and shuffles
// it with a seed derived from the relationship id. The order only depends on
// the relationship and the catalog, so indices recorded against it stay
// valid across sessions.
func BuildMixedDeck(relationshipID string, src DeckSource) []MixedCard {
	var combined []MixedCard
	for _, vibe := range src.AvailableVibes(relationshipID) {
		if vibe == MixedVibeID {
			continue
		}
		for _, text := range src.Deck(relationshipID, vibe) {
			combined = append(combined, MixedCard{Text: text, SourceVibe: vibe})
		}
	}
	return SeededShuffle(combined, CharCodeSum(relationshipID))
}

// SeededShuffle is a Fisher-Yates pass driven by a linear congruential
// generator. It returns a new slice.
func SeededShuffle[T any](items []T, seed int) []T {
	out := append([]T(nil), items...)
	s := int64(seed) % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	for i := len(out) - 1; i > 0; i-- {
		s = (s*lcgMultiplier + lcgIncrement) % lcgModulus
		j := int(math.Floor(float64(s) / lcgModulus * float64(i+1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// IsRareCard marks roughly one card in fifteen for cosmetic emphasis.
func IsRareCard(relationshipID, vibeID string, index int) bool {
	return (CharCodeSum(relationshipID+vibeID)+index)%rareEvery == 0
}

// CharCodeSum adds up the UTF-16 code units of s.
func CharCodeSum(s string) int {
	total := 0
	for _, unit := range utf16.Encode([]rune(s)) {
		total += int(unit)
	}
	return total
}
