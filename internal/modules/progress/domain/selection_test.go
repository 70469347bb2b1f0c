package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"gothere/internal/modules/progress/domain"
)

type fakeDecks struct {
	decks map[string]map[string][]string
	order map[string][]string
}

func (f fakeDecks) Deck(relationshipID, vibeID string) []string {
	return f.decks[relationshipID][vibeID]
}

func (f fakeDecks) AvailableVibes(relationshipID string) []string {
	return f.order[relationshipID]
}

func TestCharCodeSum(t *testing.T) {
	t.Parallel()
	cases := map[string]int{"partner": 764, "friend": 632, "group": 557, "": 0}
	for in, want := range cases {
		if got := domain.CharCodeSum(in); got != want {
			t.Fatalf("CharCodeSum(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestSeededShuffleIsDeterministic(t *testing.T) {
	t.Parallel()
	ten := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if diff := cmp.Diff([]int{9, 8, 1, 5, 7, 4, 0, 2, 3, 6}, domain.SeededShuffle(ten, 764)); diff != "" {
		t.Fatalf("unexpected order for seed 764 (-want +got):\n%s", diff)
	}
	six := []int{0, 1, 2, 3, 4, 5}
	if diff := cmp.Diff([]int{0, 3, 4, 5, 1, 2}, domain.SeededShuffle(six, 557)); diff != "" {
		t.Fatalf("unexpected order for seed 557 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ten); diff != "" {
		t.Fatalf("input must not be reordered (-want +got):\n%s", diff)
	}
	if got := domain.SeededShuffle([]int{}, 1); len(got) != 0 {
		t.Fatalf("empty input must stay empty")
	}
}

func TestIsRareCard(t *testing.T) {
	t.Parallel()
	rare := func(rel, vibe string) []int {
		var out []int
		for i := 0; i < 20; i++ {
			if domain.IsRareCard(rel, vibe, i) {
				out = append(out, i)
			}
		}
		return out
	}
	if diff := cmp.Diff([]int{7}, rare("partner", "deep")); diff != "" {
		t.Fatalf("partner/deep (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{8}, rare("friend", "funny")); diff != "" {
		t.Fatalf("friend/funny (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 18}, rare("kid", "real")); diff != "" {
		t.Fatalf("kid/real (-want +got):\n%s", diff)
	}
}

func TestNextUnseenIndexWrapsToZero(t *testing.T) {
	t.Parallel()
	s := domain.DefaultState()
	if got := domain.NextUnseenIndex(s, "partner", "deep", 4); got != 0 {
		t.Fatalf("fresh deck starts at 0, got %d", got)
	}
	s = domain.RecordSeen(s, "partner", "deep", 0, 4, today)
	s = domain.RecordSeen(s, "partner", "deep", 2, 4, today)
	if got := domain.NextUnseenIndex(s, "partner", "deep", 4); got != 1 {
		t.Fatalf("expected lowest unseen 1, got %d", got)
	}
	for i := 0; i < 4; i++ {
		s = domain.RecordSeen(s, "partner", "deep", i, 4, today)
	}
	if got := domain.NextUnseenIndex(s, "partner", "deep", 4); got != 0 {
		t.Fatalf("completed deck restarts at 0, got %d", got)
	}
}

func TestAdvanceIndexScansCircularly(t *testing.T) {
	t.Parallel()
	s := domain.DefaultState()
	for _, i := range []int{0, 1, 3} {
		s = domain.RecordSeen(s, "group", "hot", i, 5, today)
	}
	next, ok := domain.AdvanceIndex(s, "group", "hot", 3, 5)
	if !ok || next != 4 {
		t.Fatalf("expected 4, got %d ok=%t", next, ok)
	}
	s = domain.RecordSeen(s, "group", "hot", 4, 5, today)
	next, ok = domain.AdvanceIndex(s, "group", "hot", 4, 5)
	if !ok || next != 2 {
		t.Fatalf("expected wrap to 2, got %d ok=%t", next, ok)
	}
	s = domain.RecordSeen(s, "group", "hot", 2, 5, today)
	if _, ok := domain.AdvanceIndex(s, "group", "hot", 2, 5); ok {
		t.Fatalf("full deck must report no unseen index")
	}
	if _, ok := domain.AdvanceIndex(s, "group", "hot", 0, 0); ok {
		t.Fatalf("empty deck must report no unseen index")
	}
}

func TestBuildMixedDeckIsStableAndTagged(t *testing.T) {
	t.Parallel()
	src := fakeDecks{
		decks: map[string]map[string][]string{
			"group": {
				"funny": {"f0", "f1", "f2"},
				"hot":   {"h0", "h1", "h2"},
			},
		},
		order: map[string][]string{"group": {"funny", "hot", domain.MixedVibeID}},
	}
	first := domain.BuildMixedDeck("group", src)
	second := domain.BuildMixedDeck("group", src)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("mixed deck must be stable (-first +second):\n%s", diff)
	}

	want := []domain.MixedCard{
		{Text: "f0", SourceVibe: "funny"},
		{Text: "h0", SourceVibe: "hot"},
		{Text: "h1", SourceVibe: "hot"},
		{Text: "h2", SourceVibe: "hot"},
		{Text: "f1", SourceVibe: "funny"},
		{Text: "f2", SourceVibe: "funny"},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("unexpected mixed order (-want +got):\n%s", diff)
	}
}
