package domain

import "time"

// StorageKey is the namespace the whole State is persisted under.
const StorageKey = "go-there-app"

// MixedVibeID is the pseudo-vibe whose deck blends every vibe of a
// relationship. Progress on it is tracked under its own combination.
const MixedVibeID = "mixed"

type SavedQuestion struct {
	Question       string
	RelationshipID string
	VibeID         string
	SavedAt        time.Time
}

func (q SavedQuestion) matches(text, relationshipID, vibeID string) bool {
	return q.Question == text && q.RelationshipID == relationshipID && q.VibeID == vibeID
}

// State is the persisted progress aggregate. Values are snapshots: every
// mutator returns a fresh State and never writes through to its input, so
// callers must treat the maps and slices as read-only.
type State struct {
	Seen                 map[string]map[string][]int
	Completed            map[string]map[string]bool
	SavedQuestions       []SavedQuestion
	Streak               int
	LastActiveDate       Day
	QuestionsViewedToday int
	UnlockedBadges       []string
	FirstUse             bool

	// StreakIncrementedOn guards against counting the same qualifying day twice.
	StreakIncrementedOn Day
}

func DefaultState() State {
	return State{
		Seen:           map[string]map[string][]int{},
		Completed:      map[string]map[string]bool{},
		SavedQuestions: []SavedQuestion{},
		UnlockedBadges: []string{},
		FirstUse:       true,
	}
}

func (s State) clone() State {
	out := s
	out.Seen = make(map[string]map[string][]int, len(s.Seen))
	for rel, vibes := range s.Seen {
		inner := make(map[string][]int, len(vibes))
		for vibe, idx := range vibes {
			inner[vibe] = append([]int(nil), idx...)
		}
		out.Seen[rel] = inner
	}
	out.Completed = make(map[string]map[string]bool, len(s.Completed))
	for rel, vibes := range s.Completed {
		inner := make(map[string]bool, len(vibes))
		for vibe, done := range vibes {
			inner[vibe] = done
		}
		out.Completed[rel] = inner
	}
	out.SavedQuestions = append([]SavedQuestion{}, s.SavedQuestions...)
	out.UnlockedBadges = append([]string{}, s.UnlockedBadges...)
	return out
}

func (s State) seenSet(relationshipID, vibeID string) []int {
	return s.Seen[relationshipID][vibeID]
}

func (s State) HasSeen(relationshipID, vibeID string, index int) bool {
	for _, i := range s.seenSet(relationshipID, vibeID) {
		if i == index {
			return true
		}
	}
	return false
}

func (s State) SeenCount(relationshipID, vibeID string) int {
	return len(s.seenSet(relationshipID, vibeID))
}

// TotalViewed sums the seen sets of every combination, mixed decks included.
func (s State) TotalViewed() int {
	total := 0
	for _, vibes := range s.Seen {
		for _, idx := range vibes {
			total += len(idx)
		}
	}
	return total
}

func (s State) IsCompleted(relationshipID, vibeID string) bool {
	return s.Completed[relationshipID][vibeID]
}

func (s State) IsSaved(text, relationshipID, vibeID string) bool {
	for _, q := range s.SavedQuestions {
		if q.matches(text, relationshipID, vibeID) {
			return true
		}
	}
	return false
}

func (s State) IsUnlocked(badgeID string) bool {
	for _, id := range s.UnlockedBadges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// RecordSeen marks index as shown for a combination and rolls the daily
// view counter. Indices outside [0, deckLength) leave the state untouched.
func RecordSeen(s State, relationshipID, vibeID string, index, deckLength int, today Day) State {
	if deckLength <= 0 || index < 0 || index >= deckLength {
		return s
	}
	next := s.clone()
	if next.Seen[relationshipID] == nil {
		next.Seen[relationshipID] = map[string][]int{}
	}
	if !s.HasSeen(relationshipID, vibeID, index) {
		next.Seen[relationshipID][vibeID] = append(next.Seen[relationshipID][vibeID], index)
	}
	if len(next.Seen[relationshipID][vibeID]) >= deckLength {
		next.markCompleted(relationshipID, vibeID)
	}

	if next.LastActiveDate != today {
		next.QuestionsViewedToday = 0
	}
	next.QuestionsViewedToday++
	next.LastActiveDate = today
	return next
}

func (s *State) markCompleted(relationshipID, vibeID string) {
	if s.Completed[relationshipID] == nil {
		s.Completed[relationshipID] = map[string]bool{}
	}
	s.Completed[relationshipID][vibeID] = true
}

// SaveQuestion appends a saved prompt unless the same triple is already saved.
func SaveQuestion(s State, text, relationshipID, vibeID string, at time.Time) State {
	if text == "" || s.IsSaved(text, relationshipID, vibeID) {
		return s
	}
	next := s.clone()
	next.SavedQuestions = append(next.SavedQuestions, SavedQuestion{
		Question:       text,
		RelationshipID: relationshipID,
		VibeID:         vibeID,
		SavedAt:        at,
	})
	return next
}

func UnsaveQuestion(s State, text, relationshipID, vibeID string) State {
	if !s.IsSaved(text, relationshipID, vibeID) {
		return s
	}
	next := s.clone()
	kept := next.SavedQuestions[:0]
	for _, q := range next.SavedQuestions {
		if !q.matches(text, relationshipID, vibeID) {
			kept = append(kept, q)
		}
	}
	next.SavedQuestions = kept
	return next
}

func DismissOnboarding(s State) State {
	if !s.FirstUse {
		return s
	}
	next := s.clone()
	next.FirstUse = false
	return next
}

func UnlockBadge(s State, badgeID string) State {
	if badgeID == "" || s.IsUnlocked(badgeID) {
		return s
	}
	next := s.clone()
	next.UnlockedBadges = append(next.UnlockedBadges, badgeID)
	return next
}

// Reconcile aligns seen sets and completion flags with the current deck
// lengths after a load. For every combination the catalog knows, completion
// is recomputed from the seen set, so a flag the seen set does not back is
// cleared. Combinations the catalog does not know are left alone.
func Reconcile(s State, deckLength func(relationshipID, vibeID string) int) (State, bool) {
	next := s.clone()
	changed := false
	for rel, vibes := range next.Seen {
		for vibe, idx := range vibes {
			n := deckLength(rel, vibe)
			if n <= 0 {
				continue
			}
			kept := idx[:0]
			for _, i := range idx {
				if i < n {
					kept = append(kept, i)
				}
			}
			if len(kept) != len(idx) {
				changed = true
			}
			vibes[vibe] = kept
		}
	}

	combos := map[[2]string]struct{}{}
	for rel, vibes := range next.Seen {
		for vibe := range vibes {
			combos[[2]string{rel, vibe}] = struct{}{}
		}
	}
	for rel, vibes := range next.Completed {
		for vibe := range vibes {
			combos[[2]string{rel, vibe}] = struct{}{}
		}
	}
	for combo := range combos {
		rel, vibe := combo[0], combo[1]
		n := deckLength(rel, vibe)
		if n <= 0 {
			continue
		}
		want := next.SeenCount(rel, vibe) >= n
		if want == next.IsCompleted(rel, vibe) {
			continue
		}
		changed = true
		if want {
			next.markCompleted(rel, vibe)
		} else {
			next.clearCompleted(rel, vibe)
		}
	}
	if !changed {
		return s, false
	}
	return next, true
}

func (s *State) clearCompleted(relationshipID, vibeID string) {
	delete(s.Completed[relationshipID], vibeID)
	if len(s.Completed[relationshipID]) == 0 {
		delete(s.Completed, relationshipID)
	}
}
