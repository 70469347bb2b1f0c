package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCorruptState reports a persisted blob that could not be used at all.
var ErrCorruptState = errors.New("corrupt progress state")

type savedQuestionJSON struct {
	Question     string `json:"question"`
	Relationship string `json:"relationship"`
	Vibe         string `json:"vibe"`
	SavedAt      int64  `json:"savedAt"`
}

type stateJSON struct {
	Seen                 map[string]map[string][]int `json:"seen"`
	Completed            map[string]map[string]bool  `json:"completed"`
	SavedQuestions       []savedQuestionJSON         `json:"savedQuestions"`
	Streak               int                         `json:"streak"`
	LastActiveDate       *string                     `json:"lastActiveDate"`
	QuestionsViewedToday int                         `json:"questionsViewedToday"`
	UnlockedBadges       []string                    `json:"unlockedBadges"`
	FirstUse             bool                        `json:"firstUse"`
	StreakIncrementedOn  *string                     `json:"streakIncrementedOn,omitempty"`
}

// Encode serializes a State to its persisted JSON form.
func Encode(s State) ([]byte, error) {
	out := stateJSON{
		Seen:                 s.Seen,
		Completed:            s.Completed,
		SavedQuestions:       make([]savedQuestionJSON, 0, len(s.SavedQuestions)),
		Streak:               s.Streak,
		QuestionsViewedToday: s.QuestionsViewedToday,
		UnlockedBadges:       s.UnlockedBadges,
		FirstUse:             s.FirstUse,
	}
	if out.Seen == nil {
		out.Seen = map[string]map[string][]int{}
	}
	if out.Completed == nil {
		out.Completed = map[string]map[string]bool{}
	}
	if out.UnlockedBadges == nil {
		out.UnlockedBadges = []string{}
	}
	for _, q := range s.SavedQuestions {
		out.SavedQuestions = append(out.SavedQuestions, savedQuestionJSON{
			Question:     q.Question,
			Relationship: q.RelationshipID,
			Vibe:         q.VibeID,
			SavedAt:      q.SavedAt.UnixMilli(),
		})
	}
	if !s.LastActiveDate.IsZero() {
		d := s.LastActiveDate.String()
		out.LastActiveDate = &d
	}
	if !s.StreakIncrementedOn.IsZero() {
		d := s.StreakIncrementedOn.String()
		out.StreakIncrementedOn = &d
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode progress state: %w", err)
	}
	return payload, nil
}

// Decode merges a persisted blob over DefaultState one field at a time, so
// blobs written by older versions still load. The returned State is always
// usable. A non-nil error means the blob was unreadable (ErrCorruptState,
// state is the default) or that some fields were skipped.
func Decode(raw []byte) (State, error) {
	state := DefaultState()
	if len(bytes.TrimSpace(raw)) == 0 {
		return state, nil
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return DefaultState(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	var skipped []error
	field := func(name string, target any) bool {
		value, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return false
		}
		if err := json.Unmarshal(value, target); err != nil {
			skipped = append(skipped, fmt.Errorf("field %s: %w", name, err))
			return false
		}
		return true
	}

	seen := map[string]map[string][]int{}
	if field("seen", &seen) {
		state.Seen = sanitizeSeen(seen)
	}
	completed := map[string]map[string]bool{}
	if field("completed", &completed) {
		state.Completed = sanitizeCompleted(completed)
	}
	saved := []savedQuestionJSON{}
	if field("savedQuestions", &saved) {
		state.SavedQuestions = sanitizeSaved(saved)
	}
	streak := 0
	if field("streak", &streak) && streak > 0 {
		state.Streak = streak
	}
	viewed := 0
	if field("questionsViewedToday", &viewed) && viewed > 0 {
		state.QuestionsViewedToday = viewed
	}
	badges := []string{}
	if field("unlockedBadges", &badges) {
		state.UnlockedBadges = dedupe(badges)
	}
	firstUse := true
	if field("firstUse", &firstUse) {
		state.FirstUse = firstUse
	}
	if day, ok := decodeDay(field, "lastActiveDate"); ok {
		state.LastActiveDate = day
	}
	if day, ok := decodeDay(field, "streakIncrementedOn"); ok {
		state.StreakIncrementedOn = day
	} else if day, ok := decodeDay(field, "_streakIncrementedToday"); ok {
		state.StreakIncrementedOn = day
	}

	return state, errors.Join(skipped...)
}

func decodeDay(field func(string, any) bool, name string) (Day, bool) {
	raw := ""
	if !field(name, &raw) {
		return "", false
	}
	return ParseDay(raw)
}

func sanitizeSeen(in map[string]map[string][]int) map[string]map[string][]int {
	out := make(map[string]map[string][]int, len(in))
	for rel, vibes := range in {
		if vibes == nil {
			continue
		}
		inner := make(map[string][]int, len(vibes))
		for vibe, idx := range vibes {
			seen := map[int]struct{}{}
			kept := make([]int, 0, len(idx))
			for _, i := range idx {
				if i < 0 {
					continue
				}
				if _, dup := seen[i]; dup {
					continue
				}
				seen[i] = struct{}{}
				kept = append(kept, i)
			}
			inner[vibe] = kept
		}
		out[rel] = inner
	}
	return out
}

func sanitizeCompleted(in map[string]map[string]bool) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(in))
	for rel, vibes := range in {
		inner := map[string]bool{}
		for vibe, done := range vibes {
			if done {
				inner[vibe] = true
			}
		}
		if len(inner) > 0 {
			out[rel] = inner
		}
	}
	return out
}

func sanitizeSaved(in []savedQuestionJSON) []SavedQuestion {
	out := make([]SavedQuestion, 0, len(in))
	state := State{}
	for _, q := range in {
		if q.Question == "" || state.IsSaved(q.Question, q.Relationship, q.Vibe) {
			continue
		}
		sq := SavedQuestion{Question: q.Question, RelationshipID: q.Relationship, VibeID: q.Vibe}
		if q.SavedAt > 0 {
			sq.SavedAt = time.UnixMilli(q.SavedAt)
		}
		state.SavedQuestions = append(state.SavedQuestions, sq)
		out = append(out, sq)
	}
	return out
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, item := range in {
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
