package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"gothere/internal/modules/progress/domain"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	s := domain.DefaultState()
	s = domain.RecordSeen(s, "partner", "deep", 3, 20, today)
	s = domain.RecordSeen(s, "partner", domain.MixedVibeID, 11, 60, today)
	s = domain.SaveQuestion(s, "What scares you?", "partner", "deep", time.UnixMilli(1741600000123))
	s = domain.UnlockBadge(s, domain.BadgeFirstSteps)
	s = domain.DismissOnboarding(s)
	s.Streak = 2
	s.StreakIncrementedOn = today

	raw, err := domain.Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := domain.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(s, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDefaultStateUsesNullDate(t *testing.T) {
	t.Parallel()
	raw, err := domain.Encode(domain.DefaultState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(raw)
	for _, want := range []string{`"lastActiveDate":null`, `"firstUse":true`, `"seen":{}`, `"savedQuestions":[]`} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %s in %s", want, text)
		}
	}
	if strings.Contains(text, "streakIncrementedOn") {
		t.Fatalf("unset guard must be omitted: %s", text)
	}
}

func TestDecodeLegacyBlob(t *testing.T) {
	t.Parallel()
	raw := `{
		"seen": {"friend": {"funny": [0, 2, 2, -1]}},
		"streak": 2,
		"lastActiveDate": "Sun Mar 09 2025",
		"questionsViewedToday": 4,
		"_streakIncrementedToday": "Sun Mar 09 2025",
		"savedQuestions": [
			{"question": "Q", "relationship": "friend", "vibe": "funny", "savedAt": 1741500000000},
			{"question": "Q", "relationship": "friend", "vibe": "funny", "savedAt": 1741500009999}
		]
	}`
	got, err := domain.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.LastActiveDate != "2025-03-09" || got.StreakIncrementedOn != "2025-03-09" {
		t.Fatalf("legacy dates not normalised: %q %q", got.LastActiveDate, got.StreakIncrementedOn)
	}
	if diff := cmp.Diff([]int{0, 2}, got.Seen["friend"]["funny"]); diff != "" {
		t.Fatalf("seen set not sanitised (-want +got):\n%s", diff)
	}
	if len(got.SavedQuestions) != 1 {
		t.Fatalf("duplicate saved triple must collapse, got %d", len(got.SavedQuestions))
	}
	if !got.FirstUse || len(got.UnlockedBadges) != 0 {
		t.Fatalf("missing fields must keep defaults")
	}
}

func TestDecodeCorruptBlobFallsBackToDefault(t *testing.T) {
	t.Parallel()
	got, err := domain.Decode([]byte("{not json"))
	if !errors.Is(err, domain.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
	if diff := cmp.Diff(domain.DefaultState(), got); diff != "" {
		t.Fatalf("expected default state (-want +got):\n%s", diff)
	}

	empty, err := domain.Decode(nil)
	if err != nil {
		t.Fatalf("empty blob is not an error: %v", err)
	}
	if diff := cmp.Diff(domain.DefaultState(), empty); diff != "" {
		t.Fatalf("expected default state (-want +got):\n%s", diff)
	}
}

func TestDecodeSkipsMistypedFields(t *testing.T) {
	t.Parallel()
	got, err := domain.Decode([]byte(`{"streak": "three", "questionsViewedToday": 2, "firstUse": false}`))
	if err == nil {
		t.Fatalf("expected an error for the skipped field")
	}
	if errors.Is(err, domain.ErrCorruptState) {
		t.Fatalf("a partial blob is not corrupt: %v", err)
	}
	if got.Streak != 0 || got.QuestionsViewedToday != 2 || got.FirstUse {
		t.Fatalf("unexpected merge result: %+v", got)
	}
}
