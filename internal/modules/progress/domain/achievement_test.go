package domain_test

import (
	"testing"
	"time"

	"gothere/internal/modules/progress/domain"
)

var smallCombos = map[string][]string{
	"partner": {"deep", "hot"},
	"group":   {"funny", "deep"},
}

func TestEvaluateUnlocksFirstStepsOnFirstView(t *testing.T) {
	t.Parallel()
	s := domain.RecordSeen(domain.DefaultState(), "partner", "deep", 0, 20, today)
	next, badge, ok := domain.Evaluate(s, smallCombos)
	if !ok || badge.ID != domain.BadgeFirstSteps {
		t.Fatalf("expected first-steps, got %q ok=%t", badge.ID, ok)
	}
	if !next.IsUnlocked(domain.BadgeFirstSteps) {
		t.Fatalf("badge must be recorded in state")
	}
	if _, _, again := domain.Evaluate(next, smallCombos); again {
		t.Fatalf("nothing else qualifies yet")
	}
}

func TestEvaluateUnlocksOneBadgePerCall(t *testing.T) {
	t.Parallel()
	s := domain.DefaultState()
	for rel, vibes := range smallCombos {
		for _, vibe := range vibes {
			s = domain.RecordSeen(s, rel, vibe, 0, 1, today)
		}
	}

	var order []string
	for {
		var badge domain.Achievement
		var ok bool
		s, badge, ok = domain.Evaluate(s, smallCombos)
		if !ok {
			break
		}
		order = append(order, badge.ID)
	}
	want := []string{
		domain.BadgeFirstSteps,
		domain.BadgeDeepDiver,
		domain.BadgeLifeOfTheParty,
		domain.BadgeHeartToHeart,
		domain.BadgeExplorer,
		domain.BadgeVibeCheck,
		domain.BadgeWentThere,
	}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestStreakAndCollectorBadges(t *testing.T) {
	t.Parallel()
	s := domain.UnlockBadge(domain.DefaultState(), domain.BadgeFirstSteps)
	s.Streak = 7
	s, badge, _ := domain.Evaluate(s, smallCombos)
	if badge.ID != domain.BadgeStreakStarter {
		t.Fatalf("expected streak-starter first, got %q", badge.ID)
	}
	_, badge, _ = domain.Evaluate(s, smallCombos)
	if badge.ID != domain.BadgeOnFire {
		t.Fatalf("expected on-fire next, got %q", badge.ID)
	}

	c := domain.DefaultState()
	for i := 0; i < 20; i++ {
		c = domain.SaveQuestion(c, string(rune('a'+i)), "partner", "deep", time.Unix(int64(i), 0))
	}
	_, badge, ok := domain.Evaluate(c, smallCombos)
	if !ok || badge.ID != domain.BadgeCollector {
		t.Fatalf("expected collector, got %q ok=%t", badge.ID, ok)
	}
}

func TestDeepDiverNeedsACatalogWithDeep(t *testing.T) {
	t.Parallel()
	combos := map[string][]string{"kid": {"funny"}}
	s := domain.RecordSeen(domain.DefaultState(), "kid", "funny", 0, 1, today)
	s = domain.UnlockBadge(s, domain.BadgeFirstSteps)
	_, badge, ok := domain.Evaluate(s, combos)
	if !ok || badge.ID != domain.BadgeExplorer {
		t.Fatalf("expected explorer, deep-diver needs a deep vibe; got %q", badge.ID)
	}
}

func TestAchievementByID(t *testing.T) {
	t.Parallel()
	a, ok := domain.AchievementByID(domain.BadgeWentThere)
	if !ok || a.Name != "Went There" {
		t.Fatalf("unexpected lookup: %+v ok=%t", a, ok)
	}
	if _, ok := domain.AchievementByID("nope"); ok {
		t.Fatalf("unknown id must not resolve")
	}
	if got := len(domain.Achievements()); got != 11 {
		t.Fatalf("expected 11 achievements, got %d", got)
	}
}

func TestMilestoneFor(t *testing.T) {
	t.Parallel()
	if m, ok := domain.MilestoneFor(10, 3); !ok || m.Message != "10 questions explored!" {
		t.Fatalf("expected total milestone, got %+v ok=%t", m, ok)
	}
	if m, ok := domain.MilestoneFor(31, 25); !ok || m.Message != "Halfway there!" {
		t.Fatalf("expected combo milestone, got %+v ok=%t", m, ok)
	}
	if _, ok := domain.MilestoneFor(11, 9); ok {
		t.Fatalf("no milestone between thresholds")
	}
}
