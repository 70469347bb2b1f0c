package domain

// View is the aggregate handed to achievement predicates.
type View struct {
	State                State
	TotalQuestionsViewed int
	// Combos maps each relationship to the vibes the catalog offers for it.
	Combos map[string][]string
}

func NewView(s State, combos map[string][]string) View {
	return View{State: s, TotalQuestionsViewed: s.TotalViewed(), Combos: combos}
}

type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Predicate   func(View) bool
}

const (
	BadgeFirstSteps     = "first-steps"
	BadgeDeepDiver      = "deep-diver"
	BadgeLifeOfTheParty = "life-of-the-party"
	BadgeHeartToHeart   = "heart-to-heart"
	BadgeStreakStarter  = "streak-starter"
	BadgeOnFire         = "on-fire"
	BadgeUnstoppable    = "unstoppable"
	BadgeCollector      = "collector"
	BadgeExplorer       = "explorer"
	BadgeVibeCheck      = "vibe-check"
	BadgeWentThere      = "went-there"
)

// achievements is evaluated in this order; the first newly qualifying entry
// wins each evaluation.
var achievements = []Achievement{
	{
		ID: BadgeFirstSteps, Name: "First Steps", Description: "View your first question", Icon: "👣",
		Predicate: func(v View) bool { return v.TotalQuestionsViewed >= 1 },
	},
	{
		ID: BadgeDeepDiver, Name: "Deep Diver", Description: "Complete all Deep combos", Icon: "🌊",
		Predicate: completedVibeEverywhere("deep"),
	},
	{
		ID: BadgeLifeOfTheParty, Name: "Life of the Party", Description: "Complete all Group combos", Icon: "🪩",
		Predicate: completedRelationship("group"),
	},
	{
		ID: BadgeHeartToHeart, Name: "Heart to Heart", Description: "Complete all Partner combos", Icon: "💕",
		Predicate: completedRelationship("partner"),
	},
	{
		ID: BadgeStreakStarter, Name: "Streak Starter", Description: "3-day streak", Icon: "🔥",
		Predicate: streakAtLeast(3),
	},
	{
		ID: BadgeOnFire, Name: "On Fire", Description: "7-day streak", Icon: "🔥🔥",
		Predicate: streakAtLeast(7),
	},
	{
		ID: BadgeUnstoppable, Name: "Unstoppable", Description: "30-day streak", Icon: "⚡",
		Predicate: streakAtLeast(30),
	},
	{
		ID: BadgeCollector, Name: "Collector", Description: "Save 20 questions", Icon: "❤️",
		Predicate: func(v View) bool { return len(v.State.SavedQuestions) >= 20 },
	},
	{
		ID: BadgeExplorer, Name: "Explorer", Description: "Try every relationship", Icon: "🧭",
		Predicate: triedEveryRelationship,
	},
	{
		ID: BadgeVibeCheck, Name: "Vibe Check", Description: "Try every vibe", Icon: "✨",
		Predicate: triedEveryVibe,
	},
	{
		ID: BadgeWentThere, Name: "Went There", Description: "Complete every combo", Icon: "🏆",
		Predicate: completedEverything,
	},
}

// Achievements returns the rule list in evaluation order.
func Achievements() []Achievement {
	return append([]Achievement(nil), achievements...)
}

func AchievementByID(id string) (Achievement, bool) {
	for _, a := range achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Evaluate unlocks at most one achievement: the first, in list order, that
// is still locked and whose predicate holds. Later candidates surface on the
// next call.
func Evaluate(s State, combos map[string][]string) (State, Achievement, bool) {
	view := NewView(s, combos)
	for _, a := range achievements {
		if s.IsUnlocked(a.ID) || !a.Predicate(view) {
			continue
		}
		return UnlockBadge(s, a.ID), a, true
	}
	return s, Achievement{}, false
}

func streakAtLeast(n int) func(View) bool {
	return func(v View) bool { return v.State.Streak >= n }
}

func completedRelationship(relationshipID string) func(View) bool {
	return func(v View) bool {
		vibes := v.Combos[relationshipID]
		if len(vibes) == 0 {
			return false
		}
		for _, vibe := range vibes {
			if !v.State.IsCompleted(relationshipID, vibe) {
				return false
			}
		}
		return true
	}
}

func completedVibeEverywhere(vibeID string) func(View) bool {
	return func(v View) bool {
		found := false
		for rel, vibes := range v.Combos {
			if !contains(vibes, vibeID) {
				continue
			}
			found = true
			if !v.State.IsCompleted(rel, vibeID) {
				return false
			}
		}
		return found
	}
}

func triedEveryRelationship(v View) bool {
	if len(v.Combos) == 0 {
		return false
	}
	for rel := range v.Combos {
		tried := false
		for _, idx := range v.State.Seen[rel] {
			if len(idx) > 0 {
				tried = true
				break
			}
		}
		if !tried {
			return false
		}
	}
	return true
}

func triedEveryVibe(v View) bool {
	vibes := map[string]struct{}{}
	for _, list := range v.Combos {
		for _, vibe := range list {
			vibes[vibe] = struct{}{}
		}
	}
	if len(vibes) == 0 {
		return false
	}
	for vibe := range vibes {
		tried := false
		for rel := range v.State.Seen {
			if v.State.SeenCount(rel, vibe) > 0 {
				tried = true
				break
			}
		}
		if !tried {
			return false
		}
	}
	return true
}

func completedEverything(v View) bool {
	if len(v.Combos) == 0 {
		return false
	}
	for rel, vibes := range v.Combos {
		for _, vibe := range vibes {
			if !v.State.IsCompleted(rel, vibe) {
				return false
			}
		}
	}
	return true
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
