package dto

import "time"

type StateOutput struct {
	Streak         int
	TotalViewed    int
	ViewedToday    int
	LastActiveDate string
	SavedCount     int
	UnlockedBadges []string
	FirstUse       bool

	// Swipes counts every card moved past, across sessions.
	Swipes int

	// Degraded is set when the last read or write of storage failed and
	// progress only lives in memory.
	Degraded bool
}

type CardOutput struct {
	Index      int
	Text       string
	SourceVibe string
	Rare       bool
	Seen       bool
	Saved      bool
}

type DeckOutput struct {
	RelationshipID string
	VibeID         string
	Mixed          bool
	Cards          []CardOutput
	CurrentIndex   int
	SeenCount      int
	Total          int
	Completed      bool
	ShowOnboarding bool

	// Encouragement is the micro-copy for the current swipe count, empty for
	// newcomers.
	Encouragement string
}

type MarkSeenInput struct {
	RelationshipID string
	VibeID         string
	Index          int
}

type MarkSeenOutput struct {
	State           StateOutput
	SeenCount       int
	Total           int
	NextIndex       int
	DeckComplete    bool
	Badge           *BadgeOutput
	Milestone       string
	StreakIncreased bool
	Encouragement   string
}

type SaveInput struct {
	Question       string
	RelationshipID string
	VibeID         string
}

type SaveOutput struct {
	Saved      bool
	Changed    bool
	SavedCount int
	Badge      *BadgeOutput
}

type EvaluateOutput struct {
	Badge *BadgeOutput
}

type BadgeOutput struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    bool
}

// SavedFilter narrows the saved list. Empty fields match everything and
// Query is a caseless substring match on the question text.
type SavedFilter struct {
	RelationshipID string
	VibeID         string
	Query          string
}

type SavedQuestionOutput struct {
	Question       string
	RelationshipID string
	VibeID         string
	SavedAt        time.Time
}

type ComboProgressOutput struct {
	RelationshipID string
	VibeID         string
	Seen           int
	Total          int
	Percent        int
	Completed      bool
}

type JourneyOutput struct {
	TotalViewed   int
	TotalPossible int
	Percent       int
	Streak        int
	SavedCount    int
	Combos        []ComboProgressOutput
	Badges        []BadgeOutput
}

type SessionSummaryOutput struct {
	SessionID      string
	StartedAt      time.Time
	Viewed         int
	Saved          int
	BadgesUnlocked []string
	Streak         int
}

type ExportSavedInput struct {
	Path string
}

type ExportSavedOutput struct {
	Path  string
	Count int
}
