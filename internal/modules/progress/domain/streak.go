package domain

// QualifyingViews is how many prompts a day needs to count toward a streak.
const QualifyingViews = 3

// RollOverStreak applies the calendar-day transition to the streak. It runs
// at session start and before each recorded view, while QuestionsViewedToday
// still describes LastActiveDate.
//
//   - same day (or a clock that moved backwards): unchanged
//   - the day after a qualifying day: preserved, the increment comes from
//     ApplyQualifyingView once today qualifies too
//   - the day after a non-qualifying day, or any longer gap: reset to 0
func RollOverStreak(s State, today Day) State {
	if s.LastActiveDate.IsZero() || s.LastActiveDate == today || today.Before(s.LastActiveDate) {
		return s
	}
	if s.LastActiveDate.Next() == today && s.QuestionsViewedToday >= QualifyingViews {
		return s
	}
	if s.Streak == 0 {
		return s
	}
	next := s.clone()
	next.Streak = 0
	return next
}

// ApplyQualifyingView increments the streak the first time today's view
// count reaches QualifyingViews. It reports whether the streak grew.
func ApplyQualifyingView(s State, today Day) (State, bool) {
	if s.LastActiveDate != today || s.QuestionsViewedToday < QualifyingViews {
		return s, false
	}
	if s.StreakIncrementedOn == today {
		return s, false
	}
	next := s.clone()
	next.Streak++
	next.StreakIncrementedOn = today
	return next, true
}
