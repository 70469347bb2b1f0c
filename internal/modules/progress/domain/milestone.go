package domain

type Milestone struct {
	Count   int
	Message string
}

var milestones = []Milestone{
	{Count: 10, Message: "10 questions explored!"},
	{Count: 25, Message: "Halfway there!"},
	{Count: 50, Message: "50 questions deep!"},
}

// MilestoneFor reports the milestone hit exactly by either the overall view
// total or the seen count of the current combination.
func MilestoneFor(totalViewed, comboSeen int) (Milestone, bool) {
	for _, m := range milestones {
		if totalViewed == m.Count || comboSeen == m.Count {
			return m, true
		}
	}
	return Milestone{}, false
}
