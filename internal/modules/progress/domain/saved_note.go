package domain

import (
	"sort"
	"time"
)

// SavedNote is the printable form of the saved questions, grouped by
// relationship in first-saved order.
type SavedNote struct {
	GeneratedAt time.Time
	Count       int
	Groups      []SavedNoteGroup
}

type SavedNoteGroup struct {
	RelationshipID    string
	RelationshipLabel string
	Entries           []SavedNoteEntry
}

type SavedNoteEntry struct {
	Question  string
	VibeID    string
	VibeLabel string
	SavedAt   time.Time
}

// BuildSavedNote groups saved questions for export. Ids missing from the
// label maps are printed as-is.
func BuildSavedNote(saved []SavedQuestion, relationshipLabels, vibeLabels map[string]string, at time.Time) SavedNote {
	note := SavedNote{GeneratedAt: at, Count: len(saved)}
	index := map[string]int{}
	for _, q := range saved {
		pos, ok := index[q.RelationshipID]
		if !ok {
			pos = len(note.Groups)
			index[q.RelationshipID] = pos
			note.Groups = append(note.Groups, SavedNoteGroup{
				RelationshipID:    q.RelationshipID,
				RelationshipLabel: labelOr(relationshipLabels, q.RelationshipID),
			})
		}
		note.Groups[pos].Entries = append(note.Groups[pos].Entries, SavedNoteEntry{
			Question:  q.Question,
			VibeID:    q.VibeID,
			VibeLabel: labelOr(vibeLabels, q.VibeID),
			SavedAt:   q.SavedAt,
		})
	}
	for _, g := range note.Groups {
		sort.SliceStable(g.Entries, func(a, b int) bool {
			return g.Entries[a].SavedAt.Before(g.Entries[b].SavedAt)
		})
	}
	return note
}

func labelOr(labels map[string]string, id string) string {
	if l := labels[id]; l != "" {
		return l
	}
	return id
}
