package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"gothere/internal/modules/progress/domain"
)

func TestBuildSavedNoteGroupsByRelationship(t *testing.T) {
	t.Parallel()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	saved := []domain.SavedQuestion{
		{Question: "A", RelationshipID: "partner", VibeID: "deep", SavedAt: base.Add(2 * time.Hour)},
		{Question: "B", RelationshipID: "friend", VibeID: "funny", SavedAt: base},
		{Question: "C", RelationshipID: "partner", VibeID: "alien", SavedAt: base},
	}
	note := domain.BuildSavedNote(saved,
		map[string]string{"partner": "Partner", "friend": "Friend"},
		map[string]string{"deep": "Deep", "funny": "Funny"},
		base.Add(24*time.Hour),
	)

	want := []domain.SavedNoteGroup{
		{RelationshipID: "partner", RelationshipLabel: "Partner", Entries: []domain.SavedNoteEntry{
			{Question: "C", VibeID: "alien", VibeLabel: "alien", SavedAt: base},
			{Question: "A", VibeID: "deep", VibeLabel: "Deep", SavedAt: base.Add(2 * time.Hour)},
		}},
		{RelationshipID: "friend", RelationshipLabel: "Friend", Entries: []domain.SavedNoteEntry{
			{Question: "B", VibeID: "funny", VibeLabel: "Funny", SavedAt: base},
		}},
	}
	if note.Count != 3 {
		t.Fatalf("expected count 3, got %d", note.Count)
	}
	if diff := cmp.Diff(want, note.Groups); diff != "" {
		t.Fatalf("unexpected groups (-want +got):\n%s", diff)
	}
}
