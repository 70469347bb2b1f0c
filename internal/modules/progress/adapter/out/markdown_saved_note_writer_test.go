package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	progressoutadapter "gothere/internal/modules/progress/adapter/out"
	"gothere/internal/modules/progress/domain"
	"gothere/internal/platform/markdown"
)

func sampleNote(count int) domain.SavedNote {
	at := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	saved := []domain.SavedQuestion{
		{Question: "What made you laugh today?", RelationshipID: "kid", VibeID: "funny", SavedAt: at},
		{Question: "What are you proud of?", RelationshipID: "partner", VibeID: "deep", SavedAt: at},
	}
	return domain.BuildSavedNote(saved[:count],
		map[string]string{"kid": "Kid", "partner": "Partner"},
		map[string]string{"funny": "Funny", "deep": "Deep"},
		at,
	)
}

func TestMarkdownWriterCreatesNoteInDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path, err := progressoutadapter.NewMarkdownSavedNoteWriter().WriteSavedNote(context.Background(), dir, sampleNote(2))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "gothere-saved-questions.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	meta, body, err := markdown.SplitFrontmatter(string(raw))
	require.NoError(t, err)
	require.Equal(t, 2, meta["gothere_saved_count"])
	require.Equal(t, "2025-03-10T08:30:00Z", meta["gothere_exported_at"])
	require.Contains(t, body, "# Saved questions")
	require.Contains(t, body, "## Kid\n\n- What made you laugh today? _(Funny, 2025-03-10)_")
	require.Contains(t, body, "## Partner\n\n- What are you proud of? _(Deep, 2025-03-10)_")
}

func TestMarkdownWriterKeepsUserEdits(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "notes", "talks.md")
	writer := progressoutadapter.NewMarkdownSavedNoteWriter()
	_, err := writer.WriteSavedNote(context.Background(), path, sampleNote(2))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := strings.Replace(string(raw), "---\n", "---\nowner: sam\n", 1)
	edited = strings.Replace(edited, "# Saved questions\n", "# Saved questions\n\nAsk these on the drive home.\n", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	_, err = writer.WriteSavedNote(context.Background(), path, sampleNote(1))
	require.NoError(t, err)
	raw, err = os.ReadFile(path)
	require.NoError(t, err)

	meta, body, err := markdown.SplitFrontmatter(string(raw))
	require.NoError(t, err)
	require.Equal(t, "sam", meta["owner"])
	require.Equal(t, 1, meta["gothere_saved_count"])
	require.Contains(t, body, "Ask these on the drive home.")
	require.NotContains(t, body, "What are you proud of?")
	require.Equal(t, 1, strings.Count(body, "<!-- gothere:saved:start -->"))
}

func TestMarkdownWriterEmptyNote(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.md")
	_, err := progressoutadapter.NewMarkdownSavedNoteWriter().WriteSavedNote(context.Background(), path, sampleNote(0))
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "_Nothing saved yet._")
}
