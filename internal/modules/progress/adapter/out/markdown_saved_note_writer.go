package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gothere/internal/modules/progress/domain"
	progressout "gothere/internal/modules/progress/port/out"
	"gothere/internal/platform/markdown"
	"gothere/internal/platform/slug"
)

const defaultNoteName = "gothere saved questions"

var savedBlock = markdown.NewBlock("gothere:saved")

// MarkdownSavedNoteWriter renders saved questions into a markdown note.
// Re-exporting only rewrites the managed block and the gothere_* frontmatter
// keys, so edits made around them survive.
type MarkdownSavedNoteWriter struct{}

func NewMarkdownSavedNoteWriter() progressout.SavedNoteWriter {
	return MarkdownSavedNoteWriter{}
}

// WriteSavedNote writes to path, or to a default file name inside path
// when it is a directory. It returns the file written.
func (MarkdownSavedNoteWriter) WriteSavedNote(_ context.Context, path string, note domain.SavedNote) (string, error) {
	target := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		target = filepath.Join(path, slug.Make(defaultNoteName)+".md")
	}

	meta := map[string]any{}
	body := "# Saved questions\n"
	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		meta, body, err = markdown.SplitFrontmatter(string(existing))
		if err != nil {
			return "", fmt.Errorf("read existing note %s: %w", target, err)
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read existing note %s: %w", target, err)
	}

	meta["gothere_saved_count"] = note.Count
	meta["gothere_exported_at"] = note.GeneratedAt.Format(time.RFC3339)
	content, err := markdown.RenderFrontmatter(meta, savedBlock.Replace(body, renderSavedNote(note)))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create note dir: %w", err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write note %s: %w", target, err)
	}
	return target, nil
}

func renderSavedNote(note domain.SavedNote) string {
	if note.Count == 0 {
		return "_Nothing saved yet._"
	}
	var b strings.Builder
	for gi, group := range note.Groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", group.RelationshipLabel)
		for _, entry := range group.Entries {
			fmt.Fprintf(&b, "- %s _(%s, %s)_\n", entry.Question, entry.VibeLabel, entry.SavedAt.Format("2006-01-02"))
		}
	}
	return b.String()
}
