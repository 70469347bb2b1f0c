package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data", dataDir}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("gothere %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestCLIRecordsProgressAcrossInvocations(t *testing.T) {
	t.Parallel()
	data := t.TempDir()

	draw := runCLI(t, data, "draw", "partner", "deep")
	if !strings.HasPrefix(draw, "[0] ") || !strings.Contains(draw, "0/20 seen") {
		t.Fatalf("unexpected draw output:\n%s", draw)
	}

	seen := runCLI(t, data, "seen", "partner", "deep", "0")
	if !strings.Contains(seen, "seen 1/20") || !strings.Contains(seen, "First Steps") {
		t.Fatalf("unexpected seen output:\n%s", seen)
	}

	draw = runCLI(t, data, "draw", "partner", "deep")
	if !strings.HasPrefix(draw, "[1] ") {
		t.Fatalf("next draw must skip the seen card:\n%s", draw)
	}

	state := runCLI(t, data, "state", "show")
	if !strings.Contains(state, "total=1") || !strings.Contains(state, "swipes=1") {
		t.Fatalf("unexpected state output:\n%s", state)
	}
	if _, err := os.Stat(filepath.Join(data, ".gothere", "state", "go-there-app.json")); err != nil {
		t.Fatalf("progress must be written under the data dir: %v", err)
	}
}

func TestCLISavedQuestionsAndExport(t *testing.T) {
	t.Parallel()
	data := t.TempDir()
	runCLI(t, data, "save", "friend", "funny", "What", "is", "your", "worst", "joke?")

	list := runCLI(t, data, "saved", "--query", "WORST")
	if !strings.Contains(list, "friend/funny  What is your worst joke?") {
		t.Fatalf("unexpected saved output:\n%s", list)
	}

	target := filepath.Join(t.TempDir(), "saved.md")
	export := runCLI(t, data, "saved", "export", target)
	if !strings.Contains(export, "exported 1 questions") {
		t.Fatalf("unexpected export output:\n%s", export)
	}
	note, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(note), "What is your worst joke?") {
		t.Fatalf("note is missing the saved question:\n%s", note)
	}
}

func TestCLIRejectsUnknownCombination(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--data", t.TempDir(), "draw", "group", "flirty"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error for a combination the catalog does not offer")
	}
}
