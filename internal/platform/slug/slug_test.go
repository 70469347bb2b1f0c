package slug_test

import (
	"testing"

	"gothere/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"go-there-app":            "go-there-app",
		"gothere saved questions": "gothere-saved-questions",
		"  Deep & Funny!! ":       "deep-funny",
		"💕":                       "untitled",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("Make(%q): expected %q, got %q", in, want, got)
		}
	}
}
