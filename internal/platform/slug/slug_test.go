package slug

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Box Breathing":            "box-breathing",
		"  CBT -- session #2  ":    "cbt-session-2",
		"Méditation guidée":        "méditation-guidée",
		"!!!":                      "untitled",
		"":                         "untitled",
		"Progressive Muscle (PMR)": "progressive-muscle-pmr",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeBoundsLength(t *testing.T) {
	t.Parallel()
	got := Make(strings.Repeat("é", 100))
	if len(got) > MaxLen || !utf8.ValidString(got) {
		t.Fatalf("unexpected slug %q (%d bytes)", got, len(got))
	}
	got = Make(strings.Repeat("ab ", 40))
	if len(got) > MaxLen || strings.HasSuffix(got, "-") {
		t.Fatalf("unexpected slug %q", got)
	}
}
