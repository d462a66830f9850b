package core

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExchangeSummary(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "what is Go", "what is Go"},
		{"first line only", "first line\nsecond line", "first line"},
		{"trims whitespace", "  padded  \nrest", "padded"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		got := Exchange{Input: tc.input}.Summary()
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}

	long := Exchange{Input: strings.Repeat("x", 200)}.Summary()
	if len(long) != summaryLimit {
		t.Fatalf("long input must be truncated to %d, got %d", summaryLimit, len(long))
	}
	if !strings.HasSuffix(long, "...") {
		t.Fatal("truncated summary must end with ellipsis")
	}

	wide := Exchange{Input: strings.Repeat("ä", 100)}.Summary()
	if !utf8.ValidString(wide) {
		t.Fatalf("truncation must not split a rune: %q", wide)
	}
	if !strings.HasSuffix(wide, "...") {
		t.Fatal("truncated multi-byte summary must end with ellipsis")
	}
	if len(wide) > summaryLimit {
		t.Fatalf("multi-byte summary exceeds the limit: %d", len(wide))
	}
}
