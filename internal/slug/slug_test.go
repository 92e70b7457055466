package slug

import (
	"regexp"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Grant Writing: Securing Funding for Projects", "grant-writing-securing-funding-for-projects"},
		{"Word Counter vs. Character Counter", "word-counter-vs-character-counter"},
		{"  --Leading and trailing--  ", "leading-and-trailing"},
		{"How to Write 500 Words in 1 Hour?", "how-to-write-500-words-in-1-hour"},
		{"Café Résumé", "caf-r-sum"},
		{"already-a-slug", "already-a-slug"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Make(tt.title); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

var slugShape = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)

func TestMakeProperties(t *testing.T) {
	titles := []string{
		"Hello, World!",
		"UPPER lower 123",
		"tabs\tand\nnewlines",
		"emoji 🚀 launch",
		"__under_scores__",
		"multiple   spaces---and---dashes",
		"Ünïcödé Ťïtłé",
		"a",
		"-",
	}
	for _, title := range titles {
		s := Make(title)
		if !slugShape.MatchString(s) {
			t.Errorf("Make(%q) = %q contains characters outside [a-z0-9-] or edge hyphens", title, s)
		}
		if again := Make(s); again != s {
			t.Errorf("Make is not idempotent for %q: %q then %q", title, s, again)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("my-post") {
		t.Error("expected my-post to be valid")
	}
	for _, s := range []string{"", "My-Post", "-post", "post-", "a--b"} {
		if Valid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
