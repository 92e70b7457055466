package sets

import (
	"slices"
	"testing"
)

func TestSetAddReportsNewMembers(t *testing.T) {
	s := New[string]()
	if !s.Add("a") {
		t.Fatal("expected first add to report true")
	}
	if s.Add("a") {
		t.Fatal("expected duplicate add to report false")
	}
	if !s.Has("a") || s.Len() != 1 {
		t.Fatalf("unexpected set state: %v", s)
	}
}

func TestSortedAndEqual(t *testing.T) {
	a := New("word-counter", "about", "blog")
	b := New("blog", "about", "word-counter")

	if !a.Equal(b) {
		t.Fatal("expected sets with same members to be equal")
	}
	if got := Sorted(a); !slices.Equal(got, []string{"about", "blog", "word-counter"}) {
		t.Fatalf("unexpected sort order: %v", got)
	}
	b.Add("extra")
	if a.Equal(b) {
		t.Fatal("expected sets with different sizes to differ")
	}
}
