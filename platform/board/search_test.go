package board

import "testing"

func TestBestMatch(t *testing.T) {
	terms := []string{"Old Kent Road", "Whitechapel Road", "Kings Cross Station"}

	cases := []struct {
		query string
		want  int
		ok    bool
	}{
		{"old kent road", 0, true},
		{"whitechapel", 1, true},
		{"kings cross", 2, true},
		{"kngs cross", 2, true}, // dropped letter
		{"zzzz", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}

	for _, c := range cases {
		got, ok := BestMatch(c.query, terms)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("BestMatch(%q) = %d, %v, want %d, %v", c.query, got, ok, c.want, c.ok)
		}
	}
}

func TestBestMatchFirstWinsTies(t *testing.T) {
	terms := []string{"Station A", "Station A"}
	got, ok := BestMatch("station a", terms)
	if !ok || got != 0 {
		t.Fatalf("BestMatch tie = %d, %v, want first entry", got, ok)
	}
}

func TestBestMatchPrefersCloserTerm(t *testing.T) {
	terms := []string{"Old Kent Road Extension", "Old Kent Road"}
	got, ok := BestMatch("old kent road", terms)
	if !ok || got != 1 {
		t.Fatalf("BestMatch = %d, %v, want the exact term", got, ok)
	}
}
