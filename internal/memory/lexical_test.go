package memory

import "testing"

func TestTokenizeDropsStopwordsAndShortTokens(t *testing.T) {
	got := tokenize("What coffee do I like to drink?")
	want := []string{"coffee", "like", "drink"}

	if len(got) != len(want) {
		t.Fatalf("tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokenize() = %v, want %v", got, want)
		}
	}
}

func TestStemStripsCommonSuffixes(t *testing.T) {
	cases := map[string]string{
		"cats":        "cat",
		"boxes":       "box",
		"puppies":     "puppy",
		"walked":      "walk",
		"walking":     "walk",
		"preferences": "prefer",
		"preference":  "prefer",
	}
	for in, want := range cases {
		if got := stem(in); got != want {
			t.Errorf("stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPhraseMatch(t *testing.T) {
	if !phraseMatch("black coffee", "User likes to drink Black Coffee.", "", "") {
		t.Fatalf("phraseMatch() = false, want true")
	}
	if phraseMatch("green tea", "User likes to drink Black Coffee.", "", "") {
		t.Fatalf("phraseMatch() = true, want false")
	}
}

func TestKeywordHits(t *testing.T) {
	queryTokens := tokenize("what coffee do i like")
	hits := keywordHits(queryTokens, "User likes to drink Black Coffee.", "", "")
	if hits == 0 {
		t.Fatalf("keywordHits() = 0, want > 0")
	}
}

func TestExpressesPersonalIntent(t *testing.T) {
	cases := map[string]bool{
		"what is my name":       true,
		"what's my phone":       true,
		"contact info please":   true,
		"my email address":      true,
		"what coffee do i like": false,
	}
	for q, want := range cases {
		if got := expressesPersonalIntent(q); got != want {
			t.Errorf("expressesPersonalIntent(%q) = %v, want %v", q, got, want)
		}
	}
}

func TestMatchesPersonalIntentShape(t *testing.T) {
	if !matchesPersonalIntentShape("John Smith") {
		t.Errorf("expected name shape to match")
	}
	if !matchesPersonalIntentShape("555-123-4567") {
		t.Errorf("expected phone shape to match")
	}
	if !matchesPersonalIntentShape("john.smith@example.com") {
		t.Errorf("expected email shape to match")
	}
	if matchesPersonalIntentShape("the weather is nice today") {
		t.Errorf("expected unrelated sentence not to match")
	}
}
