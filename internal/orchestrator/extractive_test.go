package orchestrator

import "testing"

func TestExtractiveAnswerPicksBestOverlap(t *testing.T) {
	lines := []string{
		"[1] User likes to drink Black Coffee.",
		"[2] User's favorite color is blue.",
	}

	got := extractiveAnswer("What coffee do I like?", lines)
	want := "User likes to drink Black Coffee."
	if got != want {
		t.Fatalf("extractiveAnswer() = %q, want %q", got, want)
	}
}

func TestExtractiveAnswerFallsBackWhenNothingScores(t *testing.T) {
	lines := []string{"[1] Photosynthesis converts sunlight into energy."}

	got := extractiveAnswer("what time does my flight depart", lines)
	if got != FallbackAnswer {
		t.Fatalf("extractiveAnswer() = %q, want fallback", got)
	}
}

func TestExtractiveAnswerHonorsPersonalIntent(t *testing.T) {
	lines := []string{"[1] John Smith"}

	got := extractiveAnswer("what is my name", lines)
	want := "John Smith"
	if got != want {
		t.Fatalf("extractiveAnswer() = %q, want %q", got, want)
	}
}

func TestNormalizeProviderAliases(t *testing.T) {
	cases := map[string]string{
		"google":            ProviderGemini,
		"Gemini":            ProviderGemini,
		"chatgpt":           ProviderOpenAICompatible,
		"claude":            ProviderOpenAICompatible,
		"anthropic":         ProviderOpenAICompatible,
		"openai-compatible": ProviderOpenAICompatible,
		"openai":            ProviderOpenAICompatible,
		"":                  ProviderOpenAICompatible,
		"unknown-vendor":    ProviderOpenAICompatible,
	}

	for alias, want := range cases {
		if got := NormalizeProvider(alias); got != want {
			t.Errorf("NormalizeProvider(%q) = %q, want %q", alias, got, want)
		}
	}
}
