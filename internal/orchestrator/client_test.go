package orchestrator

import (
	"context"
	"testing"
)

func TestGenerateExtractiveModeNeverCallsRemote(t *testing.T) {
	c := New(Config{Extractive: true, Grounding: GroundingExcerpt})

	req := Request{
		Topic:         "What coffee do I like?",
		SystemContext: []string{"[1] User likes to drink Black Coffee."},
	}

	got, err := c.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := "User likes to drink Black Coffee."
	if got != want {
		t.Fatalf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateFallsBackWhenNoProviderConfigured(t *testing.T) {
	c := New(Config{Extractive: false, Grounding: GroundingExcerpt})

	req := Request{
		Topic:         "What coffee do I like?",
		SystemContext: []string{"[1] User likes to drink Black Coffee."},
	}

	got, err := c.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := "User likes to drink Black Coffee."
	if got != want {
		t.Fatalf("Generate() = %q, want extractive fallback %q", got, want)
	}
}

func TestIsGroundedExcerptMode(t *testing.T) {
	c := New(Config{Grounding: GroundingExcerpt})
	lines := []string{"[1]   User   likes coffee.  "}

	if !c.isGrounded("User likes coffee.", lines) {
		t.Fatalf("isGrounded() = false, want true for whitespace-normalized substring")
	}
	if c.isGrounded("User likes tea.", lines) {
		t.Fatalf("isGrounded() = true, want false for unrelated text")
	}
}

func TestIsGroundedExactMode(t *testing.T) {
	c := New(Config{Grounding: GroundingExact})
	lines := []string{"User likes coffee."}

	if !c.isGrounded("User   likes coffee.", lines) {
		t.Fatalf("isGrounded() = false, want true for whitespace-normalized exact match")
	}
	if c.isGrounded("User likes coffee. Extra.", lines) {
		t.Fatalf("isGrounded() = true, want false: exact mode rejects substrings")
	}
}

func TestGeminiEndpointComposition(t *testing.T) {
	c := New(Config{Provider: "gemini", Model: "gemini-1.5-flash", Profile: "myprofile"})

	got := c.geminiEndpoint()
	want := "https://generativelanguage.googleapis.com/v1beta/myprofile/models/gemini-1.5-flash:generateContent"
	if got != want {
		t.Fatalf("geminiEndpoint() = %q, want %q", got, want)
	}
}

func TestGeminiEndpointWithPreComposedBaseURL(t *testing.T) {
	c := New(Config{Provider: "gemini", Model: "gemini-1.5-flash", BaseURL: "https://proxy.example.com/v1beta/profiles/abc"})

	got := c.geminiEndpoint()
	want := "https://proxy.example.com/v1beta/profiles/abc/models/gemini-1.5-flash:generateContent"
	if got != want {
		t.Fatalf("geminiEndpoint() = %q, want %q", got, want)
	}
}
