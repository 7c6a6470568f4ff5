package prose

import (
	"context"
	"testing"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

func TestTokensSplitsWords(t *testing.T) {
	a := NewAnalyzer(NewRegistry())
	tokens, err := a.Tokens(context.Background(), "I build APIs in Go and Python.")
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}
	seen := map[string]bool{}
	for _, tok := range tokens {
		seen[tok] = true
	}
	for _, want := range []string{"build", "APIs", "Python"} {
		if !seen[want] {
			t.Fatalf("expected token %q in %v", want, tokens)
		}
	}
}

func TestSentencesSplitsText(t *testing.T) {
	a := NewAnalyzer(NewRegistry())
	sentences, err := a.Sentences(context.Background(), "Built data pipelines. Led a team of five.")
	if err != nil {
		t.Fatalf("Sentences() error = %v", err)
	}
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %q", sentences)
	}
}

func TestEmptyTextShortCircuits(t *testing.T) {
	a := NewAnalyzer(NewRegistry())
	entities, err := a.Entities(context.Background(), "   ")
	if err != nil || entities != nil {
		t.Fatalf("expected nil result, got %v, %v", entities, err)
	}
}

func TestEntitiesUsesSharedModel(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	first, _ := registry.Model()

	a := NewAnalyzer(registry)
	if _, err := a.Entities(context.Background(), "Jane Doe joined Google in 2019."); err != nil {
		t.Fatalf("Entities() error = %v", err)
	}
	second, _ := registry.Model()
	if first != second {
		t.Fatalf("expected the model to be built once")
	}
}

func TestClosedRegistryIsConfigError(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Close()
	_, err := NewAnalyzer(registry).Tokens(context.Background(), "text")
	if !domain.IsKind(err, domain.ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}
