package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

type recognizerFake struct {
	entities []domain.Entity
	err      error
	calls    int
}

func (f *recognizerFake) Entities(context.Context, string) ([]domain.Entity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entities, nil
}

func TestExtractNamePrefersFirstPersonEntity(t *testing.T) {
	fields := NewFieldExtractor(&recognizerFake{entities: []domain.Entity{
		{Text: "Acme Corp", Label: "ORGANIZATION"},
		{Text: "Jane Doe", Label: domain.EntityPerson},
		{Text: "John Roe", Label: domain.EntityPerson},
	}})

	if got := fields.ExtractName(context.Background(), "Jane Doe works at Acme Corp"); got != "Jane Doe" {
		t.Fatalf("expected Jane Doe, got %q", got)
	}
}

func TestExtractNameFallsBackToCapitalizedPair(t *testing.T) {
	fields := NewFieldExtractor(&recognizerFake{})
	if got := fields.ExtractName(context.Background(), "resume of Maria Lopez, engineer"); got != "Maria Lopez" {
		t.Fatalf("expected Maria Lopez, got %q", got)
	}
}

func TestExtractNameRecognizerErrorFallsBack(t *testing.T) {
	fields := NewFieldExtractor(&recognizerFake{err: errors.New("model crashed")})
	if got := fields.ExtractName(context.Background(), "Maria Lopez"); got != "Maria Lopez" {
		t.Fatalf("expected regex fallback, got %q", got)
	}
	if got := fields.ExtractName(context.Background(), "nothing capitalized here"); got != domain.UnknownName {
		t.Fatalf("expected Unknown, got %q", got)
	}
}

func TestExtractNameEmptyTextIsUnknown(t *testing.T) {
	rec := &recognizerFake{}
	fields := NewFieldExtractor(rec)
	if got := fields.ExtractName(context.Background(), ""); got != domain.UnknownName {
		t.Fatalf("expected Unknown, got %q", got)
	}
	if rec.calls != 0 {
		t.Fatalf("expected recognizer to be skipped for empty text")
	}
}

func TestExtractEmail(t *testing.T) {
	fields := NewFieldExtractor(nil)
	if got := fields.ExtractEmail("no email here"); got != domain.NotAvailable {
		t.Fatalf("expected N/A, got %q", got)
	}
	if got := fields.ExtractEmail("Contact: jane@example.com, Phone: 555-123-4567"); got != "jane@example.com" {
		t.Fatalf("expected jane@example.com, got %q", got)
	}
}

func TestExtractContact(t *testing.T) {
	fields := NewFieldExtractor(nil)
	cases := map[string]string{
		"no phone":                   domain.NotAvailable,
		"Phone: 555-123-4567":        "555-123-4567",
		"call +1 555 123 4567 today": "+1 555 123 4567",
		"tel (555) 123-4567":         "(555) 123-4567",
		"office 555.1234.5678":       "555.1234.5678",
		"zip 12345 only":             domain.NotAvailable,
	}
	for in, want := range cases {
		if got := fields.ExtractContact(in); got != want {
			t.Fatalf("ExtractContact(%q) = %q, want %q", in, got, want)
		}
	}
}
