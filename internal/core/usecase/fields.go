package usecase

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
)

// Phone numbers: optional country code, then 3/3-4/4 digit groups (10 or 11 digits).
var (
	fullNamePattern = regexp.MustCompile(`[A-Z][a-z]+\s[A-Z][a-z]+`)
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9+_.-]+@[a-zA-Z0-9.-]+`)
	phonePattern    = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3,4}[-.\s]?\d{4}`)
)

// FieldExtractor derives contact fields from raw résumé text. Every method is
// total: failures are logged and resolve to the field's sentinel.
type FieldExtractor struct {
	recognizer ports.EntityRecognizer
}

func NewFieldExtractor(recognizer ports.EntityRecognizer) *FieldExtractor {
	return &FieldExtractor{recognizer: recognizer}
}

// ExtractName returns the first PERSON entity, falling back to the first
// "Firstname Lastname" pair. The first-entity pick is a heuristic with no
// disambiguation.
func (f *FieldExtractor) ExtractName(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return domain.UnknownName
	}

	if f.recognizer != nil {
		entities, err := f.recognizer.Entities(ctx, text)
		if err != nil {
			slog.Warn("extraction_degraded", "stage", "name_entities", "error", err)
		}
		for _, ent := range entities {
			if ent.Label == domain.EntityPerson && strings.TrimSpace(ent.Text) != "" {
				return strings.TrimSpace(ent.Text)
			}
		}
	}

	if match := fullNamePattern.FindString(text); match != "" {
		return match
	}
	return domain.UnknownName
}

func (f *FieldExtractor) ExtractEmail(text string) string {
	if match := emailPattern.FindString(text); match != "" {
		return match
	}
	return domain.NotAvailable
}

func (f *FieldExtractor) ExtractContact(text string) string {
	if match := phonePattern.FindString(text); match != "" {
		return strings.TrimSpace(match)
	}
	return domain.NotAvailable
}
