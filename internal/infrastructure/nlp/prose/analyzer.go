package prose

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

// Analyzer exposes entity recognition, tokenization and sentence splitting
// over the registry's shared model.
type Analyzer struct {
	registry *Registry
}

func NewAnalyzer(registry *Registry) *Analyzer {
	return &Analyzer{registry: registry}
}

func (a *Analyzer) Entities(ctx context.Context, text string) ([]domain.Entity, error) {
	doc, err := a.document(ctx, text, prose.WithSegmentation(false))
	if err != nil || doc == nil {
		return nil, err
	}
	raw := doc.Entities()
	out := make([]domain.Entity, 0, len(raw))
	for _, ent := range raw {
		out = append(out, domain.Entity{Text: ent.Text, Label: ent.Label})
	}
	return out, nil
}

func (a *Analyzer) Tokens(ctx context.Context, text string) ([]string, error) {
	doc, err := a.document(ctx, text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil || doc == nil {
		return nil, err
	}
	raw := doc.Tokens()
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		out = append(out, tok.Text)
	}
	return out, nil
}

func (a *Analyzer) Sentences(ctx context.Context, text string) ([]string, error) {
	doc, err := a.document(ctx, text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil || doc == nil {
		return nil, err
	}
	raw := doc.Sentences()
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

func (a *Analyzer) document(ctx context.Context, text string, opts ...prose.DocOpt) (doc *prose.Document, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	model, err := a.registry.Model()
	if err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = domain.WrapError(domain.ErrExtraction, "nlp document", fmt.Errorf("panic: %v", rec))
		}
	}()

	doc, err = prose.NewDocument(text, append(opts, prose.UsingModel(model))...)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExtraction, "nlp document", err)
	}
	return doc, nil
}
