package usecase

import (
	"context"
	"strings"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
)

// profileBuilder turns extracted résumé text into a CandidateProfile.
// Shared by the synchronous pipeline and the worker.
type profileBuilder struct {
	fields   *FieldExtractor
	keywords *KeywordExtractor
	topN     int
}

func (b profileBuilder) build(ctx context.Context, text string) domain.CandidateProfile {
	if strings.TrimSpace(text) == "" {
		return domain.EmptyProfile()
	}

	profile := domain.CandidateProfile{
		Name:    domain.UnknownName,
		Email:   domain.NotAvailable,
		Contact: domain.NotAvailable,
		Skills:  []string{},
	}
	if b.fields != nil {
		profile.Name = b.fields.ExtractName(ctx, text)
		profile.Email = b.fields.ExtractEmail(text)
		profile.Contact = b.fields.ExtractContact(text)
	}
	if b.keywords != nil {
		profile.Skills = b.keywords.ResumeSkills(ctx, text, b.topN)
	}
	return profile
}

type noopRecorder struct{}

func (noopRecorder) ResumeAnalyzed(int)        {}
func (noopRecorder) ExtractionDegraded(string) {}
func (noopRecorder) JDKeywordsReturned(int)    {}

func recorderOrNoop(r ports.AnalysisRecorder) ports.AnalysisRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
