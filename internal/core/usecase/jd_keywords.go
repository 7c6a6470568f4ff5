package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
)

// JDKeywordService extracts keywords from a job description and keeps only
// those present in the controlled vocabulary.
type JDKeywordService struct {
	keywords   *KeywordExtractor
	vocabulary ports.Vocabulary
	topN       int
	recorder   ports.AnalysisRecorder
}

func NewJDKeywordService(
	keywords *KeywordExtractor,
	vocabulary ports.Vocabulary,
	topN int,
	recorder ports.AnalysisRecorder,
) *JDKeywordService {
	return &JDKeywordService{
		keywords:   keywords,
		vocabulary: vocabulary,
		topN:       topN,
		recorder:   recorderOrNoop(recorder),
	}
}

// ExtractKeywords returns the sorted vocabulary-filtered keyword set.
func (s *JDKeywordService) ExtractKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract jd keywords", errors.New("job description is empty"))
	}
	if s.vocabulary == nil {
		return nil, domain.WrapError(domain.ErrConfig, "extract jd keywords", errors.New("vocabulary is not loaded"))
	}

	candidates := s.keywords.Combine(ctx, jobDescription, s.topN)
	filtered := make([]string, 0, len(candidates))
	for _, keyword := range candidates {
		if s.vocabulary.Contains(keyword) {
			filtered = append(filtered, keyword)
		}
	}
	s.recorder.JDKeywordsReturned(len(filtered))
	return filtered, nil
}
