package usecase

import (
	"context"
	"reflect"
	"testing"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

type vocabularyFake map[string]struct{}

func (v vocabularyFake) Contains(keyword string) bool {
	_, ok := v[keyword]
	return ok
}

func (v vocabularyFake) Size() int { return len(v) }

func newVocabulary(words ...string) vocabularyFake {
	v := vocabularyFake{}
	for _, w := range words {
		v[w] = struct{}{}
	}
	return v
}

func TestExtractKeywordsFiltersByVocabulary(t *testing.T) {
	kw := NewKeywordExtractor(
		&strategyFake{name: "rake", keywords: []string{"Leadership", "java"}},
		&strategyFake{name: "keybert", keywords: []string{"python"}},
		nil,
		KeywordExtractorOptions{},
	)
	recorder := &recorderFake{}
	svc := NewJDKeywordService(kw, newVocabulary("python", "sql"), 10, recorder)

	got, err := svc.ExtractKeywords(context.Background(), "We need python, java and leadership.")
	if err != nil {
		t.Fatalf("ExtractKeywords() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"python"}) {
		t.Fatalf("expected [python], got %v", got)
	}
	if !reflect.DeepEqual(recorder.jdCounts, []int{1}) {
		t.Fatalf("expected recorded count 1, got %v", recorder.jdCounts)
	}
}

func TestExtractKeywordsIsSubsetOfVocabulary(t *testing.T) {
	vocab := newVocabulary("go", "kubernetes", "sql")
	kw := NewKeywordExtractor(
		&strategyFake{name: "rake", keywords: []string{"kubernetes", "cloud native", "sql"}},
		&strategyFake{name: "keybert", keywords: []string{"go", "teamwork"}},
		nil,
		KeywordExtractorOptions{},
	)
	svc := NewJDKeywordService(kw, vocab, 10, nil)

	got, err := svc.ExtractKeywords(context.Background(), "jd")
	if err != nil {
		t.Fatalf("ExtractKeywords() error = %v", err)
	}
	for _, keyword := range got {
		if !vocab.Contains(keyword) {
			t.Fatalf("keyword %q outside vocabulary", keyword)
		}
	}
	if !reflect.DeepEqual(got, []string{"go", "kubernetes", "sql"}) {
		t.Fatalf("expected sorted filtered set, got %v", got)
	}
}

func TestExtractKeywordsRejectsBlankInput(t *testing.T) {
	svc := NewJDKeywordService(NewKeywordExtractor(nil, nil, nil, KeywordExtractorOptions{}), newVocabulary(), 10, nil)
	for _, jd := range []string{"", "   \n\t"} {
		if _, err := svc.ExtractKeywords(context.Background(), jd); !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %q, got %v", jd, err)
		}
	}
}

func TestExtractKeywordsEmptyResultIsNotNil(t *testing.T) {
	kw := NewKeywordExtractor(&strategyFake{name: "rake", keywords: []string{"teamwork"}}, nil, nil, KeywordExtractorOptions{})
	svc := NewJDKeywordService(kw, newVocabulary("python"), 10, nil)

	got, err := svc.ExtractKeywords(context.Background(), "teamwork matters")
	if err != nil {
		t.Fatalf("ExtractKeywords() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
