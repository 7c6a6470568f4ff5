// Package rake implements Rapid Automatic Keyword Extraction: candidate
// phrases are maximal runs of content words, scored by word degree over
// word frequency.
package rake

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/kirillkom/resume-screener/internal/infrastructure/keywords/stopwords"
)

const Name = "rake"

var (
	wordPunct        = regexp.MustCompile(`\w+|[^\w\s]+`)
	fallbackSentence = regexp.MustCompile(`[^.!?\n]+[.!?]*`)
)

// SentenceSplitter splits text into sentences. A nil splitter, or one that
// fails, falls back to punctuation boundaries.
type SentenceSplitter interface {
	Sentences(ctx context.Context, text string) ([]string, error)
}

type Extractor struct {
	sentences SentenceSplitter
	stopwords stopwords.Set
	maxWords  int
}

type Option func(*Extractor)

// WithMaxPhraseWords drops candidate phrases longer than n words.
func WithMaxPhraseWords(n int) Option {
	return func(e *Extractor) { e.maxWords = n }
}

func New(splitter SentenceSplitter, opts ...Option) *Extractor {
	e := &Extractor{
		sentences: splitter,
		stopwords: stopwords.English(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) Name() string { return Name }

// Keywords returns lower-cased phrases, highest score first. topN <= 0 returns all.
func (e *Extractor) Keywords(ctx context.Context, text string, topN int) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	phrases := e.phrases(e.splitSentences(ctx, text))
	ranked := rank(phrases)
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

func (e *Extractor) splitSentences(ctx context.Context, text string) []string {
	if e.sentences != nil {
		out, err := e.sentences.Sentences(ctx, text)
		if err == nil && len(out) > 0 {
			return out
		}
		if err != nil {
			slog.Warn("rake_sentence_split_fallback", "error", err)
		}
	}
	return fallbackSentence.FindAllString(text, -1)
}

func (e *Extractor) phrases(sentences []string) [][]string {
	out := make([][]string, 0, len(sentences)*2)
	for _, sentence := range sentences {
		var current []string
		flush := func() {
			if len(current) > 0 && (e.maxWords <= 0 || len(current) <= e.maxWords) {
				out = append(out, current)
			}
			current = nil
		}
		for _, token := range wordPunct.FindAllString(strings.ToLower(sentence), -1) {
			if isPunctuation(token) || e.stopwords.Contains(token) {
				flush()
				continue
			}
			current = append(current, token)
		}
		flush()
	}
	return out
}

// rank scores each word by degree/frequency, where degree counts co-occurring
// words (itself included) across all phrases, and orders phrases by the sum.
func rank(phrases [][]string) []string {
	freq := make(map[string]float64)
	degree := make(map[string]float64)
	for _, phrase := range phrases {
		for _, word := range phrase {
			freq[word]++
			degree[word] += float64(len(phrase))
		}
	}

	type scored struct {
		phrase string
		score  float64
		first  int
	}
	seen := make(map[string]int, len(phrases))
	list := make([]scored, 0, len(phrases))
	for i, phrase := range phrases {
		key := strings.Join(phrase, " ")
		if _, ok := seen[key]; ok {
			continue
		}
		var score float64
		for _, word := range phrase {
			score += degree[word] / freq[word]
		}
		seen[key] = len(list)
		list = append(list, scored{phrase: key, score: score, first: i})
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].first < list[j].first
	})

	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.phrase
	}
	return out
}

func isPunctuation(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return false
		}
	}
	return true
}
