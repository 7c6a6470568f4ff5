// Package keybert ranks n-gram candidates by the cosine similarity of their
// embeddings to the embedding of the whole document.
package keybert

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/kirillkom/resume-screener/internal/core/ports"
	"github.com/kirillkom/resume-screener/internal/infrastructure/keywords/stopwords"
)

const (
	Name        = "keybert"
	defaultTopN = 5
)

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

type Extractor struct {
	embedder  ports.Embedder
	chunker   ports.Chunker
	stopwords stopwords.Set
	minNGram  int
	maxNGram  int
}

type Option func(*Extractor)

func WithNGramRange(minN, maxN int) Option {
	return func(e *Extractor) {
		if minN >= 1 && maxN >= minN {
			e.minNGram, e.maxNGram = minN, maxN
		}
	}
}

// New builds the extractor. chunker may be nil, in which case the document
// is embedded in one piece.
func New(embedder ports.Embedder, chunker ports.Chunker, opts ...Option) *Extractor {
	e := &Extractor{
		embedder:  embedder,
		chunker:   chunker,
		stopwords: stopwords.English(),
		minNGram:  1,
		maxNGram:  2,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) Name() string { return Name }

func (e *Extractor) Keywords(ctx context.Context, text string, topN int) ([]string, error) {
	if topN <= 0 {
		topN = defaultTopN
	}
	candidates := e.candidates(text)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	docVector, err := e.documentVector(ctx, text)
	if err != nil {
		return nil, err
	}
	candidateVectors, err := e.embedder.Embed(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("embed candidates: %w", err)
	}
	if len(candidateVectors) != len(candidates) {
		return nil, fmt.Errorf("embed candidates: vectors/candidates mismatch: %d/%d", len(candidateVectors), len(candidates))
	}

	type scored struct {
		keyword string
		score   float64
	}
	list := make([]scored, len(candidates))
	for i, candidate := range candidates {
		list[i] = scored{keyword: candidate, score: cosine(docVector, candidateVectors[i])}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })

	if len(list) > topN {
		list = list[:topN]
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.keyword
	}
	return out, nil
}

// candidates returns the distinct n-grams of lower-cased tokens after
// stopword removal, in first-seen order.
func (e *Extractor) candidates(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if !e.stopwords.Contains(tok) {
			tokens = append(tokens, tok)
		}
	}

	seen := make(map[string]struct{}, len(tokens)*2)
	out := make([]string, 0, len(tokens)*2)
	for n := e.minNGram; n <= e.maxNGram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+n], " ")
			if _, ok := seen[gram]; ok {
				continue
			}
			seen[gram] = struct{}{}
			out = append(out, gram)
		}
	}
	return out
}

// documentVector averages chunk embeddings so long résumés stay within the
// embedding model context.
func (e *Extractor) documentVector(ctx context.Context, text string) ([]float32, error) {
	chunks := []string{strings.TrimSpace(text)}
	if e.chunker != nil {
		if split := e.chunker.Split(text); len(split) > 0 {
			chunks = split
		}
	}

	vectors, err := e.embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed document: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, errors.New("embed document: empty embedding")
	}

	dim := len(vectors[0])
	mean := make([]float32, dim)
	for _, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("embed document: dimension mismatch %d/%d", len(vec), dim)
		}
		for i, v := range vec {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float32(len(vectors))
	}
	return mean, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
