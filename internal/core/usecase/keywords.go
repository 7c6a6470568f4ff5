package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kirillkom/resume-screener/internal/core/ports"
)

const noisyTokenMinLen = 3

// KeywordExtractor unions a statistical (RAKE-style) and an embedding
// (KeyBERT-style) strategy. Résumé skill extraction also unions the noisy
// token pass, which adds every alphabetic token longer than two letters and
// is the main source of false-positive skill matches.
type KeywordExtractor struct {
	statistical ports.KeywordStrategy
	embedding   ports.KeywordStrategy
	tokenizer   ports.Tokenizer
	noisyTokens bool
	recorder    ports.AnalysisRecorder
}

type KeywordExtractorOptions struct {
	// NoisyTokens enables the token pass for résumé skills.
	NoisyTokens bool
	Recorder    ports.AnalysisRecorder
}

func NewKeywordExtractor(
	statistical ports.KeywordStrategy,
	embedding ports.KeywordStrategy,
	tokenizer ports.Tokenizer,
	opts KeywordExtractorOptions,
) *KeywordExtractor {
	return &KeywordExtractor{
		statistical: statistical,
		embedding:   embedding,
		tokenizer:   tokenizer,
		noisyTokens: opts.NoisyTokens,
		recorder:    recorderOrNoop(opts.Recorder),
	}
}

// Combine returns the union of all statistical phrases and the top N
// embedding keywords. A failing strategy contributes nothing.
func (k *KeywordExtractor) Combine(ctx context.Context, text string, topN int) []string {
	set := make(map[string]struct{}, 64)
	k.collect(ctx, set, k.statistical, text, 0)
	k.collect(ctx, set, k.embedding, text, topN)
	return sortedKeys(set)
}

// ResumeSkills is Combine plus, when enabled, the noisy token pass.
func (k *KeywordExtractor) ResumeSkills(ctx context.Context, text string, topN int) []string {
	set := make(map[string]struct{}, 128)
	k.collect(ctx, set, k.statistical, text, 0)
	k.collect(ctx, set, k.embedding, text, topN)
	if k.noisyTokens {
		for _, token := range k.NoisyTokens(ctx, text) {
			set[token] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// NoisyTokens lower-cases every purely alphabetic token of length > 2.
func (k *KeywordExtractor) NoisyTokens(ctx context.Context, text string) []string {
	if k.tokenizer == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	tokens, err := k.tokenizer.Tokens(ctx, text)
	if err != nil {
		slog.Warn("extraction_degraded", "stage", "noisy_tokens", "error", err)
		k.recorder.ExtractionDegraded("noisy_tokens")
		return nil
	}

	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if utf8.RuneCountInString(token) < noisyTokenMinLen || !isAlpha(token) {
			continue
		}
		out = append(out, strings.ToLower(token))
	}
	return out
}

func (k *KeywordExtractor) collect(
	ctx context.Context,
	set map[string]struct{},
	strategy ports.KeywordStrategy,
	text string,
	topN int,
) {
	if strategy == nil || strings.TrimSpace(text) == "" {
		return
	}
	keywords, err := strategy.Keywords(ctx, text, topN)
	if err != nil {
		slog.Warn("extraction_degraded", "stage", strategy.Name(), "error", err)
		k.recorder.ExtractionDegraded(strategy.Name())
		return
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			set[kw] = struct{}{}
		}
	}
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
