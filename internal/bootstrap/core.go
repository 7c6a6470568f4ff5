package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/resume-screener/internal/config"
	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
	"github.com/kirillkom/resume-screener/internal/core/usecase"
	"github.com/kirillkom/resume-screener/internal/infrastructure/chunking"
	"github.com/kirillkom/resume-screener/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/resume-screener/internal/infrastructure/keywords/keybert"
	"github.com/kirillkom/resume-screener/internal/infrastructure/keywords/rake"
	"github.com/kirillkom/resume-screener/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/resume-screener/internal/infrastructure/nlp/prose"
	"github.com/kirillkom/resume-screener/internal/infrastructure/resilience"
	"github.com/kirillkom/resume-screener/internal/infrastructure/storage/tempfs"
	"github.com/kirillkom/resume-screener/internal/infrastructure/vocabulary"
)

type CoreOptions struct {
	Recorder ports.AnalysisRecorder
	// Runs persists analysis batches when set.
	Runs ports.AnalysisRunStore
}

// Core holds the screening components that need no database, queue or blob store.
type Core struct {
	Config config.Config

	Models     *prose.Registry
	Vocabulary *vocabulary.Set
	Stager     ports.TempFileStager
	Extractor  ports.TextExtractor
	Fields     *usecase.FieldExtractor
	Keywords   *usecase.KeywordExtractor

	Analyzer   *usecase.ResumeAnalysisPipeline
	JDKeywords *usecase.JDKeywordService

	embeddings *ollama.Client
}

func NewCore(ctx context.Context, cfg config.Config, opts CoreOptions) (*Core, error) {
	models := prose.NewRegistry()
	if err := models.Init(); err != nil {
		return nil, fmt.Errorf("init nlp model: %w", err)
	}

	vocab, err := vocabulary.Load(cfg.VocabularyPath)
	if err != nil {
		_ = models.Close()
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	stager, err := tempfs.NewStager(cfg.UploadTempDir)
	if err != nil {
		_ = models.Close()
		return nil, fmt.Errorf("init temp stager: %w", err)
	}

	executor := resilience.NewExecutor(resilience.ConfigFor(cfg.ResilienceRetryAttempts, cfg.ResilienceBreakerEnabled))
	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaEmbedModel, ollama.WithExecutor(executor))
	if err := ollamaClient.Ping(ctx); err != nil {
		if domain.IsKind(err, domain.ErrConfig) {
			_ = models.Close()
			return nil, fmt.Errorf("check embedding model: %w", err)
		}
		// Unreachable host: KeyBERT degrades per request and /readyz reports it.
		slog.Warn("embedding_backend_unavailable", "url", cfg.OllamaURL, "model", cfg.OllamaEmbedModel, "error", err)
	}
	embedder := ollama.NewEmbedder(ollamaClient, cfg.EmbedBatchSize)
	chunker := chunking.NewSplitter(cfg.EmbedChunkSize, cfg.EmbedChunkOverlap)

	nlp := prose.NewAnalyzer(models)
	keywords := usecase.NewKeywordExtractor(
		rake.New(nlp),
		keybert.New(embedder, chunker),
		nlp,
		usecase.KeywordExtractorOptions{NoisyTokens: cfg.NoisyTokenPass, Recorder: opts.Recorder},
	)
	fields := usecase.NewFieldExtractor(nlp)
	extractor := pdf.NewExtractor()

	core := &Core{
		Config:     cfg,
		Models:     models,
		Vocabulary: vocab,
		Stager:     stager,
		Extractor:  extractor,
		Fields:     fields,
		Keywords:   keywords,
		Analyzer: usecase.NewResumeAnalysisPipeline(stager, extractor, fields, keywords, usecase.AnalysisPipelineOptions{
			ResumeTopN: cfg.ResumeKeywordTopN,
			Runs:       opts.Runs,
			Recorder:   opts.Recorder,
		}),
		JDKeywords: usecase.NewJDKeywordService(keywords, vocab, cfg.JDKeywordTopN, opts.Recorder),
		embeddings: ollamaClient,
	}

	slog.Info("screening_core_ready",
		"vocabulary_size", vocab.Size(),
		"noisy_tokens", cfg.NoisyTokenPass,
		"persist_analyses", opts.Runs != nil,
	)
	return core, nil
}

// Ready fails when the model registry is closed or the embedding backend
// cannot serve the configured model.
func (c *Core) Ready(ctx context.Context) error {
	if _, err := c.Models.Model(); err != nil {
		return err
	}
	if err := c.embeddings.Ping(ctx); err != nil {
		return fmt.Errorf("embedding backend: %w", err)
	}
	return nil
}

func (c *Core) Close() {
	_ = c.Models.Close()
}
