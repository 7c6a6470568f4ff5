package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/resume-screener/internal/config"
	"github.com/kirillkom/resume-screener/internal/core/ports"
	"github.com/kirillkom/resume-screener/internal/core/usecase"
	"github.com/kirillkom/resume-screener/internal/infrastructure/queue/nats"
	"github.com/kirillkom/resume-screener/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/resume-screener/internal/infrastructure/resilience"
	"github.com/kirillkom/resume-screener/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/resume-screener/internal/infrastructure/storage/s3"
)

type App struct {
	*Core

	Queue     ports.MessageQueue
	Repo      ports.ResumeRepository
	IngestUC  *usecase.IngestResumeUseCase
	ProcessUC ports.ResumeProfiler
	Criteria  ports.JobCriteriaRecorder
	// Files serves locally stored résumés; nil for the S3 backend.
	Files http.Handler

	db      *sql.DB
	queue   *nats.Queue
	closeFn func()
}

func New(ctx context.Context, cfg config.Config, recorder ports.AnalysisRecorder) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	repo := postgres.NewResumeRepository(db)
	analyses := postgres.NewAnalysisRepository(db)

	storage, files, err := newObjectStorage(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.ConfigFor(cfg.ResilienceRetryAttempts, cfg.ResilienceBreakerEnabled)),
		HandlerTimeout:     time.Duration(cfg.WorkerTimeoutSeconds) * time.Second,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	coreOpts := CoreOptions{Recorder: recorder}
	if cfg.PersistAnalyses {
		coreOpts.Runs = analyses
	}
	core, err := NewCore(ctx, cfg, coreOpts)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, err
	}

	ingestUC := usecase.NewIngestResumeUseCase(repo, storage, queue)
	processUC := usecase.NewProfileResumeUseCase(repo, storage, core.Stager, core.Extractor, core.Fields, core.Keywords,
		usecase.AnalysisPipelineOptions{ResumeTopN: cfg.ResumeKeywordTopN, Recorder: recorder})

	return &App{
		Core:      core,
		Queue:     queue,
		Repo:      repo,
		IngestUC:  ingestUC,
		ProcessUC: processUC,
		Criteria:  usecase.NewJobCriteriaUseCase(analyses),
		Files:     files,

		db:    db,
		queue: queue,
		closeFn: func() {
			core.Close()
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func newObjectStorage(ctx context.Context, cfg config.Config) (ports.ObjectStorage, http.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageBackend)) {
	case "s3":
		storage, err := s3.New(ctx, s3.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			PublicURL:       cfg.StoragePublicURL,
		})
		return storage, nil, err
	case "", "localfs":
		storage, err := localfs.New(cfg.StoragePath, cfg.StoragePublicURL)
		if err != nil {
			return nil, nil, err
		}
		return storage, http.StripPrefix("/files/", http.FileServer(http.Dir(cfg.StoragePath))), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Ready checks the model registry, the database and the queue connection.
func (a *App) Ready(ctx context.Context) error {
	if err := a.Core.Ready(ctx); err != nil {
		return err
	}
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := a.queue.Ping(ctx); err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
