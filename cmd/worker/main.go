package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/resume-screener/internal/bootstrap"
	"github.com/kirillkom/resume-screener/internal/config"
	"github.com/kirillkom/resume-screener/internal/observability/logging"
	"github.com/kirillkom/resume-screener/internal/observability/metrics"
)

const service = "worker"

func main() {
	cfg := config.Load()
	logging.Setup(service, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := metrics.NewWorkerMetrics(service)
	app, err := bootstrap.New(ctx, cfg, workerMetrics.Analysis())
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject, "metrics_addr", metricsServer.Addr)
	// The queue bounds each handler call by WORKER_TIMEOUT_SECONDS and logs returned errors.
	err = app.Queue.SubscribeResumeUploaded(ctx, func(processCtx context.Context, resumeID string) error {
		if resume, err := app.Repo.GetByID(processCtx, resumeID); err == nil {
			workerMetrics.ObserveQueueLag(service, time.Since(resume.CreatedAt))
		}

		start := time.Now()
		workerMetrics.StartResume()
		err := app.ProcessUC.ProcessByID(processCtx, resumeID)
		workerMetrics.FinishResume(service, time.Since(start), err)
		return err
	})
	if err != nil {
		slog.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}
