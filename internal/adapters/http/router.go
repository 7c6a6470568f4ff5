package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/kirillkom/resume-screener/internal/adapters/http/openapi"
	"github.com/kirillkom/resume-screener/internal/config"
	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
	"github.com/kirillkom/resume-screener/internal/observability/metrics"
)

const serviceName = "api"

// ReportWriter renders analysis records as a downloadable workbook.
type ReportWriter interface {
	WriteAnalysisReport(records []domain.AnalysisRecord) ([]byte, error)
}

// ReadinessCheck reports whether models, vocabulary and stores are usable.
type ReadinessCheck func(ctx context.Context) error

type Dependencies struct {
	Analyzer ports.ResumeAnalyzer
	Keywords ports.JDKeywordExtractor
	Criteria ports.JobCriteriaRecorder
	Ingestor ports.ResumeIngestor
	Resumes  ports.ResumeReader
	Reports  ReportWriter
	// Files serves stored résumé files under /files/ when the blob store is local.
	Files   http.Handler
	Metrics *metrics.HTTPServerMetrics
	Ready   ReadinessCheck
}

type Router struct {
	deps     Dependencies
	validate *validator.Validate
	openAPI  []byte

	maxUploadBytes int64
	corsOrigins    []string
	limiter        *rate.Limiter
	maxInFlight    int
	queueWait      time.Duration
}

func NewRouter(ctx context.Context, cfg config.Config, deps Dependencies) (*Router, error) {
	spec, err := openapi.JSON(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfig, "load openapi", err)
	}

	rt := &Router{
		deps:        deps,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		openAPI:     spec,
		corsOrigins: cfg.CORSAllowedOrigins,
		maxInFlight: cfg.APIMaxInFlight,
		queueWait:   time.Duration(cfg.APIQueueWaitMillis) * time.Millisecond,
	}
	if cfg.MaxUploadMB > 0 {
		rt.maxUploadBytes = int64(cfg.MaxUploadMB) << 20
	}
	if cfg.APIRateLimitRPS > 0 {
		burst := cfg.APIRateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		rt.limiter = rate.NewLimiter(rate.Limit(cfg.APIRateLimitRPS), burst)
	}
	return rt, nil
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /readyz", rt.readyz)
	mux.HandleFunc("GET /openapi.json", rt.openAPIDocument)
	if rt.deps.Metrics != nil {
		mux.Handle("GET /metrics", rt.deps.Metrics.Handler())
	}

	mux.HandleFunc("POST /analyze", rt.analyzeResumes)
	mux.HandleFunc("POST /api/extract_keywords", rt.extractKeywords)
	mux.HandleFunc("POST /set_jd_skills", rt.setJobSkills)
	mux.HandleFunc("POST /upload", rt.uploadBatch)
	mux.HandleFunc("POST /api/upload", rt.uploadResume)
	mux.HandleFunc("GET /api/resumes", rt.listResumes)
	mux.HandleFunc("GET /api/resumes/{id}", rt.getResume)
	if rt.deps.Files != nil {
		mux.Handle("GET /files/", rt.deps.Files)
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.maxInFlight, rt.queueWait)
	handler = rateLimitMiddleware(handler, rt.limiter, rt.recordRejected)
	handler = corsMiddleware(handler, rt.corsOrigins)
	if rt.deps.Metrics != nil {
		handler = rt.deps.Metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) recordRejected(reason string) {
	if rt.deps.Metrics != nil {
		rt.deps.Metrics.RecordRejected(serviceName, reason)
	}
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) readyz(w http.ResponseWriter, r *http.Request) {
	if rt.deps.Ready != nil {
		if err := rt.deps.Ready(r.Context()); err != nil {
			slog.Warn("readiness_check_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (rt *Router) openAPIDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rt.openAPI)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a use-case error onto its HTTP status and logs server-side failures.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"operation", op,
			"error", err,
		)
	}
	writeError(w, status, err.Error())
}
