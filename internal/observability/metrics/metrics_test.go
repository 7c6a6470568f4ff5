package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics handler returned %d", rec.Code)
	}
	return rec.Body.String()
}

func TestMiddlewareCountsRequestsByNormalizedPath(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	handler := m.Middleware("api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for _, path := range []string{"/api/resumes/a", "/api/resumes/b"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	want := `screener_http_requests_total{method="GET",path="/api/resumes/{id}",service="api",status="404"} 2`
	if body := scrape(t, m.Handler()); !strings.Contains(body, want) {
		t.Fatalf("expected %q in metrics output:\n%s", want, body)
	}
}

func TestAnalysisMetricsExposed(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	m.Analysis().ResumeAnalyzed(66)
	m.Analysis().ExtractionDegraded("keybert")
	m.Analysis().ExtractionDegraded("")
	m.Analysis().JDKeywordsReturned(3)
	m.RecordRejected("api", "rate_limit")

	body := scrape(t, m.Handler())
	for _, want := range []string{
		`screener_analysis_resumes_total{service="api"} 1`,
		`screener_analysis_match_score_sum{service="api"} 66`,
		`screener_analysis_extraction_degraded_total{service="api",stage="keybert"} 1`,
		`screener_analysis_extraction_degraded_total{service="api",stage="unknown"} 1`,
		`screener_jd_keywords_returned_count{service="api"} 1`,
		`screener_http_rejected_total{reason="rate_limit",service="api"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, body)
		}
	}
}

func TestWorkerMetricsFinishResume(t *testing.T) {
	m := NewWorkerMetrics("worker")
	m.StartResume()
	m.FinishResume("worker", 10*time.Millisecond, errors.New("boom"))
	m.ObserveQueueLag("worker", -time.Second)
	m.Analysis().ResumeAnalyzed(100)

	body := scrape(t, m.Handler())
	for _, want := range []string{
		`screener_worker_resume_profile_total{service="worker",status="error"} 1`,
		`screener_worker_resume_profile_in_flight{service="worker"} 0`,
		`screener_analysis_resumes_total{service="worker"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, body)
		}
	}
	if strings.Contains(body, "screener_worker_queue_lag_seconds_count") {
		t.Fatalf("negative lag must not be observed")
	}
}
