package httpadapter

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kirillkom/resume-screener/internal/config"
	"github.com/kirillkom/resume-screener/internal/core/domain"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.WrapError(domain.ErrInvalidInput, "analyze", errors.New("bad")), http.StatusBadRequest},
		{&domain.UnsupportedFormatError{FileName: "a.docx"}, http.StatusUnsupportedMediaType},
		{domain.WrapError(domain.ErrDocumentNotFound, "get", errors.New("id=x")), http.StatusNotFound},
		{domain.WrapError(domain.ErrTemporary, "embed", errors.New("timeout")), http.StatusServiceUnavailable},
		{domain.WrapError(domain.ErrConfig, "vocabulary", errors.New("missing")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Fatalf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestGetResumeReturns404ForNotFound(t *testing.T) {
	deps := defaultDeps()
	deps.Resumes = readerFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get", errors.New("id=missing"))}
	handler := newTestHandler(t, config.Config{}, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestExtractKeywordsMapsConfigErrorTo503(t *testing.T) {
	deps := defaultDeps()
	deps.Keywords = keywordsFake{err: domain.WrapError(domain.ErrConfig, "extract keywords", errors.New("vocabulary not loaded"))}
	handler := newTestHandler(t, config.Config{}, deps)

	req := httptest.NewRequest(http.MethodPost, "/api/extract_keywords", bytes.NewBufferString(`{"jd":"python developer"}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestReadyzReportsFailedCheck(t *testing.T) {
	deps := defaultDeps()
	deps.Ready = func(_ context.Context) error { return errors.New("model registry closed") }
	handler := newTestHandler(t, config.Config{}, deps)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}
