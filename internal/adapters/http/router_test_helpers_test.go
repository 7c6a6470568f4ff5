package httpadapter

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/kirillkom/resume-screener/internal/config"
	"github.com/kirillkom/resume-screener/internal/core/domain"
)

type analyzerFake struct {
	records []domain.AnalysisRecord
	err     error
	files   []domain.ResumeFile
	skills  []string
}

func (f *analyzerFake) AnalyzeResumes(_ context.Context, files []domain.ResumeFile, skills []string) ([]domain.AnalysisRecord, error) {
	f.files = files
	f.skills = skills
	return f.records, f.err
}

type keywordsFake struct {
	keywords []string
	err      error
}

func (f keywordsFake) ExtractKeywords(context.Context, string) ([]string, error) {
	return f.keywords, f.err
}

type criteriaFake struct {
	err error
}

func (f criteriaFake) SaveSkills(_ context.Context, skills []string) (*domain.JobCriteria, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.JobCriteria{ID: "jc-1", Skills: skills, CreatedAt: time.Now().UTC()}, nil
}

type ingestorFake struct {
	err error
}

func (f ingestorFake) Upload(_ context.Context, filename, mimeType, uploadedAt string, body io.Reader) (*domain.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", io.EOF)
	}
	return &domain.Resume{
		ID:         "res-1",
		Filename:   filename,
		MimeType:   mimeType,
		UploadedAt: uploadedAt,
		URL:        "/files/res-1_" + filename,
		Status:     domain.StatusUploaded,
	}, nil
}

func (f ingestorFake) UploadBatch(_ context.Context, files []domain.ResumeFile, _ string) ([]domain.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Resume, 0, len(files))
	for i, file := range files {
		if !domain.IsPDFName(file.Name) {
			return nil, &domain.UnsupportedFormatError{FileName: file.Name}
		}
		out = append(out, domain.Resume{ID: "res-" + string(rune('a'+i)), Filename: file.Name})
	}
	return out, nil
}

type readerFake struct {
	err     error
	resumes []domain.Resume
}

func (f readerFake) GetByID(_ context.Context, id string) (*domain.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Resume{ID: id, Filename: "cv.pdf", Status: domain.StatusReady}, nil
}

func (f readerFake) List(context.Context) ([]domain.Resume, error) {
	return f.resumes, f.err
}

type reportFake struct {
	records []domain.AnalysisRecord
}

func (f *reportFake) WriteAnalysisReport(records []domain.AnalysisRecord) ([]byte, error) {
	f.records = records
	return []byte("xlsx-bytes"), nil
}

func defaultDeps() Dependencies {
	return Dependencies{
		Analyzer: &analyzerFake{},
		Keywords: keywordsFake{},
		Criteria: criteriaFake{},
		Ingestor: ingestorFake{},
		Resumes:  readerFake{},
	}
}

func newTestHandler(t *testing.T, cfg config.Config, deps Dependencies) http.Handler {
	t.Helper()
	rt, err := NewRouter(context.Background(), cfg, deps)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	return rt.Handler()
}

type formPart struct {
	field    string
	filename string
	content  string
}

func multipartBody(t *testing.T, parts []formPart, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, p := range parts {
		part, err := writer.CreateFormFile(p.field, p.filename)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := part.Write([]byte(p.content)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	for k, v := range values {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &body, writer.FormDataContentType()
}
