package ports

import (
	"context"
	"io"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

// ResumeAnalyzer is the inbound contract for batch résumé screening.
type ResumeAnalyzer interface {
	AnalyzeResumes(ctx context.Context, files []domain.ResumeFile, requiredSkills []string) ([]domain.AnalysisRecord, error)
}

// JDKeywordExtractor is the inbound contract for job-description keyword extraction.
type JDKeywordExtractor interface {
	ExtractKeywords(ctx context.Context, jobDescription string) ([]string, error)
}

// ResumeIngestor is the inbound contract for storing uploads for asynchronous profiling.
type ResumeIngestor interface {
	Upload(ctx context.Context, filename, mimeType, uploadedAt string, body io.Reader) (*domain.Resume, error)
	UploadBatch(ctx context.Context, files []domain.ResumeFile, uploadedAt string) ([]domain.Resume, error)
}

// ResumeReader is the inbound read model for stored résumés.
type ResumeReader interface {
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
	List(ctx context.Context) ([]domain.Resume, error)
}

// ResumeProfiler is the inbound contract for asynchronous profile extraction.
type ResumeProfiler interface {
	ProcessByID(ctx context.Context, resumeID string) error
}

// JobCriteriaRecorder accepts the skills a recruiter picked from a job description.
type JobCriteriaRecorder interface {
	SaveSkills(ctx context.Context, skills []string) (*domain.JobCriteria, error)
}
