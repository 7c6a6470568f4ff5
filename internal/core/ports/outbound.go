package ports

import (
	"context"
	"io"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

// ResumeRepository persists stored résumés and their derived profiles.
type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) error
	GetByID(ctx context.Context, id string) (*domain.Resume, error)
	List(ctx context.Context) ([]domain.Resume, error)
	UpdateStatus(ctx context.Context, id string, status domain.ResumeStatus, errMessage string) error
	SaveProfile(ctx context.Context, id string, profile domain.CandidateProfile) error
}

// AnalysisRunStore persists the records produced by one analysis request.
type AnalysisRunStore interface {
	SaveRun(ctx context.Context, run *domain.AnalysisRun) error
}

// JobCriteriaStore persists recruiter-selected job skills.
type JobCriteriaStore interface {
	SaveJobCriteria(ctx context.Context, criteria *domain.JobCriteria) error
}

// ObjectStorage stores raw résumé files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	URL(key string) string
}

// TempFileStager writes a document to scoped temporary storage. The returned
// release func removes the file and must be called on every exit path.
type TempFileStager interface {
	Stage(ctx context.Context, name string, data io.Reader) (path string, release func(), err error)
}

// MessageQueue publishes/consumes résumé upload events.
type MessageQueue interface {
	PublishResumeUploaded(ctx context.Context, resumeID string) error
	SubscribeResumeUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a PDF file on disk.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// EntityRecognizer tags named entities in free text.
type EntityRecognizer interface {
	Entities(ctx context.Context, text string) ([]domain.Entity, error)
}

// Tokenizer splits free text into word tokens.
type Tokenizer interface {
	Tokens(ctx context.Context, text string) ([]string, error)
}

// KeywordStrategy is one independent keyword extraction technique.
// topN <= 0 means the strategy returns everything it ranks.
type KeywordStrategy interface {
	Name() string
	Keywords(ctx context.Context, text string, topN int) ([]string, error)
}

// Embedder builds vectors for keyword candidates and documents.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Chunker splits text into pieces that fit the embedding model context.
type Chunker interface {
	Split(text string) []string
}

// Vocabulary is the controlled set of keywords a job description may yield.
type Vocabulary interface {
	Contains(keyword string) bool
	Size() int
}

// AnalysisRecorder receives analysis outcomes, typically for metrics.
type AnalysisRecorder interface {
	ResumeAnalyzed(matchScore int)
	ExtractionDegraded(stage string)
	JDKeywordsReturned(count int)
}
