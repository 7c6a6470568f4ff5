package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
)

const pdfMimeType = "application/pdf"

// IngestResumeUseCase stores uploaded résumés and hands them to the worker.
type IngestResumeUseCase struct {
	repo    ports.ResumeRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestResumeUseCase(
	repo ports.ResumeRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestResumeUseCase {
	return &IngestResumeUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

func (uc *IngestResumeUseCase) Upload(
	ctx context.Context,
	filename, mimeType, uploadedAt string,
	body io.Reader,
) (*domain.Resume, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload resume", errors.New("filename is empty"))
	}
	if !domain.IsPDFName(filename) {
		return nil, &domain.UnsupportedFormatError{FileName: filename}
	}
	if mimeType == "" {
		mimeType = pdfMimeType
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	counter := &countingReader{r: body}
	if err := uc.storage.Save(ctx, storageKey, counter); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	resume := &domain.Resume{
		ID:         id,
		Filename:   filename,
		MimeType:   mimeType,
		StorageKey: storageKey,
		URL:        uc.storage.URL(storageKey),
		SizeBytes:  counter.n,
		UploadedAt: strings.TrimSpace(uploadedAt),
		Status:     domain.StatusUploaded,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.repo.Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("create resume metadata: %w", err)
	}

	if err := uc.queue.PublishResumeUploaded(ctx, resume.ID); err != nil {
		return nil, fmt.Errorf("publish upload event: %w", err)
	}

	return resume, nil
}

// UploadBatch stores every file or none: a non-PDF anywhere rejects the batch
// before anything is written.
func (uc *IngestResumeUseCase) UploadBatch(
	ctx context.Context,
	files []domain.ResumeFile,
	uploadedAt string,
) ([]domain.Resume, error) {
	if len(files) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload resumes", errors.New("no resumes uploaded"))
	}
	for _, file := range files {
		if !domain.IsPDFName(file.Name) {
			return nil, &domain.UnsupportedFormatError{FileName: file.Name}
		}
	}

	out := make([]domain.Resume, 0, len(files))
	for _, file := range files {
		resume, err := uc.Upload(ctx, file.Name, pdfMimeType, uploadedAt, bytes.NewReader(file.Content))
		if err != nil {
			return out, err
		}
		out = append(out, *resume)
	}
	return out, nil
}

func (uc *IngestResumeUseCase) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	resume, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resume.URL = uc.storage.URL(resume.StorageKey)
	return resume, nil
}

func (uc *IngestResumeUseCase) List(ctx context.Context) ([]domain.Resume, error) {
	resumes, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range resumes {
		resumes[i].URL = uc.storage.URL(resumes[i].StorageKey)
	}
	return resumes, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "resume.pdf"
	}
	return base
}
