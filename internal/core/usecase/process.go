package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
)

// ProfileResumeUseCase is the worker side of an upload: it extracts a
// CandidateProfile from a stored résumé and persists it.
type ProfileResumeUseCase struct {
	repo      ports.ResumeRepository
	storage   ports.ObjectStorage
	stager    ports.TempFileStager
	extractor ports.TextExtractor
	profiles  profileBuilder
	recorder  ports.AnalysisRecorder
}

func NewProfileResumeUseCase(
	repo ports.ResumeRepository,
	storage ports.ObjectStorage,
	stager ports.TempFileStager,
	extractor ports.TextExtractor,
	fields *FieldExtractor,
	keywords *KeywordExtractor,
	opts AnalysisPipelineOptions,
) *ProfileResumeUseCase {
	return &ProfileResumeUseCase{
		repo:      repo,
		storage:   storage,
		stager:    stager,
		extractor: extractor,
		profiles:  profileBuilder{fields: fields, keywords: keywords, topN: opts.ResumeTopN},
		recorder:  recorderOrNoop(opts.Recorder),
	}
}

func (uc *ProfileResumeUseCase) ProcessByID(ctx context.Context, resumeID string) error {
	if err := uc.markStatus(ctx, resumeID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	profile, err := uc.processPipeline(ctx, resumeID)
	if err != nil {
		if failErr := uc.markFailed(ctx, resumeID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveProfile(ctx, resumeID, profile); err != nil {
		err = fmt.Errorf("save profile: %w", err)
		if failErr := uc.markFailed(ctx, resumeID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, resumeID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProfileResumeUseCase) processPipeline(ctx context.Context, resumeID string) (domain.CandidateProfile, error) {
	resume, err := uc.repo.GetByID(ctx, resumeID)
	if err != nil {
		return domain.CandidateProfile{}, fmt.Errorf("fetch resume by id: %w", err)
	}

	text, err := uc.extractText(ctx, resume)
	if err != nil {
		return domain.CandidateProfile{}, err
	}
	return uc.profiles.build(ctx, text), nil
}

// extractText returns infrastructure errors only; an unreadable PDF degrades
// to empty text.
func (uc *ProfileResumeUseCase) extractText(ctx context.Context, resume *domain.Resume) (string, error) {
	body, err := uc.storage.Open(ctx, resume.StorageKey)
	if err != nil {
		return "", fmt.Errorf("open stored resume: %w", err)
	}
	defer body.Close()

	path, release, err := uc.stager.Stage(ctx, resume.Filename, body)
	if err != nil {
		return "", fmt.Errorf("stage resume: %w", err)
	}
	defer release()

	text, err := uc.extractor.ExtractText(ctx, path)
	if err != nil {
		slog.Warn("extraction_degraded", "stage", "text", "file", resume.Filename, "resume_id", resume.ID, "error", err)
		uc.recorder.ExtractionDegraded("text")
		return "", nil
	}
	return text, nil
}

func (uc *ProfileResumeUseCase) markStatus(ctx context.Context, resumeID string, status domain.ResumeStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, resumeID, status, errMessage)
}

func (uc *ProfileResumeUseCase) markFailed(ctx context.Context, resumeID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, resumeID, domain.StatusFailed, processErr.Error())
}
