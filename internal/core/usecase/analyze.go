package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
)

type AnalysisPipelineOptions struct {
	ResumeTopN int
	// Runs is optional; without it analysis results are not persisted.
	Runs     ports.AnalysisRunStore
	Recorder ports.AnalysisRecorder
}

// ResumeAnalysisPipeline screens a batch of résumé PDFs against a required
// skill list. Documents are processed sequentially in input order.
type ResumeAnalysisPipeline struct {
	stager    ports.TempFileStager
	extractor ports.TextExtractor
	profiles  profileBuilder
	runs      ports.AnalysisRunStore
	recorder  ports.AnalysisRecorder
}

func NewResumeAnalysisPipeline(
	stager ports.TempFileStager,
	extractor ports.TextExtractor,
	fields *FieldExtractor,
	keywords *KeywordExtractor,
	opts AnalysisPipelineOptions,
) *ResumeAnalysisPipeline {
	return &ResumeAnalysisPipeline{
		stager:    stager,
		extractor: extractor,
		profiles:  profileBuilder{fields: fields, keywords: keywords, topN: opts.ResumeTopN},
		runs:      opts.Runs,
		recorder:  recorderOrNoop(opts.Recorder),
	}
}

func (p *ResumeAnalysisPipeline) AnalyzeResumes(
	ctx context.Context,
	files []domain.ResumeFile,
	requiredSkills []string,
) ([]domain.AnalysisRecord, error) {
	if err := validateAnalysisRequest(files, requiredSkills); err != nil {
		return nil, err
	}
	for _, file := range files {
		if !domain.IsPDFName(file.Name) {
			return nil, &domain.UnsupportedFormatError{FileName: file.Name}
		}
	}

	records := make([]domain.AnalysisRecord, 0, len(files))
	for idx, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyze resumes: %w", err)
		}
		record, err := p.analyzeOne(ctx, idx+1, file, requiredSkills)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		p.recorder.ResumeAnalyzed(record.MatchScore)
	}

	p.persistRun(ctx, requiredSkills, records)
	return records, nil
}

func (p *ResumeAnalysisPipeline) analyzeOne(
	ctx context.Context,
	position int,
	file domain.ResumeFile,
	requiredSkills []string,
) (domain.AnalysisRecord, error) {
	path, release, err := p.stager.Stage(ctx, file.Name, bytes.NewReader(file.Content))
	if err != nil {
		return domain.AnalysisRecord{}, fmt.Errorf("stage %q: %w", file.Name, err)
	}
	defer release()

	text, err := p.extractor.ExtractText(ctx, path)
	if err != nil {
		slog.Warn("extraction_degraded", "stage", "text", "file", file.Name, "error", err)
		p.recorder.ExtractionDegraded("text")
		text = ""
	}

	profile := p.profiles.build(ctx, text)
	comparison := CompareSkills(profile.Skills, requiredSkills)

	size := file.Size
	if size <= 0 {
		size = int64(len(file.Content))
	}

	return domain.AnalysisRecord{
		ID:            strconv.Itoa(position),
		FileName:      file.Name,
		FileSize:      domain.FormatFileSize(size),
		FileSizeBytes: size,
		CandidateName: profile.Name,
		Email:         profile.Email,
		Contact:       profile.Contact,
		Skills:        profile.Skills,
		MatchScore:    MatchScore(comparison),
		MatchedSkills: comparison.Matched,
		MissingSkills: comparison.Missing,
	}, nil
}

func (p *ResumeAnalysisPipeline) persistRun(ctx context.Context, requiredSkills []string, records []domain.AnalysisRecord) {
	if p.runs == nil {
		return
	}
	run := &domain.AnalysisRun{
		ID:             uuid.NewString(),
		RequiredSkills: requiredSkills,
		Records:        records,
		CreatedAt:      time.Now().UTC(),
	}
	if err := p.runs.SaveRun(ctx, run); err != nil {
		slog.Error("analysis_run_persist_failed", "run_id", run.ID, "error", err)
	}
}

func validateAnalysisRequest(files []domain.ResumeFile, requiredSkills []string) error {
	const op = "analyze resumes"
	if len(files) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, op, errors.New("no resumes uploaded"))
	}
	if len(requiredSkills) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, op, errors.New("required skills are empty"))
	}
	for i, skill := range requiredSkills {
		if strings.TrimSpace(skill) == "" {
			return domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("required skill %d is blank", i))
		}
	}
	return nil
}
