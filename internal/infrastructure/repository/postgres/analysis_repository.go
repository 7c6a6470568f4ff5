package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

// AnalysisRepository stores analysis runs and recruiter job criteria.
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) SaveRun(ctx context.Context, run *domain.AnalysisRun) error {
	skills, err := json.Marshal(run.RequiredSkills)
	if err != nil {
		return fmt.Errorf("marshal required skills: %w", err)
	}
	records, err := json.Marshal(run.Records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO analysis_runs (id, required_skills, records, record_count, created_at)
VALUES ($1,$2,$3,$4,$5)
`, run.ID, skills, records, len(run.Records), createdAt)
	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) SaveJobCriteria(ctx context.Context, criteria *domain.JobCriteria) error {
	skills, err := json.Marshal(criteria.Skills)
	if err != nil {
		return fmt.Errorf("marshal jd skills: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO job_criteria (id, skills, created_at)
VALUES ($1,$2,$3)
`, criteria.ID, skills, criteria.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert job criteria: %w", err)
	}
	return nil
}
