package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

const listLimit = 200

type ResumeRepository struct {
	db *sql.DB
}

func NewResumeRepository(db *sql.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO resumes (
	id, filename, mime_type, storage_key, size_bytes, uploaded_at, status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		resume.ID, resume.Filename, resume.MimeType, resume.StorageKey, resume.SizeBytes,
		resume.UploadedAt, string(resume.Status), resume.Error, resume.CreatedAt, resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

const selectResume = `
SELECT id, filename, mime_type, storage_key, size_bytes, uploaded_at, status, error_message, profile, created_at, updated_at
FROM resumes
`

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	row := r.db.QueryRowContext(ctx, selectResume+`WHERE id = $1`, id)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get resume", fmt.Errorf("id=%s", id))
		}
		return nil, err
	}
	return resume, nil
}

func (r *ResumeRepository) List(ctx context.Context) ([]domain.Resume, error) {
	rows, err := r.db.QueryContext(ctx, selectResume+`ORDER BY created_at DESC LIMIT $1`, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Resume, 0, 16)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *resume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resumes: %w", err)
	}
	return out, nil
}

func (r *ResumeRepository) UpdateStatus(ctx context.Context, id string, status domain.ResumeStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update resume status: %w", err)
	}
	return requireAffected(res, "update resume status", id)
}

func (r *ResumeRepository) SaveProfile(ctx context.Context, id string, profile domain.CandidateProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET profile = $2, updated_at = $3
WHERE id = $1
`, id, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return requireAffected(res, "save profile", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (*domain.Resume, error) {
	var resume domain.Resume
	var status string
	var profileRaw []byte

	err := row.Scan(
		&resume.ID, &resume.Filename, &resume.MimeType, &resume.StorageKey, &resume.SizeBytes,
		&resume.UploadedAt, &status, &resume.Error, &profileRaw, &resume.CreatedAt, &resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan resume: %w", err)
	}

	resume.Status = domain.ResumeStatus(status)
	if len(profileRaw) > 0 {
		var profile domain.CandidateProfile
		if err := json.Unmarshal(profileRaw, &profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		resume.Profile = &profile
	}
	return &resume, nil
}

func requireAffected(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}
