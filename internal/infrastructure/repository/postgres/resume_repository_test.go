package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

var resumeColumns = []string{
	"id", "filename", "mime_type", "storage_key", "size_bytes", "uploaded_at",
	"status", "error_message", "profile", "created_at", "updated_at",
}

func newResumeRepoWithMock(t *testing.T) (*ResumeRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return NewResumeRepository(db), mock, func() { _ = db.Close() }
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newResumeRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, filename, mime_type, storage_key").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDDecodesProfile(t *testing.T) {
	repo, mock, done := newResumeRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(resumeColumns).AddRow(
		"r-1", "cv.pdf", "application/pdf", "r-1_cv.pdf", int64(2048), "2024-05-01",
		string(domain.StatusReady), "", []byte(`{"name":"Jane Doe","email":"jane@example.com","contact":"N/A","skills":["go"]}`), now, now,
	)
	mock.ExpectQuery("FROM resumes").WithArgs("r-1").WillReturnRows(rows)

	resume, err := repo.GetByID(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if resume.Status != domain.StatusReady || resume.Profile == nil || resume.Profile.Name != "Jane Doe" {
		t.Fatalf("unexpected resume: %+v", resume)
	}
}

func TestListLeavesProfileNilWhenUnprocessed(t *testing.T) {
	repo, mock, done := newResumeRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(resumeColumns).
		AddRow("r-1", "a.pdf", "application/pdf", "r-1_a.pdf", int64(1), "", string(domain.StatusUploaded), "", nil, now, now).
		AddRow("r-2", "b.pdf", "application/pdf", "r-2_b.pdf", int64(2), "", string(domain.StatusFailed), "boom", nil, now, now)
	mock.ExpectQuery("ORDER BY created_at DESC").WithArgs(listLimit).WillReturnRows(rows)

	resumes, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resumes) != 2 || resumes[0].Profile != nil || resumes[1].Error != "boom" {
		t.Fatalf("unexpected resumes: %+v", resumes)
	}
}

func TestUpdateStatusReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newResumeRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE resumes").
		WithArgs("missing", string(domain.StatusProcessing), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusProcessing, "")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveProfileWritesJSON(t *testing.T) {
	repo, mock, done := newResumeRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE resumes").
		WithArgs("r-1", []byte(`{"name":"Unknown","email":"N/A","contact":"N/A","skills":[]}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveProfile(context.Background(), "r-1", domain.EmptyProfile()); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateInsertsResume(t *testing.T) {
	repo, mock, done := newResumeRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	resume := &domain.Resume{
		ID: "r-1", Filename: "cv.pdf", MimeType: "application/pdf", StorageKey: "r-1_cv.pdf",
		SizeBytes: 10, Status: domain.StatusUploaded, CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectExec("INSERT INTO resumes").
		WithArgs("r-1", "cv.pdf", "application/pdf", "r-1_cv.pdf", int64(10), "", "uploaded", "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEnsureSchemaTakesAdvisoryLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WithArgs(schemaLockID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS resumes").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
