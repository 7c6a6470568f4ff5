package domain

import (
	"path/filepath"
	"strings"
	"time"
)

type ResumeStatus string

const (
	StatusUploaded   ResumeStatus = "uploaded"
	StatusProcessing ResumeStatus = "processing"
	StatusReady      ResumeStatus = "ready"
	StatusFailed     ResumeStatus = "failed"
)

// ResumeFile is one uploaded document handed to the analysis pipeline.
type ResumeFile struct {
	Name    string
	Size    int64
	Content []byte
}

// IsPDFName reports whether a file name carries the .pdf extension.
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(name)), ".pdf")
}

// Resume is a stored upload and, once the worker has run, its derived profile.
type Resume struct {
	ID         string            `json:"id"`
	Filename   string            `json:"name"`
	MimeType   string            `json:"mime_type"`
	StorageKey string            `json:"storage_key"`
	URL        string            `json:"url"`
	SizeBytes  int64             `json:"size_bytes"`
	UploadedAt string            `json:"uploaded_at"`
	Status     ResumeStatus      `json:"status"`
	Error      string            `json:"error,omitempty"`
	Profile    *CandidateProfile `json:"profile,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
