package domain

import (
	"fmt"
	"time"
)

const (
	UnknownName  = "Unknown"
	NotAvailable = "N/A"
	EntityPerson = "PERSON"
)

type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type CandidateProfile struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Contact string   `json:"contact"`
	Skills  []string `json:"skills"`
}

// EmptyProfile is what a document with no usable text resolves to.
func EmptyProfile() CandidateProfile {
	return CandidateProfile{
		Name:    UnknownName,
		Email:   NotAvailable,
		Contact: NotAvailable,
		Skills:  []string{},
	}
}

type SkillComparison struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Score   float64  `json:"score"`
}

type AnalysisRecord struct {
	ID            string   `json:"id"`
	FileName      string   `json:"fileName"`
	FileSize      string   `json:"fileSize"`
	FileSizeBytes int64    `json:"fileSizeBytes"`
	CandidateName string   `json:"candidateName"`
	Email         string   `json:"email"`
	Contact       string   `json:"contact"`
	Skills        []string `json:"skills"`
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// FormatFileSize renders a byte count the way the upload UI displays it.
func FormatFileSize(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024.0)
}

type AnalysisRun struct {
	ID             string           `json:"id"`
	RequiredSkills []string         `json:"required_skills"`
	Records        []AnalysisRecord `json:"records"`
	CreatedAt      time.Time        `json:"created_at"`
}

type JobCriteria struct {
	ID        string    `json:"id"`
	Skills    []string  `json:"jd_skills"`
	CreatedAt time.Time `json:"created_at"`
}
