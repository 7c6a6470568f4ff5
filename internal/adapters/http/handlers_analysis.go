package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

const (
	multipartMemory  = 32 << 20
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	reportAttachment = `attachment; filename="resume_analysis.xlsx"`
)

type analyzeForm struct {
	RequiredSkills []string `validate:"required,min=1"`
	Format         string   `validate:"omitempty,oneof=json xlsx"`
}

type extractKeywordsRequest struct {
	JD string `json:"jd" validate:"required"`
}

type setJobSkillsRequest struct {
	Skills []string `json:"jd_skills" validate:"required,min=1"`
}

func (rt *Router) analyzeResumes(w http.ResponseWriter, r *http.Request) {
	files, ok := rt.readResumeParts(w, r)
	if !ok {
		return
	}

	skills, msg := parseRequiredSkills(r.FormValue("required_skills"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	form := analyzeForm{
		RequiredSkills: skills,
		Format:         strings.ToLower(strings.TrimSpace(r.FormValue("format"))),
	}
	if err := rt.validate.Struct(form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid analyze request: "+err.Error())
		return
	}

	records, err := rt.deps.Analyzer.AnalyzeResumes(r.Context(), files, form.RequiredSkills)
	if err != nil {
		writeDomainError(w, r, "analyze resumes", err)
		return
	}

	if form.Format != "xlsx" {
		writeJSON(w, http.StatusOK, records)
		return
	}
	if rt.deps.Reports == nil {
		writeError(w, http.StatusServiceUnavailable, "report export is not configured")
		return
	}
	report, err := rt.deps.Reports.WriteAnalysisReport(records)
	if err != nil {
		writeDomainError(w, r, "write analysis report", err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", reportAttachment)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report)
}

func (rt *Router) extractKeywords(w http.ResponseWriter, r *http.Request) {
	var req extractKeywordsRequest
	if !rt.decodeJSON(w, r, &req) {
		return
	}
	req.JD = strings.TrimSpace(req.JD)
	if err := rt.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "no JD provided")
		return
	}

	keywords, err := rt.deps.Keywords.ExtractKeywords(r.Context(), req.JD)
	if err != nil {
		writeDomainError(w, r, "extract keywords", err)
		return
	}
	if keywords == nil {
		keywords = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"filtered_keywords": keywords})
}

func (rt *Router) setJobSkills(w http.ResponseWriter, r *http.Request) {
	var req setJobSkillsRequest
	if !rt.decodeJSON(w, r, &req) {
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "jd_skills must be a non-empty list")
		return
	}

	criteria, err := rt.deps.Criteria.SaveSkills(r.Context(), req.Skills)
	if err != nil {
		writeDomainError(w, r, "save job skills", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "JD skills received",
		"id":        criteria.ID,
		"jd_skills": criteria.Skills,
	})
}

func (rt *Router) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if rt.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// readResumeParts loads every "resumes" part of a multipart request into memory.
// It writes the error response itself and reports false when the request is unusable.
func (rt *Router) readResumeParts(w http.ResponseWriter, r *http.Request) ([]domain.ResumeFile, bool) {
	if !rt.parseMultipart(w, r) {
		return nil, false
	}
	headers, present := r.MultipartForm.File["resumes"]
	if !present {
		writeError(w, http.StatusBadRequest, "no resumes part in request")
		return nil, false
	}
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return nil, false
	}

	files := make([]domain.ResumeFile, 0, len(headers))
	for _, header := range headers {
		content, err := readPart(header)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read upload "+header.Filename+": "+err.Error())
			return nil, false
		}
		files = append(files, domain.ResumeFile{
			Name:    header.Filename,
			Size:    header.Size,
			Content: content,
		})
	}
	return files, true
}

func (rt *Router) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	if rt.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return false
		}
		writeError(w, http.StatusBadRequest, "multipart form is required")
		return false
	}
	return true
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// parseRequiredSkills decodes the JSON-array form field and returns a client
// message when the value is missing or malformed.
func parseRequiredSkills(raw string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, "no required skills provided"
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, "invalid required_skills format"
	}
	items, ok := decoded.([]any)
	if !ok {
		return nil, "required skills must be a list"
	}
	if len(items) == 0 {
		return nil, "required skills list cannot be empty"
	}
	skills := make([]string, 0, len(items))
	for _, item := range items {
		skill, ok := item.(string)
		if !ok {
			return nil, "invalid required_skills format"
		}
		skills = append(skills, skill)
	}
	return skills, ""
}
