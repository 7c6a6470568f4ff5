package httpadapter

import (
	"net/http"
	"strings"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

func (rt *Router) uploadBatch(w http.ResponseWriter, r *http.Request) {
	files, ok := rt.readResumeParts(w, r)
	if !ok {
		return
	}

	resumes, err := rt.deps.Ingestor.UploadBatch(r.Context(), files, r.FormValue("date"))
	if err != nil {
		writeDomainError(w, r, "upload resumes", err)
		return
	}

	saved := make([]string, 0, len(resumes))
	for _, resume := range resumes {
		saved = append(saved, resume.ID)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Files uploaded successfully",
		"saved_files": saved,
	})
}

func (rt *Router) uploadResume(w http.ResponseWriter, r *http.Request) {
	if !rt.parseMultipart(w, r) {
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	resume, err := rt.deps.Ingestor.Upload(
		r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		r.FormValue("date"),
		file,
	)
	if err != nil {
		writeDomainError(w, r, "upload resume", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Resume uploaded",
		"resume_id": resume.ID,
		"url":       resume.URL,
	})
}

func (rt *Router) listResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := rt.deps.Resumes.List(r.Context())
	if err != nil {
		writeDomainError(w, r, "list resumes", err)
		return
	}
	if resumes == nil {
		resumes = []domain.Resume{}
	}
	writeJSON(w, http.StatusOK, resumes)
}

func (rt *Router) getResume(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "resume id is required")
		return
	}
	resume, err := rt.deps.Resumes.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "get resume", err)
		return
	}
	writeJSON(w, http.StatusOK, resume)
}
