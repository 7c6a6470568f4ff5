package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

type analyzerFake struct {
	files  []domain.ResumeFile
	skills []string
	err    error
}

func (f *analyzerFake) AnalyzeResumes(_ context.Context, files []domain.ResumeFile, skills []string) ([]domain.AnalysisRecord, error) {
	f.files = files
	f.skills = skills
	if f.err != nil {
		return nil, f.err
	}
	return []domain.AnalysisRecord{{ID: "1", FileName: files[0].Name, MatchScore: 100}}, nil
}

type keywordsFake struct {
	keywords []string
	err      error
}

func (f keywordsFake) ExtractKeywords(context.Context, string) ([]string, error) {
	return f.keywords, f.err
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestExtractJDKeywordsTool(t *testing.T) {
	tools := NewTools(&analyzerFake{}, keywordsFake{keywords: []string{"python"}})

	res, err := tools.ExtractJDKeywords(context.Background(), callRequest("extract_jd_keywords", map[string]any{"jd": "Python developer"}))
	if err != nil {
		t.Fatalf("ExtractJDKeywords() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	var out map[string][]string
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(out["filtered_keywords"]) != 1 || out["filtered_keywords"][0] != "python" {
		t.Fatalf("unexpected keywords: %+v", out)
	}
}

func TestExtractJDKeywordsToolReportsFailure(t *testing.T) {
	tools := NewTools(&analyzerFake{}, keywordsFake{err: domain.WrapError(domain.ErrInvalidInput, "extract", errors.New("empty"))})

	res, err := tools.ExtractJDKeywords(context.Background(), callRequest("extract_jd_keywords", map[string]any{"jd": " "}))
	if err != nil {
		t.Fatalf("ExtractJDKeywords() error = %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error result")
	}
}

func TestCompareSkillsTool(t *testing.T) {
	tools := NewTools(&analyzerFake{}, keywordsFake{})

	res, err := tools.CompareSkills(context.Background(), callRequest("compare_skills", map[string]any{
		"extracted_skills": []any{"go", "sql"},
		"required_skills":  []any{"go", "kubernetes"},
	}))
	if err != nil {
		t.Fatalf("CompareSkills() error = %v", err)
	}
	var out struct {
		MatchScore    int      `json:"matchScore"`
		MatchedSkills []string `json:"matchedSkills"`
		MissingSkills []string `json:"missingSkills"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if out.MatchScore != 50 || len(out.MatchedSkills) != 1 || out.MissingSkills[0] != "kubernetes" {
		t.Fatalf("unexpected comparison: %+v", out)
	}
}

func TestCompareSkillsToolRequiresArguments(t *testing.T) {
	tools := NewTools(&analyzerFake{}, keywordsFake{})

	res, err := tools.CompareSkills(context.Background(), callRequest("compare_skills", map[string]any{"extracted_skills": []any{"go"}}))
	if err != nil {
		t.Fatalf("CompareSkills() error = %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error when required_skills is missing")
	}
}

func TestAnalyzeResumeToolReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jane.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	analyzer := &analyzerFake{}
	tools := NewTools(analyzer, keywordsFake{})

	res, err := tools.AnalyzeResume(context.Background(), callRequest("analyze_resume", map[string]any{
		"path":            path,
		"required_skills": []any{"go"},
	}))
	if err != nil {
		t.Fatalf("AnalyzeResume() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if len(analyzer.files) != 1 || analyzer.files[0].Name != "jane.pdf" || analyzer.files[0].Size != 8 {
		t.Fatalf("unexpected files: %+v", analyzer.files)
	}
	var record domain.AnalysisRecord
	if err := json.Unmarshal([]byte(resultText(t, res)), &record); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if record.FileName != "jane.pdf" || record.MatchScore != 100 {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestAnalyzeResumeToolMissingFile(t *testing.T) {
	tools := NewTools(&analyzerFake{}, keywordsFake{})

	res, err := tools.AnalyzeResume(context.Background(), callRequest("analyze_resume", map[string]any{
		"path":            filepath.Join(t.TempDir(), "missing.pdf"),
		"required_skills": []any{"go"},
	}))
	if err != nil {
		t.Fatalf("AnalyzeResume() error = %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected tool error for missing file")
	}
}

func TestNewServerListsTools(t *testing.T) {
	s := NewServer(NewTools(&analyzerFake{}, keywordsFake{}))

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	payload, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("encode response: %v", err)
	}
	for _, name := range []string{"extract_jd_keywords", "compare_skills", "analyze_resume"} {
		if !strings.Contains(string(payload), `"name":"`+name+`"`) {
			t.Fatalf("tool %s not listed in %s", name, payload)
		}
	}
}
