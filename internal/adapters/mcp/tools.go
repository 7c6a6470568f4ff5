// Package mcpadapter exposes the screening use cases as MCP tools.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
	"github.com/kirillkom/resume-screener/internal/core/usecase"
)

const (
	serverName    = "resume-screener"
	serverVersion = "1.0.0"
)

type Tools struct {
	analyzer ports.ResumeAnalyzer
	keywords ports.JDKeywordExtractor
}

func NewTools(analyzer ports.ResumeAnalyzer, keywords ports.JDKeywordExtractor) *Tools {
	return &Tools{analyzer: analyzer, keywords: keywords}
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(tools *Tools) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("extract_jd_keywords",
		mcp.WithDescription("Extract vocabulary skills mentioned in a job description."),
		mcp.WithString("jd", mcp.Required(), mcp.Description("Job description text")),
	), tools.ExtractJDKeywords)

	s.AddTool(mcp.NewTool("compare_skills",
		mcp.WithDescription("Compare candidate skills with required skills and compute a match score."),
		mcp.WithArray("extracted_skills", mcp.Required(), mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Skills found in the résumé")),
		mcp.WithArray("required_skills", mcp.Required(), mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Skills the role requires")),
	), tools.CompareSkills)

	s.AddTool(mcp.NewTool("analyze_resume",
		mcp.WithDescription("Analyze a local PDF résumé against required skills."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to a PDF file")),
		mcp.WithArray("required_skills", mcp.Required(), mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Skills the role requires")),
	), tools.AnalyzeResume)

	return s
}

func (t *Tools) ExtractJDKeywords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jd, err := req.RequireString("jd")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	keywords, err := t.keywords.ExtractKeywords(ctx, jd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if keywords == nil {
		keywords = []string{}
	}
	return jsonResult(map[string]any{"filtered_keywords": keywords})
}

func (t *Tools) CompareSkills(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	extracted, err := req.RequireStringSlice("extracted_skills")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	required, err := req.RequireStringSlice("required_skills")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(required) == 0 {
		return mcp.NewToolResultError("required_skills must not be empty"), nil
	}

	cmp := usecase.CompareSkills(extracted, required)
	return jsonResult(map[string]any{
		"matchScore":    usecase.MatchScore(cmp),
		"matchedSkills": cmp.Matched,
		"missingSkills": cmp.Missing,
	})
}

func (t *Tools) AnalyzeResume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	required, err := req.RequireStringSlice("required_skills")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read %s: %v", path, err)), nil
	}
	records, err := t.analyzer.AnalyzeResumes(ctx, []domain.ResumeFile{{
		Name:    filepath.Base(path),
		Size:    int64(len(content)),
		Content: content,
	}}, required)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultError("analysis returned no record"), nil
	}
	return jsonResult(records[0])
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
