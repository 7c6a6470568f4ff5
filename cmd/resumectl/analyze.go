package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/infrastructure/report/xlsx"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] RESUME.pdf...",
	Short: "Score PDF résumés against required skills",
	Long:  "Extracts candidate name, contact details and skills from each PDF and reports matched and missing required skills with a match score.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeSkills []string
	analyzeFormat string
	analyzeOut    string
)

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeSkills, "skills", "s", nil, "Required skills, comma separated (required)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "table", "Output format: table, json or xlsx")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output file (required for xlsx)")

	if err := analyzeCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(analyzeFormat)
	switch format {
	case "table", "json":
	case "xlsx":
		if analyzeOut == "" {
			return errors.New("--out is required for xlsx output")
		}
	default:
		return fmt.Errorf("unknown format %q", analyzeFormat)
	}

	files := make([]domain.ResumeFile, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, domain.ResumeFile{Name: filepath.Base(path), Size: int64(len(content)), Content: content})
	}

	s, err := newScreener(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	records, err := s.analyzer.AnalyzeResumes(cmd.Context(), files, analyzeSkills)
	if err != nil {
		return err
	}

	if format == "xlsx" {
		report, err := xlsx.NewExporter().WriteAnalysisReport(records)
		if err != nil {
			return err
		}
		if err := os.WriteFile(analyzeOut, report, 0o644); err != nil {
			return fmt.Errorf("write report %s: %w", analyzeOut, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(records), analyzeOut)
		return nil
	}

	out := cmd.OutOrStdout()
	if analyzeOut != "" {
		f, err := os.Create(analyzeOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", analyzeOut, err)
		}
		defer f.Close()
		out = f
	}
	if format == "json" {
		return writeJSON(out, records)
	}
	return writeTable(out, records)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, records []domain.AnalysisRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tFILE\tCANDIDATE\tEMAIL\tSCORE\tMISSING")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.FileName, r.CandidateName, r.Email, r.MatchScore, strings.Join(r.MissingSkills, ","))
	}
	return tw.Flush()
}
