// Package main is the resumectl command line: offline résumé screening and
// job-description keyword extraction against the local models.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kirillkom/resume-screener/internal/bootstrap"
	"github.com/kirillkom/resume-screener/internal/config"
	"github.com/kirillkom/resume-screener/internal/core/ports"
	"github.com/kirillkom/resume-screener/internal/observability/logging"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "resumectl",
	Short:         "Screen résumés and extract job-description skills",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// screener is the slice of the core the commands need.
type screener struct {
	analyzer ports.ResumeAnalyzer
	keywords ports.JDKeywordExtractor
	close    func()
}

// newScreener is swapped in tests.
var newScreener = func(ctx context.Context) (*screener, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	// stdout carries command output.
	slog.SetDefault(logging.NewStderrLogger("resumectl", cfg.LogLevel))
	core, err := bootstrap.NewCore(ctx, cfg, bootstrap.CoreOptions{})
	if err != nil {
		return nil, err
	}
	return &screener{analyzer: core.Analyzer, keywords: core.JDKeywords, close: core.Close}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
