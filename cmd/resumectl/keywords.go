package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [JD text]",
	Short: "Extract vocabulary skills from a job description",
	Long:  "Reads a job description from --file, the arguments or stdin and prints the skills found in the controlled vocabulary, one per line.",
	RunE:  runKeywords,
}

var (
	keywordsFile string
	keywordsJSON bool
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsFile, "file", "i", "", "Path to a job description text file")
	keywordsCmd.Flags().BoolVar(&keywordsJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	jd, err := readJobDescription(cmd, args)
	if err != nil {
		return err
	}

	s, err := newScreener(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	keywords, err := s.keywords.ExtractKeywords(cmd.Context(), jd)
	if err != nil {
		return err
	}
	if keywords == nil {
		keywords = []string{}
	}
	if keywordsJSON {
		return writeJSON(cmd.OutOrStdout(), map[string][]string{"filtered_keywords": keywords})
	}
	for _, k := range keywords {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), k)
	}
	return nil
}

func readJobDescription(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case keywordsFile != "":
		raw, err := os.ReadFile(keywordsFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", keywordsFile, err)
		}
		return string(raw), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
}
