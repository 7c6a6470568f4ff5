package usecase

import (
	"strings"

	"github.com/kirillkom/resume-screener/internal/core/domain"
)

// CompareSkills checks every required skill against the extracted set by
// case-insensitive exact match. Matched and missing keep the order (and any
// duplicates) of the required list.
func CompareSkills(extracted []string, required []string) domain.SkillComparison {
	have := make(map[string]struct{}, len(extracted))
	for _, skill := range extracted {
		have[strings.ToLower(skill)] = struct{}{}
	}

	result := domain.SkillComparison{
		Matched: make([]string, 0, len(required)),
		Missing: make([]string, 0, len(required)),
	}
	for _, skill := range required {
		normalized := strings.ToLower(skill)
		if _, ok := have[normalized]; ok {
			result.Matched = append(result.Matched, normalized)
			continue
		}
		result.Missing = append(result.Missing, normalized)
	}

	if len(required) > 0 {
		result.Score = 100.0 * float64(len(result.Matched)) / float64(len(required))
	}
	return result
}

// MatchScore is the integer score shown on analysis records; fractions are truncated.
func MatchScore(cmp domain.SkillComparison) int {
	return int(cmp.Score)
}
