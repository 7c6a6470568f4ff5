package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/core/ports"
)

type JobCriteriaUseCase struct {
	store ports.JobCriteriaStore
}

func NewJobCriteriaUseCase(store ports.JobCriteriaStore) *JobCriteriaUseCase {
	return &JobCriteriaUseCase{store: store}
}

func (uc *JobCriteriaUseCase) SaveSkills(ctx context.Context, skills []string) (*domain.JobCriteria, error) {
	const op = "save job criteria"
	if len(skills) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, errors.New("jd_skills is empty"))
	}
	cleaned := make([]string, 0, len(skills))
	for i, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("skill %d is blank", i))
		}
		cleaned = append(cleaned, skill)
	}

	criteria := &domain.JobCriteria{
		ID:        uuid.NewString(),
		Skills:    cleaned,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.store.SaveJobCriteria(ctx, criteria); err != nil {
		return nil, fmt.Errorf("persist job criteria: %w", err)
	}
	return criteria, nil
}
