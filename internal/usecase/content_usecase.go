package usecase

import (
	"context"
	"errors"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"
)

type contentUsecase struct {
	repo domain.ContentRepository
}

func NewContentUsecase(repo domain.ContentRepository) domain.ContentUsecase {
	return &contentUsecase{repo: repo}
}

func (uc *contentUsecase) GetPortfolio(ctx context.Context, locale domain.Locale) (*domain.Portfolio, error) {
	p, err := uc.repo.Get(ctx, locale)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Locale not supported")
		}
		return nil, apperror.Internal(err)
	}
	return p, nil
}

// GetSection returns one named part of the portfolio. Skills come grouped by category.
func (uc *contentUsecase) GetSection(ctx context.Context, locale domain.Locale, section string) (interface{}, error) {
	p, err := uc.GetPortfolio(ctx, locale)
	if err != nil {
		return nil, err
	}

	switch section {
	case domain.SectionExperience:
		return p.Experiences, nil
	case domain.SectionProjects:
		return p.Projects, nil
	case domain.SectionSkills:
		return p.SkillGroups(), nil
	}
	return nil, apperror.NotFound("Section not found")
}
