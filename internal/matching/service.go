package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidRule = errors.New("invalid matching rule")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, description string) (uuid.UUID, error)
	SaveRule(ctx context.Context, pattern string, categoryID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest learned pattern contained in description,
// compared case-insensitively. Returns uuid.Nil if no pattern matches.
func (s *Service) Suggest(ctx context.Context, description string) (uuid.UUID, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return uuid.Nil, nil
	}

	return s.repo.FindMatch(ctx, description)
}

// Learn remembers that descriptions containing pattern belong to categoryID. Learning an
// existing pattern again replaces its category.
func (s *Service) Learn(ctx context.Context, pattern string, categoryID uuid.UUID) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return fmt.Errorf("%w: pattern is required", ErrInvalidRule)
	}

	if categoryID == uuid.Nil {
		return fmt.Errorf("%w: category is required", ErrInvalidRule)
	}

	return s.repo.SaveRule(ctx, pattern, categoryID)
}
