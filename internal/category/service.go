package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	Create(ctx context.Context, c *Category) error
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, typ *Type) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEntries(ctx context.Context, id uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Description string
	Type        Type
}

type UpdateParams struct {
	Name        *string
	Description *string
	Type        *Type
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", ErrInvalidRequest, params.Type)
	}

	c := &Category{
		Name:        name,
		Description: strings.TrimSpace(params.Description),
		Type:        params.Type,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.Get(ctx, id)
}

// FindByName looks a category up by its case-insensitive name.
func (s *Service) FindByName(ctx context.Context, name string) (*Category, error) {
	return s.repo.FindByName(ctx, strings.TrimSpace(name))
}

// List returns live categories ordered by name, optionally restricted to one type.
func (s *Service) List(ctx context.Context, typ *Type) ([]*Category, error) {
	if typ != nil && !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", ErrInvalidRequest, *typ)
	}

	return s.repo.List(ctx, typ)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Category, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
		}

		c.Name = name
	}

	if params.Description != nil {
		c.Description = strings.TrimSpace(*params.Description)
	}

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown category type %q", ErrInvalidRequest, *params.Type)
		}

		c.Type = *params.Type
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountEntries(ctx, id)
	if err != nil {
		return fmt.Errorf("counting category entries: %w", err)
	}

	if n > 0 {
		return ErrInUse
	}

	return s.repo.Delete(ctx, id)
}
