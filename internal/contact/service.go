package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contact
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	Get(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindByName(ctx context.Context, name string) (*Contact, error)
	List(ctx context.Context, filter ListFilter) ([]*Contact, error)
	Update(ctx context.Context, c *Contact) error
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
	Name     string
	Email    string
	Phone    string
	Document string
	Type     Type
}

type UpdateParams struct {
	Name     *string
	Email    *string
	Phone    *string
	Document *string
	Type     *Type
}

type ListFilter struct {
	Type   *Type
	Search string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Contact, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown contact type %q", ErrInvalidRequest, params.Type)
	}

	c := &Contact{
		Name:     name,
		Email:    strings.TrimSpace(params.Email),
		Phone:    strings.TrimSpace(params.Phone),
		Document: strings.TrimSpace(params.Document),
		Type:     params.Type,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Contact, error) {
	return s.repo.Get(ctx, id)
}

// List returns live contacts ordered by name.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Contact, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Contact, error) {
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

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown contact type %q", ErrInvalidRequest, *params.Type)
		}

		c.Type = *params.Type
	}

	if params.Email != nil {
		c.Email = strings.TrimSpace(*params.Email)
	}

	if params.Phone != nil {
		c.Phone = strings.TrimSpace(*params.Phone)
	}

	if params.Document != nil {
		c.Document = strings.TrimSpace(*params.Document)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	return c, nil
}

// Delete soft-deletes a contact that no live entry references.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountEntries(ctx, id)
	if err != nil {
		return fmt.Errorf("counting contact entries: %w", err)
	}

	if n > 0 {
		return ErrInUse
	}

	return s.repo.Delete(ctx, id)
}

// Resolve returns the contact with the given name, creating it with fallback type when
// none exists. Names compare case-insensitively.
func (s *Service) Resolve(ctx context.Context, name string, fallback Type) (*Contact, bool, error) {
	existing, err := s.repo.FindByName(ctx, strings.TrimSpace(name))
	if err == nil {
		return existing, false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("finding contact: %w", err)
	}

	created, err := s.Create(ctx, CreateParams{Name: name, Type: fallback})
	if err != nil {
		return nil, false, err
	}

	return created, true, nil
}
