package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contas/internal/category"
	"github.com/MrJamesThe3rd/contas/internal/contact"
	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/importer/sheet"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Parser interface {
	Parse(r io.Reader) (*sheet.Result, error)
}

type ContactResolver interface {
	Resolve(ctx context.Context, name string, fallback contact.Type) (*contact.Contact, bool, error)
}

type CategoryFinder interface {
	FindByName(ctx context.Context, name string) (*category.Category, error)
}

type CategorySuggester interface {
	Suggest(ctx context.Context, description string) (uuid.UUID, error)
}

type EntryCreator interface {
	CreateBatch(ctx context.Context, params []entry.CreateParams) ([]*entry.Entry, error)
}

type Service struct {
	parser     Parser
	contacts   ContactResolver
	categories CategoryFinder
	suggester  CategorySuggester
	entries    EntryCreator
}

func NewService(contacts ContactResolver, categories CategoryFinder, suggester CategorySuggester, entries EntryCreator) *Service {
	return &Service{
		parser:     sheet.NewParser(),
		contacts:   contacts,
		categories: categories,
		suggester:  suggester,
		entries:    entries,
	}
}

// WithParser replaces the sheet parser.
func (s *Service) WithParser(p Parser) *Service {
	s.parser = p
	return s
}

// Import creates one entry per sheet row. Categories are resolved by name or, when the
// cell is empty, by learned description rules. Any row error rejects the whole sheet
// before contacts or entries are written. Unknown contacts are created as suppliers for
// payables and customers for receivables.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	parsed, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Profile: parsed.Profile,
		Charset: string(parsed.Charset),
		Errors:  slices.Clone(parsed.Errors),
	}

	categoryIDs := make([]uuid.UUID, len(parsed.Rows))

	for i, row := range parsed.Rows {
		id, rowErr, err := s.resolveCategory(ctx, row)
		if err != nil {
			return nil, err
		}

		if rowErr != "" {
			result.Errors = append(result.Errors, sheet.RowError{Line: row.Line, Message: rowErr})
			continue
		}

		categoryIDs[i] = id
	}

	if len(result.Errors) > 0 {
		slices.SortStableFunc(result.Errors, func(a, b sheet.RowError) int { return a.Line - b.Line })
		return result, fmt.Errorf("%w: %d invalid rows", ErrRejected, len(result.Errors))
	}

	if len(parsed.Rows) == 0 {
		return result, nil
	}

	params := make([]entry.CreateParams, len(parsed.Rows))
	contactIDs := make(map[string]uuid.UUID)

	for i, row := range parsed.Rows {
		key := strings.ToLower(row.Contact)

		contactID, ok := contactIDs[key]
		if !ok {
			fallback := contact.TypeCustomer
			if row.Type == entry.TypePayable {
				fallback = contact.TypeSupplier
			}

			c, created, err := s.contacts.Resolve(ctx, row.Contact, fallback)
			if err != nil {
				return nil, fmt.Errorf("resolving contact on line %d: %w", row.Line, err)
			}

			if created {
				result.NewContacts++
			}

			contactID = c.ID
			contactIDs[key] = contactID
		}

		params[i] = entry.CreateParams{
			Type:        row.Type,
			ContactID:   contactID,
			CategoryID:  categoryIDs[i],
			Description: row.Description,
			IssueDate:   row.IssueDate,
			DueDate:     row.DueDate,
			Amount:      row.Amount,
			Currency:    entry.Currency,
			Tags:        row.Tags,
			Notes:       row.Notes,
		}
	}

	created, err := s.entries.CreateBatch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating entries: %w", err)
	}

	result.Entries = created

	return result, nil
}

// resolveCategory returns the category for row, or a row error message when none applies.
func (s *Service) resolveCategory(ctx context.Context, row sheet.Row) (uuid.UUID, string, error) {
	if row.Category != "" {
		c, err := s.categories.FindByName(ctx, row.Category)
		if errors.Is(err, category.ErrNotFound) {
			return uuid.Nil, fmt.Sprintf("unknown category %q", row.Category), nil
		}

		if err != nil {
			return uuid.Nil, "", fmt.Errorf("finding category on line %d: %w", row.Line, err)
		}

		return c.ID, "", nil
	}

	id, err := s.suggester.Suggest(ctx, row.Description)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("suggesting category on line %d: %w", row.Line, err)
	}

	if id == uuid.Nil {
		return uuid.Nil, fmt.Sprintf("no category given and none learned for %q", row.Description), nil
	}

	return id, "", nil
}
