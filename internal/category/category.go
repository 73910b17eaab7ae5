package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

var (
	ErrNotFound       = errors.New("category not found")
	ErrInUse          = errors.New("category is referenced by entries")
	ErrInvalidRequest = errors.New("invalid category")
)

type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	Type        Type
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
