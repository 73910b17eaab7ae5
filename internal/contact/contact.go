package contact

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeCustomer Type = "customer"
	TypeSupplier Type = "supplier"
)

func (t Type) Valid() bool {
	return t == TypeCustomer || t == TypeSupplier
}

var (
	ErrNotFound       = errors.New("contact not found")
	ErrInUse          = errors.New("contact is referenced by entries")
	ErrInvalidRequest = errors.New("invalid contact")
)

type Contact struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Document  string
	Type      Type
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
