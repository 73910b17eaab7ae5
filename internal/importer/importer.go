package importer

import (
	"errors"

	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/importer/sheet"
)

// ErrRejected means at least one row was invalid and nothing was written.
var ErrRejected = errors.New("import rejected")

type Result struct {
	Profile     string
	Charset     string
	Entries     []*entry.Entry
	NewContacts int
	Errors      []sheet.RowError
}
