package sheet

// column identifies a logical field of an entries sheet.
type column int

const (
	colType column = iota
	colContact
	colCategory
	colDescription
	colIssueDate
	colDueDate
	colAmount
	colTags
	colNotes
)

// Profile maps the header names of one spreadsheet layout to fields. When a profile has
// no type column the amount sign decides: negative amounts are payables.
type Profile struct {
	Name     string
	Headers  map[column][]string
	Required []column
}

func (p Profile) hasType() bool {
	_, ok := p.Headers[colType]
	return ok
}

// profiles is tried in order; layouts with more required columns come first.
var profiles = []Profile{
	{
		Name: "contas-pt",
		Headers: map[column][]string{
			colType:        {"tipo"},
			colContact:     {"contato", "fornecedor/cliente", "favorecido"},
			colCategory:    {"categoria"},
			colDescription: {"descrição", "descricao", "histórico"},
			colIssueDate:   {"emissão", "emissao", "data de emissão"},
			colDueDate:     {"vencimento", "data de vencimento"},
			colAmount:      {"valor", "valor (r$)"},
			colTags:        {"tags", "etiquetas"},
			colNotes:       {"observações", "observacoes", "obs"},
		},
		Required: []column{colType, colContact, colDescription, colDueDate, colAmount},
	},
	{
		Name: "contas-en",
		Headers: map[column][]string{
			colType:        {"type"},
			colContact:     {"contact"},
			colCategory:    {"category"},
			colDescription: {"description"},
			colIssueDate:   {"issue date", "issuedate"},
			colDueDate:     {"due date", "duedate"},
			colAmount:      {"amount"},
			colTags:        {"tags"},
			colNotes:       {"notes"},
		},
		Required: []column{colType, colContact, colDescription, colDueDate, colAmount},
	},
	{
		Name: "extrato-pt",
		Headers: map[column][]string{
			colContact:     {"contato", "favorecido"},
			colCategory:    {"categoria"},
			colDescription: {"descrição", "descricao", "histórico"},
			colDueDate:     {"vencimento", "data"},
			colAmount:      {"valor"},
		},
		Required: []column{colContact, colDescription, colDueDate, colAmount},
	},
}
