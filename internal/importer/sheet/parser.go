package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/contas/internal/encoding"
	"github.com/MrJamesThe3rd/contas/internal/entry"
)

var (
	ErrNoProfile = errors.New("no known entries layout found: expected columns such as Tipo, Contato, Descrição, Vencimento and Valor")
	ErrMalformed = errors.New("malformed csv")
)

// Row is one entry read from a sheet, before contact and category names are resolved.
type Row struct {
	Line        int
	Type        entry.Type
	Contact     string
	Category    string
	Description string
	IssueDate   time.Time
	DueDate     time.Time
	Amount      decimal.Decimal
	Tags        []string
	Notes       *string
}

// RowError reports why a line of the sheet could not become an entry. Line is 1-based.
type RowError struct {
	Line    int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type Result struct {
	Profile string
	Charset enc.Charset
	Rows    []Row
	Errors  []RowError
}

// Parser reads entries from CSV exports of accounts spreadsheets. The layout is detected
// from the header row and the separator from the first line.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectSeparator(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		rows  [][]string
		lines []int
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoProfile
	}

	result := &Result{Profile: profile.Name, Charset: charset}

	for i, row := range rows[headerIdx+1:] {
		line := lines[headerIdx+1+i]

		if blank(row) || summaryRow(row, cols) {
			continue
		}

		parsed, err := parseRow(profile, cols, row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		parsed.Line = line
		result.Rows = append(result.Rows, parsed)
	}

	return result, nil
}

// detectSeparator picks ';' or ',' by which occurs more often on the first non-empty line.
func detectSeparator(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte(",")) > bytes.Count(line, []byte(";")) {
			return ','
		}

		return ';'
	}

	return ';'
}

// colIndex maps a field to its index in the row.
type colIndex map[column]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		names := make(map[string]int, len(row))

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				names[name] = i
			}
		}

		for i := range profiles {
			if cols, ok := matchProfile(&profiles[i], names); ok {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchProfile(p *Profile, names map[string]int) (colIndex, bool) {
	cols := make(colIndex)

	for col, aliases := range p.Headers {
		for _, alias := range aliases {
			if idx, ok := names[alias]; ok {
				cols[col] = idx
				break
			}
		}
	}

	for _, col := range p.Required {
		if _, ok := cols[col]; !ok {
			return nil, false
		}
	}

	return cols, true
}

func parseRow(p *Profile, cols colIndex, row []string) (Row, error) {
	var out Row

	out.Contact = cellValue(row, cols, colContact)
	if out.Contact == "" {
		return out, errors.New("missing contact")
	}

	out.Description = cellValue(row, cols, colDescription)
	if out.Description == "" {
		return out, errors.New("missing description")
	}

	due, err := ParseDate(cellValue(row, cols, colDueDate))
	if err != nil {
		return out, fmt.Errorf("due date: %w", err)
	}

	out.DueDate = due
	out.IssueDate = due

	if s := cellValue(row, cols, colIssueDate); s != "" {
		issue, err := ParseDate(s)
		if err != nil {
			return out, fmt.Errorf("issue date: %w", err)
		}

		out.IssueDate = issue
	}

	amount, err := ParseAmount(cellValue(row, cols, colAmount))
	if err != nil {
		return out, err
	}

	if p.hasType() {
		typ, err := parseType(cellValue(row, cols, colType))
		if err != nil {
			return out, err
		}

		out.Type = typ
		out.Amount = amount.Abs()
	} else {
		out.Type = entry.TypeReceivable
		if amount.IsNegative() {
			out.Type = entry.TypePayable
		}

		out.Amount = amount.Abs()
	}

	if !out.Amount.IsPositive() {
		return out, fmt.Errorf("amount must be positive, got %s", amount.StringFixed(2))
	}

	if !entry.ValidAmount(out.Amount) {
		return out, fmt.Errorf("amount %s has fractions of a cent", amount.String())
	}

	out.Category = cellValue(row, cols, colCategory)
	out.Tags = splitTags(cellValue(row, cols, colTags))

	if notes := cellValue(row, cols, colNotes); notes != "" {
		out.Notes = &notes
	}

	return out, nil
}

func parseType(s string) (entry.Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pagar", "a pagar", "despesa", "payable", "expense":
		return entry.TypePayable, nil
	case "receber", "a receber", "receita", "receivable", "income":
		return entry.TypeReceivable, nil
	}

	return "", fmt.Errorf("unknown entry type %q", s)
}

func splitTags(s string) []string {
	var tags []string

	for tag := range strings.FieldsFuncSeq(s, func(r rune) bool { return r == ',' || r == '|' }) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}

func cellValue(row []string, cols colIndex, col column) string {
	idx, ok := cols[col]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// summaryRow reports footer lines such as totals, which carry neither contact nor
// description.
func summaryRow(row []string, cols colIndex) bool {
	return cellValue(row, cols, colContact) == "" && cellValue(row, cols, colDescription) == ""
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
