package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/contas/internal/entry"
)

const (
	entriesSheet  = "Lançamentos"
	paymentsSheet = "Pagamentos"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	entryHeaders = []any{
		"ID", "Tipo", "Descrição", "Emissão", "Vencimento", "Valor", "Pago", "Restante",
		"Status", "Urgência", "Tags", "Observações",
	}
	paymentHeaders = []any{"Lançamento", "Descrição", "Data", "Valor", "Forma", "Observação"}
)

type EntrySource interface {
	ListAll(ctx context.Context, filter entry.ListFilter) ([]*entry.Entry, error)
	Payments(ctx context.Context, entryID uuid.UUID) ([]*entry.Payment, error)
}

// Service writes entries and their payments to XLSX workbooks.
type Service struct {
	entries EntrySource
	now     func() time.Time
}

func NewService(entries EntrySource) *Service {
	return &Service{entries: entries, now: time.Now}
}

// Filename is the suggested attachment name for an export made now.
func (s *Service) Filename() string {
	return fmt.Sprintf("contas_%s.xlsx", s.now().Format("20060102"))
}

// Export writes every entry matching filter, with paid total, remaining balance, status
// and urgency as of today, plus a second sheet with their payments. It returns the
// number of entries written.
func (s *Service) Export(ctx context.Context, filter entry.ListFilter, w io.Writer) (int, error) {
	entries, err := s.entries.ListAll(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing entries: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return 0, err
	}

	if err := f.SetSheetName("Sheet1", entriesSheet); err != nil {
		return 0, fmt.Errorf("naming entries sheet: %w", err)
	}

	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return 0, fmt.Errorf("creating payments sheet: %w", err)
	}

	if err := writeRow(f, entriesSheet, 1, entryHeaders, styles.header); err != nil {
		return 0, err
	}

	if err := writeRow(f, paymentsSheet, 1, paymentHeaders, styles.header); err != nil {
		return 0, err
	}

	today := entry.DateOnly(s.now())
	paymentRow := 2

	for i, e := range entries {
		if err := writeRow(f, entriesSheet, i+2, entryRow(e, today), 0); err != nil {
			return 0, err
		}

		payments, err := s.entries.Payments(ctx, e.ID)
		if err != nil {
			return 0, fmt.Errorf("listing payments for entry %s: %w", e.ID, err)
		}

		for _, p := range payments {
			if err := writeRow(f, paymentsSheet, paymentRow, paymentRowValues(e, p), 0); err != nil {
				return 0, err
			}

			paymentRow++
		}
	}

	if err := styles.apply(f, len(entries)+1, paymentRow-1); err != nil {
		return 0, err
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("writing workbook: %w", err)
	}

	return len(entries), nil
}

func entryRow(e *entry.Entry, today time.Time) []any {
	notes := ""
	if e.Notes != nil {
		notes = *e.Notes
	}

	return []any{
		e.ID.String(),
		string(e.Type),
		e.Description,
		e.IssueDate,
		e.DueDate,
		e.Amount.InexactFloat64(),
		e.PaidTotal.InexactFloat64(),
		e.Remaining().InexactFloat64(),
		string(e.Status),
		string(entry.Classify(e.Status, e.DueDate, today)),
		strings.Join(e.Tags, ", "),
		notes,
	}
}

func paymentRowValues(e *entry.Entry, p *entry.Payment) []any {
	note := ""
	if p.Note != nil {
		note = *p.Note
	}

	return []any{
		e.ID.String(),
		e.Description,
		p.PaidAt,
		p.Amount.InexactFloat64(),
		string(p.Method),
		note,
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}

	if style != 0 {
		end, _ := excelize.CoordinatesToCellName(len(values), row)
		if err := f.SetCellStyle(sheet, cell, end, style); err != nil {
			return fmt.Errorf("styling %s row %d: %w", sheet, row, err)
		}
	}

	return nil
}

type styles struct {
	header int
	date   int
	money  int
}

func newStyles(f *excelize.File) (*styles, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	dateFmt := "dd/mm/yyyy"

	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("creating date style: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("creating money style: %w", err)
	}

	return &styles{header: header, date: date, money: money}, nil
}

// apply formats date and money columns down to the last written row of each sheet.
func (st *styles) apply(f *excelize.File, lastEntryRow, lastPaymentRow int) error {
	ranges := []struct {
		sheet    string
		from, to string
		last     int
		style    int
	}{
		{entriesSheet, "D", "E", lastEntryRow, st.date},
		{entriesSheet, "F", "H", lastEntryRow, st.money},
		{paymentsSheet, "C", "C", lastPaymentRow, st.date},
		{paymentsSheet, "D", "D", lastPaymentRow, st.money},
	}

	for _, r := range ranges {
		if r.last < 2 {
			continue
		}

		if err := f.SetCellStyle(r.sheet, fmt.Sprintf("%s2", r.from), fmt.Sprintf("%s%d", r.to, r.last), r.style); err != nil {
			return fmt.Errorf("styling %s: %w", r.sheet, err)
		}
	}

	widths := []struct {
		sheet    string
		from, to string
		width    float64
	}{
		{entriesSheet, "A", "A", 38},
		{entriesSheet, "C", "C", 36},
		{entriesSheet, "D", "J", 13},
		{entriesSheet, "K", "L", 28},
		{paymentsSheet, "A", "A", 38},
		{paymentsSheet, "B", "B", 36},
		{paymentsSheet, "C", "F", 13},
	}

	for _, w := range widths {
		if err := f.SetColWidth(w.sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("sizing %s columns: %w", w.sheet, err)
		}
	}

	return nil
}
