package sheet_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/contas/internal/encoding"
	"github.com/MrJamesThe3rd/contas/internal/entry"
	"github.com/MrJamesThe3rd/contas/internal/importer/sheet"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestParser_Portuguese(t *testing.T) {
	csv := `Contas a pagar e receber - junho/2024

Tipo;Contato;Categoria;Descrição;Emissão;Vencimento;Valor;Tags;Observações
Pagar;Imobiliária Central;Aluguel;Aluguel sala 12;01/06/2024;10/06/2024;R$ 2.500,00;fixo, escritório;contrato 2023
Receber;Padaria Pão Quente;Vendas;NF 1234;05/06/2024;2024-06-20;1.234,56;;
`

	res, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, "contas-pt", res.Profile)
	assert.Equal(t, encoding.UTF8, res.Charset)

	first := res.Rows[0]
	assert.Equal(t, 4, first.Line)
	assert.Equal(t, entry.TypePayable, first.Type)
	assert.Equal(t, "Imobiliária Central", first.Contact)
	assert.Equal(t, "Aluguel", first.Category)
	assert.Equal(t, "Aluguel sala 12", first.Description)
	assert.Equal(t, date(2024, 6, 1), first.IssueDate)
	assert.Equal(t, date(2024, 6, 10), first.DueDate)
	assertAmount(t, "2500", first.Amount)
	assert.Equal(t, []string{"fixo", "escritório"}, first.Tags)
	require.NotNil(t, first.Notes)
	assert.Equal(t, "contrato 2023", *first.Notes)

	second := res.Rows[1]
	assert.Equal(t, entry.TypeReceivable, second.Type)
	assert.Equal(t, date(2024, 6, 20), second.DueDate)
	assertAmount(t, "1234.56", second.Amount)
	assert.Empty(t, second.Tags)
	assert.Nil(t, second.Notes)
}

func TestParser_EnglishCommaSeparated(t *testing.T) {
	csv := `Type,Contact,Category,Description,Issue Date,Due Date,Amount
payable,Acme Inc,Software,License renewal,2024-05-30,2024-06-15,199.90
`

	res, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	assert.Equal(t, "contas-en", res.Profile)
	assert.Equal(t, entry.TypePayable, res.Rows[0].Type)
	assertAmount(t, "199.90", res.Rows[0].Amount)
	assert.Equal(t, date(2024, 5, 30), res.Rows[0].IssueDate)
}

func TestParser_SignedAmountDecidesType(t *testing.T) {
	csv := `Data;Contato;Descrição;Valor
10/06/2024;Copel;Conta de luz;-389,12
11/06/2024;Cliente Silva;Serviço prestado;800,00
`

	res, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, "extrato-pt", res.Profile)
	assert.Equal(t, entry.TypePayable, res.Rows[0].Type)
	assertAmount(t, "389.12", res.Rows[0].Amount)
	assert.Equal(t, res.Rows[0].DueDate, res.Rows[0].IssueDate)
	assert.Equal(t, entry.TypeReceivable, res.Rows[1].Type)
}

func TestParser_RowErrors(t *testing.T) {
	csv := `Tipo;Contato;Descrição;Vencimento;Valor
Pagar;Acme;Ok;10/06/2024;10,00
Transferir;Acme;Tipo ruim;10/06/2024;10,00
Pagar;Acme;Data ruim;31/02/2024;10,00
Pagar;Acme;Valor zero;10/06/2024;0,00
Pagar;;Sem contato;10/06/2024;5,00
Pagar;Acme;Valor ruim;10/06/2024;dez reais
Pagar;Acme;Meio centavo;10/06/2024;12,345
`

	res, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Len(t, res.Errors, 6)

	lines := make([]int, len(res.Errors))
	for i, e := range res.Errors {
		lines[i] = e.Line
	}

	assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, lines)
	assert.Contains(t, res.Errors[0].Error(), "line 3: unknown entry type")
	assert.Contains(t, res.Errors[3].Message, "missing contact")
	assert.Contains(t, res.Errors[5].Message, "fractions of a cent")
}

func TestParser_Windows1252(t *testing.T) {
	utf8CSV := "Tipo;Contato;Descrição;Vencimento;Valor\nPagar;Água & Esgoto;Conta de água;10/06/2024;89,90\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	res, err := sheet.NewParser().Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	assert.NotEqual(t, encoding.UTF8, res.Charset)
	assert.Equal(t, "Água & Esgoto", res.Rows[0].Contact)
}

func TestParser_SkipsBlankAndTotalRows(t *testing.T) {
	csv := `Tipo;Contato;Descrição;Vencimento;Valor
Pagar;Acme;Serviço;10/06/2024;10,00
;;;;
Total;;;;10,00
`

	res, err := sheet.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, res.Rows, 1)
	assert.Empty(t, res.Errors)
}

func TestParser_UnknownLayout(t *testing.T) {
	_, err := sheet.NewParser().Parse(strings.NewReader("Data mov.;Montante\n30-01-2026;-10,00\n"))

	assert.ErrorIs(t, err, sheet.ErrNoProfile)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1.234,56", want: "1234.56"},
		{in: "R$ 10,00", want: "10"},
		{in: "-1.234.567,89", want: "-1234567.89"},
		{in: "199.90", want: "199.9"},
		{in: "42", want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := sheet.ParseAmount(tt.in)
			require.NoError(t, err)
			assertAmount(t, tt.want, got)
		})
	}

	_, err := sheet.ParseAmount("abc")
	assert.Error(t, err)
}
