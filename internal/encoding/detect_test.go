package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/contas/internal/encoding"
)

const header = "Descrição;Vencimento;Valor\n"

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader(t *testing.T) {
	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset encoding.Charset
	}

	// Single-byte charsets are guessed heuristically, so only the decoded text is checked.
	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte(header + "Aluguel março;05/03/2024;1.500,00\n"),
			want:        header + "Aluguel março;05/03/2024;1.500,00\n",
			wantCharset: encoding.UTF8,
		},
		{
			name: "Windows1252",
			// ç = 0xE7, ã = 0xE3
			input: []byte{'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';', 'V', 'a', 'l', 'o', 'r', '\n'},
			want:  "Descrição;Valor\n",
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte(header)...),
			want:        header,
			wantCharset: encoding.UTF8BOM,
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, 'V', 0, 'a', 0, 'l', 0, 'o', 0, 'r', 0, '\n', 0},
			want:        "Valor\n",
			wantCharset: encoding.UTF16LE,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := readAll(t, tt.input)

			assert.Equal(t, tt.want, got)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestNewUTF8Reader_LongInput(t *testing.T) {
	var buf bytes.Buffer

	buf.WriteString(header)

	for range 500 {
		buf.WriteString("Conta de água;10/01/2024;89,90\n")
	}

	got, charset := readAll(t, buf.Bytes())

	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, buf.String(), got)
}
