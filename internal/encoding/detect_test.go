package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/libry/internal/encoding"
)

const header = "title;authors\nLes Misérables;Victor Hugo\nCrónica;García Márquez\n"

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
	}{
		{"UTF8", []byte(header)},
		{"UTF8WithBOM", append([]byte{0xEF, 0xBB, 0xBF}, header...)},
		{"Windows1252", latin1},
		{"UTF16LE", utf16le},
		{"UTF16BE", utf16be},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, header, readAll(t, tt.input))
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Empty(t, readAll(t, nil))
}

func TestNewUTF8Reader_LongUTF8Input(t *testing.T) {
	// Multi-byte runes straddle the detection window.
	long := strings.Repeat("é", 5000)
	assert.Equal(t, long, readAll(t, []byte(long)))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, encoding.UTF8, encoding.Detect([]byte("plain ascii")))
	assert.Equal(t, encoding.UTF8BOM, encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, encoding.UTF16LE, encoding.Detect([]byte{0xFF, 0xFE, 'a', 0}))
	assert.Equal(t, encoding.UTF16BE, encoding.Detect([]byte{0xFE, 0xFF, 0, 'a'}))

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Café crème brûlée à la carte, très élégant"))
	require.NoError(t, err)
	assert.NotEqual(t, encoding.UTF8, encoding.Detect(latin1))
}
