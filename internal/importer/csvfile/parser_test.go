package csvfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/libry/internal/importer/csvfile"
)

func TestParser_Goodreads(t *testing.T) {
	csv := `bookID,title,authors,average_rating,isbn,isbn13,language_code,  num_pages,ratings_count,text_reviews_count,publication_date,publisher
1,Harry Potter and the Half-Blood Prince (Harry Potter  #6),J.K. Rowling/Mary GrandPré,4.57,0439785960,9780439785969,eng,652,2095690,27591,9/16/2006,Scholastic Inc.
4,"Harry Potter and the Chamber of Secrets (Harry Potter  #2)",J.K. Rowling,4.42,0439554896,9780439554893,eng,352,6333,244,11/1/2003,Scholastic
5,,Nobody,0,,,eng,0,0,0,1/1/2000,Nowhere
`

	items, layout, err := csvfile.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "goodreads", layout)
	require.Len(t, items, 2)

	assert.Equal(t, "Harry Potter and the Half-Blood Prince (Harry Potter  #6)", items[0].Title)
	assert.Equal(t, "J.K. Rowling/Mary GrandPré", items[0].Authors)
	assert.Equal(t, "0439785960", items[0].ISBN)
	assert.Equal(t, "Scholastic Inc.", items[0].Publisher)
	assert.Equal(t, 652, items[0].Pages)
	assert.Nil(t, items[0].Stock)

	assert.Equal(t, 352, items[1].Pages)
}

func TestParser_NativeSemicolon(t *testing.T) {
	csv := "Title;Authors;ISBN;Publisher;Num_Pages;Stock\n" +
		"Dune;Frank Herbert;0441013597;Ace;604;3\n" +
		"Emma;Jane Austen;;;;\n"

	items, layout, err := csvfile.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "native", layout)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Stock)
	assert.Equal(t, 3, *items[0].Stock)
	assert.Equal(t, 604, items[0].Pages)

	assert.Nil(t, items[1].Stock)
	assert.Equal(t, 0, items[1].Pages)
}

func TestParser_HeaderAfterPreamble(t *testing.T) {
	csv := "Library export\nGenerated 2024-01-01\n\ntitle,authors\nThe Hobbit,J.R.R. Tolkien\n"

	items, _, err := csvfile.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "The Hobbit", items[0].Title)
}

func TestParser_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte("title;authors\nLes Misérables;Victor Hugo\nCien años de soledad;Gabriel García Márquez\n"))
	require.NoError(t, err)

	items, _, err := csvfile.NewParser().Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Les Misérables", items[0].Title)
	assert.Equal(t, "Gabriel García Márquez", items[1].Authors)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "UnknownLayout",
			input:   "date,amount\n2024-01-01,10\n",
			wantErr: "no known catalog layout",
		},
		{
			name:    "InvalidStock",
			input:   "title,authors,stock\nDune,Frank Herbert,many\n",
			wantErr: "row 2: invalid stock",
		},
		{
			name:    "NegativeStock",
			input:   "title,authors,stock\nDune,Frank Herbert,2\nEmma,Jane Austen,-1\n",
			wantErr: "row 3: invalid stock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := csvfile.NewParser().Parse(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
