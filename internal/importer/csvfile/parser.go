// Package csvfile turns uploaded catalog spreadsheets into import items.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/MrJamesThe3rd/libry/internal/encoding"
	"github.com/MrJamesThe3rd/libry/internal/importer"
)

var ErrUnknownLayout = errors.New("no known catalog layout found: expected a header with at least title and authors")

var separators = []rune{',', ';'}

// Parser reads catalog CSV files. The encoding, separator and header layout are detected.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the items of the file along with the name of the matched layout.
func (p *Parser) Parse(r io.Reader) ([]importer.Item, string, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, "", fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}

	for _, sep := range separators {
		rows, err := readRows(data, sep)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		items, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, profile.Name, err
		}

		return items, profile.Name, nil
	}

	return nil, "", ErrUnknownLayout
}

func readRows(data []byte, sep rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps normalised column names to their position in the row.
type colIndex map[string]int

func (c colIndex) get(row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// detectProfile returns the first profile whose required columns appear in some row,
// together with that row's column index and position.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex, len(row))

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, seen := cols[name]; name != "" && !seen {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matches(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matches(p *Profile, cols colIndex) bool {
	for _, name := range p.Required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows. headerRowNum is the 0-based index of the header line.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]importer.Item, error) {
	var items []importer.Item

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		title := cols.get(row, p.TitleCol)
		if title == "" {
			continue
		}

		item := importer.Item{
			Title:     title,
			Authors:   cols.get(row, p.AuthorsCol),
			ISBN:      cols.get(row, p.ISBNCol),
			Publisher: cols.get(row, p.PublisherCol),
			Pages:     parseCount(cols.get(row, p.PagesCol)),
		}

		if s := cols.get(row, p.StockCol); s != "" {
			stock, err := strconv.Atoi(s)
			if err != nil || stock < 0 {
				return nil, fmt.Errorf("row %d: invalid stock %q", rowNum, s)
			}

			item.Stock = &stock
		}

		items = append(items, item)
	}

	return items, nil
}

// parseCount reads a non-negative whole number, treating anything else as 0.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
