package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/libry/internal/importer"
	"github.com/MrJamesThe3rd/libry/internal/importer/csvfile"
)

const importTimeout = 2 * time.Minute

const defaultImportCount = 20

type importState int

const (
	importStateSourceSelect importState = iota
	importStateRemoteForm
	importStateFilePick
	importStatePreview
	importStateImporting
	importStateResult
)

type importSource string

const (
	sourceCatalog importSource = "Remote catalog"
	sourceCSV     importSource = "CSV file"
)

type importFields struct {
	count   string
	title   string
	authors string
}

type ImportModel struct {
	importService *importer.Service
	parser        *csvfile.Parser

	state        importState
	sourceCursor int
	sources      []importSource

	form       *huh.Form
	fields     *importFields
	filePicker filepicker.Model

	items   []importer.Item
	layout  string
	preview list.Model

	status string
	err    error
}

func NewImportModel(svc *importer.Service, parser *csvfile.Parser) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: svc,
		parser:        parser,
		sources:       []importSource{sourceCatalog, sourceCSV},
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Books" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Enter: import all | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateSourceSelect:
			return m.updateSourceSelect(msg)
		case importStatePreview:
			if msg.Type == tea.KeyEnter {
				m.state = importStateImporting
				m.status = fmt.Sprintf("Importing %d books...", len(m.items))

				return m, m.storeItemsCmd(m.items)
			}

			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)

			return m, cmd
		}

	case parsedMsg:
		if msg.err != nil {
			return m.finish(0, msg.err)
		}

		m.items = msg.items
		m.layout = msg.layout
		m.state = importStatePreview
		m.preview = newPreviewList(msg.items, msg.layout)

		return m, nil

	case importDoneMsg:
		return m.finish(msg.imported, msg.err)
	}

	switch m.state {
	case importStateRemoteForm:
		return m.updateRemoteForm(msg)
	case importStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = importStateImporting
			m.status = fmt.Sprintf("Reading %s...", path)

			return m, m.parseCmd(path)
		}

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) finish(imported int, err error) (tea.Model, tea.Cmd) {
	m.state = importStateResult
	m.err = err
	m.status = fmt.Sprintf("Imported %d books.", imported)

	if err != nil {
		m.status = fmt.Sprintf("Imported %d books before failing: %v", imported, err)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateSourceSelect:
		return m, Back
	case importStateImporting:
		return m, nil
	}

	m.state = importStateSourceSelect
	m.form = nil
	m.items = nil
	m.err = nil
	m.status = ""

	return m, nil
}

func (m ImportModel) updateSourceSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.sourceCursor > 0 {
			m.sourceCursor--
		}
	case tea.KeyDown:
		if m.sourceCursor < len(m.sources)-1 {
			m.sourceCursor++
		}
	case tea.KeyEnter:
		if m.sources[m.sourceCursor] == sourceCSV {
			m.state = importStateFilePick
			return m, m.filePicker.Init()
		}

		return m.openRemoteForm()
	}

	return m, nil
}

func (m ImportModel) openRemoteForm() (tea.Model, tea.Cmd) {
	f := &importFields{count: fmt.Sprint(defaultImportCount)}

	m.fields = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Number of books").Value(&f.count).Validate(validateCount),
			huh.NewInput().Title("Title contains").Description("optional").Value(&f.title),
			huh.NewInput().Title("Authors contain").Description("optional").Value(&f.authors),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = importStateRemoteForm

	return m, m.form.Init()
}

func (m ImportModel) updateRemoteForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	count := parseCount(m.fields.count, defaultImportCount)
	filter := importer.Filter{
		Title:   strings.TrimSpace(m.fields.title),
		Authors: strings.TrimSpace(m.fields.authors),
	}

	m.state = importStateImporting
	m.status = fmt.Sprintf("Fetching up to %d books from the catalog...", count)

	return m, m.remoteCmd(count, filter)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSourceSelect:
		return m.viewSourceSelect()
	case importStateRemoteForm:
		return lipgloss.NewStyle().Padding(1).Render(panel("Import from catalog", m.form.View()))
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a CSV file to import:\n\n%s", m.filePicker.View()),
		)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.preview.View())
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		status := okStyle(m.status)
		if m.err != nil {
			status = errorStyle(m.status)
		}

		return lipgloss.NewStyle().Padding(2).Render(status + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewSourceSelect() string {
	s := "Import from:\n\n"

	for i, src := range m.sources {
		cursor := " "
		if i == m.sourceCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, string(src))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

// Messages

type parsedMsg struct {
	items  []importer.Item
	layout string
	err    error
}

type importDoneMsg struct {
	imported int
	err      error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		items, layout, err := m.parser.Parse(f)

		return parsedMsg{items: items, layout: layout, err: err}
	}
}

func (m ImportModel) storeItemsCmd(items []importer.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		n, err := m.importService.ImportItems(ctx, items)

		return importDoneMsg{imported: n, err: err}
	}
}

func (m ImportModel) remoteCmd(count int, filter importer.Filter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		n, err := m.importService.Import(ctx, count, filter)

		return importDoneMsg{imported: n, err: err}
	}
}

// Preview list

type previewItem struct {
	item importer.Item
}

func (i previewItem) Title() string { return i.item.Title }

func (i previewItem) Description() string {
	stock := 1
	if i.item.Stock != nil {
		stock = *i.item.Stock
	}

	return fmt.Sprintf("%s | %d pages | %d in stock", i.item.Authors, i.item.Pages, stock)
}

func (i previewItem) FilterValue() string { return i.item.Title }

func newPreviewList(items []importer.Item, layout string) list.Model {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = previewItem{item: it}
	}

	l := list.New(listItems, list.NewDefaultDelegate(), 80, 20)
	l.Title = fmt.Sprintf("%d books (%s layout)", len(items), layout)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}
