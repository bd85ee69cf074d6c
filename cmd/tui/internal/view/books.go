package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/libry/internal/book"
)

type booksState int

const (
	booksStateBrowse booksState = iota
	booksStateSearch
	booksStateForm
	booksStateConfirmDelete
)

// bookFields backs the add/edit form. It lives behind a pointer so copies of the model share it.
type bookFields struct {
	title     string
	authors   string
	isbn      string
	publisher string
	pages     string
	stock     string
}

type BooksModel struct {
	svc *book.Service

	state  booksState
	table  table.Model
	books  []*book.Book
	search textinput.Model
	query  string

	form    *huh.Form
	fields  *bookFields
	editing *book.Book

	loading bool
	err     error
	status  string
}

func NewBooksModel(svc *book.Service) BooksModel {
	ti := textinput.New()
	ti.Placeholder = "title or author"
	ti.Prompt = "Search: "
	ti.CharLimit = 100

	return BooksModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "Title", Width: 40},
			{Title: "Authors", Width: 28},
			{Title: "ISBN", Width: 14},
			{Title: "Publisher", Width: 20},
			{Title: "Pages", Width: 6},
			{Title: "Stock", Width: 6},
		}),
		search:  ti,
		loading: true,
	}
}

func (m BooksModel) Title() string { return "Books" }

func (m BooksModel) ShortHelp() string {
	switch m.state {
	case booksStateSearch:
		return "Enter: search | Esc: cancel"
	case booksStateForm:
		return "Navigate form | Esc: cancel"
	case booksStateConfirmDelete:
		return "y: delete | any other key: cancel"
	}

	return "Esc: back | /: search | a: add | e: edit | d: delete | r: refresh"
}

func (m BooksModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BooksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case booksLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.books = msg.books
		m.refreshTable()

		return m, nil

	case bookSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = booksStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case booksStateSearch:
		return m.updateSearch(msg)
	case booksStateForm:
		return m.updateForm(msg)
	case booksStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m.updateBrowse(msg)
}

func (m BooksModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.query != "" {
				m.query = ""
				return m, m.loadCmd()
			}

			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = booksStateSearch
			m.search.SetValue(m.query)
			m.table.Blur()

			return m, m.search.Focus()
		case "a":
			return m.openForm(nil)
		case "e":
			if b := m.selected(); b != nil {
				return m.openForm(b)
			}
		case "d":
			if m.selected() != nil {
				m.state = booksStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BooksModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = booksStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.query = strings.TrimSpace(m.search.Value())
			m.state = booksStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m BooksModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.state = booksStateBrowse

	b := m.selected()
	if keyMsg.String() != "y" || b == nil {
		return m, nil
	}

	return m, m.deleteCmd(b)
}

func (m BooksModel) openForm(b *book.Book) (tea.Model, tea.Cmd) {
	f := &bookFields{stock: "1"}
	if b != nil {
		f = &bookFields{
			title:     b.Title,
			authors:   b.Authors,
			isbn:      b.ISBN,
			publisher: b.Publisher,
			pages:     strconv.Itoa(b.Pages),
			stock:     strconv.Itoa(b.Stock),
		}
	}

	m.fields = f
	m.editing = b
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&f.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}

					return nil
				}),
			huh.NewInput().Title("Authors").Value(&f.authors),
			huh.NewInput().Title("ISBN").Value(&f.isbn),
			huh.NewInput().Title("Publisher").Value(&f.publisher),
			huh.NewInput().Title("Pages").Value(&f.pages).Validate(validateCount),
			huh.NewInput().Title("Copies in stock").Value(&f.stock).Validate(validateCount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = booksStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m BooksModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = booksStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m BooksModel) selected() *book.Book {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.books) {
		return nil
	}

	return m.books[idx]
}

func (m BooksModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading books...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("%d books", len(m.books))
	if m.query != "" {
		header = fmt.Sprintf("%d books matching %s (Esc clears)", len(m.books), activeStyle(m.query))
	}

	if m.state == booksStateSearch {
		header = m.search.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		framed(m.table.View()),
	)

	switch m.state {
	case booksStateForm:
		title := "Add Book"
		if m.editing != nil {
			title = "Edit Book"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title, m.form.View()))
	case booksStateConfirmDelete:
		if b := m.selected(); b != nil {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content,
				panel("Delete Book", fmt.Sprintf("Delete %q? (y/n)", b.Title)))
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BooksModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.books))
	for _, b := range m.books {
		rows = append(rows, table.Row{
			b.Title,
			b.Authors,
			b.ISBN,
			b.Publisher,
			strconv.Itoa(b.Pages),
			strconv.Itoa(b.Stock),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type booksLoadedMsg struct {
	books []*book.Book
	err   error
}

type bookSavedMsg struct {
	status string
	err    error
}

func (m BooksModel) loadCmd() tea.Cmd {
	query := m.query

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		books, err := m.svc.List(ctx, book.ListFilter{Query: query})

		return booksLoadedMsg{books: books, err: err}
	}
}

func (m BooksModel) saveCmd() tea.Cmd {
	f := *m.fields
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		pages := parseCount(f.pages, 0)
		stock := parseCount(f.stock, 0)

		if editing == nil {
			b, err := m.svc.Create(ctx, book.CreateParams{
				Title:     f.title,
				Authors:   f.authors,
				ISBN:      f.isbn,
				Publisher: f.publisher,
				Pages:     pages,
				Stock:     stock,
			})
			if err != nil {
				return bookSavedMsg{err: err}
			}

			return bookSavedMsg{status: fmt.Sprintf("Added %q.", b.Title)}
		}

		b, err := m.svc.Update(ctx, editing.ID, changedFields(editing, f))
		if err != nil {
			return bookSavedMsg{err: err}
		}

		return bookSavedMsg{status: fmt.Sprintf("Saved %q.", b.Title)}
	}
}

// changedFields turns the edit form into a patch holding only what the user changed.
func changedFields(orig *book.Book, f bookFields) book.UpdateParams {
	var p book.UpdateParams

	if f.title != orig.Title {
		p.Title = &f.title
	}

	if f.authors != orig.Authors {
		p.Authors = &f.authors
	}

	if f.isbn != orig.ISBN {
		p.ISBN = &f.isbn
	}

	if f.publisher != orig.Publisher {
		p.Publisher = &f.publisher
	}

	if pages := parseCount(f.pages, orig.Pages); pages != orig.Pages {
		p.Pages = &pages
	}

	if stock := parseCount(f.stock, orig.Stock); stock != orig.Stock {
		p.Stock = &stock
	}

	return p
}

func (m BooksModel) deleteCmd(b *book.Book) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, b.ID); err != nil {
			return bookSavedMsg{err: err}
		}

		return bookSavedMsg{status: fmt.Sprintf("Deleted %q.", b.Title)}
	}
}
