package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/lending"
	"github.com/MrJamesThe3rd/libry/internal/member"
)

// kindFilters is the cycle order of the "k" key. nil shows every kind.
var kindFilters = []*lending.Kind{nil, new(lending.KindIssue), new(lending.KindReturn)}

type HistoryModel struct {
	lending *lending.Service
	members *member.Service
	books   *book.Service

	table     table.Model
	txs       []*lending.Transaction
	kindIdx   int
	memberMap map[uuid.UUID]string
	bookMap   map[uuid.UUID]string

	loading bool
	err     error
}

func NewHistoryModel(lend *lending.Service, members *member.Service, books *book.Service) HistoryModel {
	return HistoryModel{
		lending: lend,
		members: members,
		books:   books,
		table: newTable([]table.Column{
			{Title: "When", Width: 17},
			{Title: "Kind", Width: 7},
			{Title: "Member", Width: 24},
			{Title: "Book", Width: 36},
			{Title: "Fee", Width: 8},
		}),
		loading: true,
	}
}

func (m HistoryModel) Title() string { return "Lending History" }

func (m HistoryModel) ShortHelp() string {
	return "Esc: back | k: cycle kind | r: refresh"
}

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.txs = msg.txs
		m.memberMap = msg.members
		m.bookMap = msg.books
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "k":
			m.kindIdx = (m.kindIdx + 1) % len(kindFilters)
			m.loading = true

			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) kindLabel() string {
	if k := kindFilters[m.kindIdx]; k != nil {
		return string(*k)
	}

	return "all"
}

func (m HistoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading history...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("%d transactions | kind: %s", len(m.txs), activeStyle(m.kindLabel()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		framed(m.table.View()),
	))
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		when := tx.IssuedAt
		fee := ""

		if tx.Kind == lending.KindReturn {
			when = tx.ReturnedAt
			fee = FormatMoney(tx.Fee)
		}

		rows = append(rows, table.Row{
			FormatTime(when),
			string(tx.Kind),
			nameOr(m.memberMap, tx.MemberID),
			nameOr(m.bookMap, tx.BookID),
			fee,
		})
	}

	m.table.SetRows(rows)
}

func nameOr(names map[uuid.UUID]string, id uuid.UUID) string {
	if n, ok := names[id]; ok {
		return n
	}

	return id.String()
}

// Messages

type historyLoadedMsg struct {
	txs     []*lending.Transaction
	members map[uuid.UUID]string
	books   map[uuid.UUID]string
	err     error
}

func (m HistoryModel) loadCmd() tea.Cmd {
	kind := kindFilters[m.kindIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.lending.History(ctx, lending.ListFilter{Kind: kind})
		if err != nil {
			return historyLoadedMsg{err: err}
		}

		members, err := m.members.List(ctx)
		if err != nil {
			return historyLoadedMsg{err: err}
		}

		books, err := m.books.List(ctx, book.ListFilter{})
		if err != nil {
			return historyLoadedMsg{err: err}
		}

		msg := historyLoadedMsg{
			txs:     txs,
			members: make(map[uuid.UUID]string, len(members)),
			books:   make(map[uuid.UUID]string, len(books)),
		}

		for _, mem := range members {
			msg.members[mem.ID] = mem.Name
		}

		for _, b := range books {
			msg.books[b.ID] = b.Title
		}

		return msg
	}
}
