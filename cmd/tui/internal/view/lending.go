package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/lending"
	"github.com/MrJamesThe3rd/libry/internal/member"
)

// LendingMode selects whether the screen issues or returns books.
type LendingMode int

const (
	ModeIssue LendingMode = iota
	ModeReturn
)

type lendingState int

const (
	lendingStateLoading lendingState = iota
	lendingStatePickMember
	lendingStatePickBook
	lendingStateWorking
	lendingStateDone
)

type lendingFields struct {
	memberID uuid.UUID
	bookID   uuid.UUID
}

type LendingModel struct {
	mode    LendingMode
	lending *lending.Service
	members *member.Service
	books   *book.Service

	state  lendingState
	form   *huh.Form
	fields *lendingFields

	memberList []*member.Member
	bookList   []*book.Book
	openLoans  []*lending.Transaction

	result string
	err    error
}

func NewLendingModel(mode LendingMode, lend *lending.Service, members *member.Service, books *book.Service) LendingModel {
	return LendingModel{
		mode:    mode,
		lending: lend,
		members: members,
		books:   books,
		fields:  &lendingFields{},
	}
}

func (m LendingModel) Title() string {
	if m.mode == ModeReturn {
		return "Return Book"
	}

	return "Issue Book"
}

func (m LendingModel) ShortHelp() string {
	if m.state == lendingStateDone {
		return "Enter: another | Esc: back"
	}

	return "Navigate form | Esc: back"
}

func (m LendingModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LendingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case lendingLoadedMsg:
		if msg.err != nil {
			m.state = lendingStateDone
			m.err = msg.err

			return m, nil
		}

		m.memberList = msg.members
		m.bookList = msg.books

		return m.pickMember()

	case openLoansMsg:
		if msg.err != nil {
			m.state = lendingStateDone
			m.err = msg.err

			return m, nil
		}

		m.openLoans = msg.loans
		if len(m.openLoans) == 0 {
			m.state = lendingStateDone
			m.err = lending.ErrNoOpenIssue

			return m, nil
		}

		return m.pickBook()

	case lendingDoneMsg:
		m.state = lendingStateDone
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == lendingStateDone {
			if msg.Type == tea.KeyEnter {
				next := NewLendingModel(m.mode, m.lending, m.members, m.books)
				return next, next.Init()
			}

			return m, nil
		}
	}

	if m.form == nil || (m.state != lendingStatePickMember && m.state != lendingStatePickBook) {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch {
	case m.state == lendingStatePickMember && m.mode == ModeReturn:
		m.state = lendingStateLoading
		return m, m.openLoansCmd(m.fields.memberID)
	case m.state == lendingStatePickMember:
		return m.pickBook()
	}

	m.state = lendingStateWorking

	return m, m.submitCmd()
}

func (m LendingModel) pickMember() (tea.Model, tea.Cmd) {
	if len(m.memberList) == 0 {
		m.state = lendingStateDone
		m.err = errors.New("no members registered")

		return m, nil
	}

	opts := make([]huh.Option[uuid.UUID], 0, len(m.memberList))
	for _, mem := range m.memberList {
		label := mem.Name
		if mem.OutstandingDebt > 0 {
			label = fmt.Sprintf("%s (owes %s)", mem.Name, FormatMoney(mem.OutstandingDebt))
		}

		opts = append(opts, huh.NewOption(label, mem.ID))
	}

	m.state = lendingStatePickMember
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Member").
				Options(opts...).
				Height(12).
				Value(&m.fields.memberID),
		),
	).WithWidth(60).WithShowHelp(false)

	return m, m.form.Init()
}

func (m LendingModel) pickBook() (tea.Model, tea.Cmd) {
	var opts []huh.Option[uuid.UUID]

	if m.mode == ModeReturn {
		titles := make(map[uuid.UUID]string, len(m.bookList))
		for _, b := range m.bookList {
			titles[b.ID] = b.Title
		}

		for _, loan := range m.openLoans {
			opts = append(opts, huh.NewOption(
				fmt.Sprintf("%s (since %s)", titles[loan.BookID], FormatTime(loan.IssuedAt)),
				loan.BookID,
			))
		}
	} else {
		for _, b := range m.bookList {
			opts = append(opts, huh.NewOption(
				fmt.Sprintf("%s, %s [%d in stock]", b.Title, b.Authors, b.Stock),
				b.ID,
			))
		}
	}

	if len(opts) == 0 {
		m.state = lendingStateDone
		m.err = errors.New("no books in the catalog")

		return m, nil
	}

	m.state = lendingStatePickBook
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Book").
				Options(opts...).
				Height(12).
				Value(&m.fields.bookID),
		),
	).WithWidth(60).WithShowHelp(false)

	return m, m.form.Init()
}

func (m LendingModel) View() string {
	var body string

	switch m.state {
	case lendingStateLoading:
		body = "Loading..."
	case lendingStateWorking:
		body = "Saving..."
	case lendingStatePickMember, lendingStatePickBook:
		body = m.form.View()
	case lendingStateDone:
		if m.err != nil {
			body = errorStyle(describeLendingError(m.err))
		} else {
			body = okStyle(m.result)
		}

		body += "\n\nPress Enter for another, Esc to go back."
	}

	return lipgloss.NewStyle().Padding(1).Render(panel(m.Title(), body))
}

func describeLendingError(err error) string {
	switch {
	case errors.Is(err, lending.ErrDebtLimitExceeded):
		return "Refused: the member's outstanding debt is over the limit."
	case errors.Is(err, lending.ErrOutOfStock):
		return "Refused: no copies of this book are in stock."
	case errors.Is(err, lending.ErrNoOpenIssue):
		return "Nothing to return: the member has no open loan for that book."
	}

	return fmt.Sprintf("Error: %v", err)
}

func receiptText(r *lending.Receipt) string {
	lines := []string{
		fmt.Sprintf("Returned after %d day(s).", r.Days),
	}

	if r.LateDays > 0 {
		lines = append(lines, fmt.Sprintf("%d day(s) late, fee %s.", r.LateDays, FormatMoney(r.Fee)))
	} else {
		lines = append(lines, "On time, no fee.")
	}

	lines = append(lines, fmt.Sprintf("Outstanding debt: %s", FormatMoney(r.Debt)))

	return strings.Join(lines, "\n")
}

// Messages

type lendingLoadedMsg struct {
	members []*member.Member
	books   []*book.Book
	err     error
}

type openLoansMsg struct {
	loans []*lending.Transaction
	err   error
}

type lendingDoneMsg struct {
	result string
	err    error
}

func (m LendingModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		members, err := m.members.List(ctx)
		if err != nil {
			return lendingLoadedMsg{err: err}
		}

		books, err := m.books.List(ctx, book.ListFilter{})
		if err != nil {
			return lendingLoadedMsg{err: err}
		}

		return lendingLoadedMsg{members: members, books: books}
	}
}

func (m LendingModel) openLoansCmd(memberID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		loans, err := m.lending.OpenLoans(ctx, memberID)

		return openLoansMsg{loans: loans, err: err}
	}
}

func (m LendingModel) submitCmd() tea.Cmd {
	memberID, bookID := m.fields.memberID, m.fields.bookID
	mode := m.mode

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if mode == ModeReturn {
			receipt, err := m.lending.Return(ctx, memberID, bookID)
			if err != nil {
				return lendingDoneMsg{err: err}
			}

			return lendingDoneMsg{result: receiptText(receipt)}
		}

		tx, err := m.lending.Issue(ctx, memberID, bookID)
		if err != nil {
			return lendingDoneMsg{err: err}
		}

		return lendingDoneMsg{result: fmt.Sprintf("Issued on %s.", FormatTime(tx.IssuedAt))}
	}
}
