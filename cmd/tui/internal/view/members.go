package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/libry/internal/member"
)

type membersState int

const (
	membersStateBrowse membersState = iota
	membersStateForm
	membersStatePayment
	membersStateConfirmDelete
)

type memberFields struct {
	name   string
	email  string
	phone  string
	amount string
}

type MembersModel struct {
	svc *member.Service

	state   membersState
	table   table.Model
	members []*member.Member

	form    *huh.Form
	fields  *memberFields
	editing *member.Member

	loading bool
	err     error
	status  string
}

func NewMembersModel(svc *member.Service) MembersModel {
	return MembersModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "Name", Width: 30},
			{Title: "Email", Width: 30},
			{Title: "Phone", Width: 16},
			{Title: "Debt", Width: 10},
			{Title: "Joined", Width: 17},
		}),
		loading: true,
	}
}

func (m MembersModel) Title() string { return "Members" }

func (m MembersModel) ShortHelp() string {
	switch m.state {
	case membersStateForm, membersStatePayment:
		return "Navigate form | Esc: cancel"
	case membersStateConfirmDelete:
		return "y: delete | any other key: cancel"
	}

	return "Esc: back | a: add | e: edit | p: record payment | d: delete | r: refresh"
}

func (m MembersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m MembersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case membersLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.members = msg.members
		m.refreshTable()

		return m, nil

	case memberSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = membersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case membersStateForm, membersStatePayment:
		return m.updateForm(msg)
	case membersStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m.updateBrowse(msg)
}

func (m MembersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.openForm(nil)
		case "e":
			if mem := m.selected(); mem != nil {
				return m.openForm(mem)
			}
		case "p":
			if mem := m.selected(); mem != nil {
				return m.openPayment(mem)
			}
		case "d":
			if m.selected() != nil {
				m.state = membersStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MembersModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.state = membersStateBrowse

	mem := m.selected()
	if keyMsg.String() != "y" || mem == nil {
		return m, nil
	}

	return m, m.deleteCmd(mem)
}

func (m MembersModel) openForm(mem *member.Member) (tea.Model, tea.Cmd) {
	f := &memberFields{}
	if mem != nil {
		f = &memberFields{name: mem.Name, email: mem.Email, phone: mem.Phone}
	}

	m.fields = f
	m.editing = mem
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&f.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}

					return nil
				}),
			huh.NewInput().Title("Email").Value(&f.email),
			huh.NewInput().Title("Phone").Value(&f.phone),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = membersStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m MembersModel) openPayment(mem *member.Member) (tea.Model, tea.Cmd) {
	f := &memberFields{amount: FormatMoney(mem.OutstandingDebt)}

	m.fields = f
	m.editing = mem
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount paid").
				Description(fmt.Sprintf("Outstanding: %s", FormatMoney(mem.OutstandingDebt))).
				Value(&f.amount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = membersStatePayment
	m.table.Blur()

	return m, m.form.Init()
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive amount")
	}

	return nil
}

func (m MembersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = membersStateBrowse
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

	if m.state == membersStatePayment {
		return m, m.payCmd()
	}

	return m, m.saveCmd()
}

func (m MembersModel) selected() *member.Member {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.members) {
		return nil
	}

	return m.members[idx]
}

func (m MembersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading members...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(fmt.Sprintf("%d members", len(m.members))),
		framed(m.table.View()),
	)

	switch m.state {
	case membersStateForm:
		title := "Add Member"
		if m.editing != nil {
			title = "Edit Member"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title, m.form.View()))
	case membersStatePayment:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panel("Payment from "+m.editing.Name, m.form.View()))
	case membersStateConfirmDelete:
		if mem := m.selected(); mem != nil {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content,
				panel("Delete Member", fmt.Sprintf("Delete %s? (y/n)", mem.Name)))
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *MembersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.members))
	for _, mem := range m.members {
		rows = append(rows, table.Row{
			mem.Name,
			mem.Email,
			mem.Phone,
			FormatMoney(mem.OutstandingDebt),
			FormatTime(&mem.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type membersLoadedMsg struct {
	members []*member.Member
	err     error
}

type memberSavedMsg struct {
	status string
	err    error
}

func (m MembersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		members, err := m.svc.List(ctx)

		return membersLoadedMsg{members: members, err: err}
	}
}

func (m MembersModel) saveCmd() tea.Cmd {
	f := *m.fields
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			mem, err := m.svc.Create(ctx, member.CreateParams{Name: f.name, Email: f.email, Phone: f.phone})
			if err != nil {
				return memberSavedMsg{err: err}
			}

			return memberSavedMsg{status: fmt.Sprintf("Added %s.", mem.Name)}
		}

		mem, err := m.svc.Update(ctx, editing.ID, member.UpdateParams{
			Name:  &f.name,
			Email: &f.email,
			Phone: &f.phone,
		})
		if err != nil {
			return memberSavedMsg{err: err}
		}

		return memberSavedMsg{status: fmt.Sprintf("Saved %s.", mem.Name)}
	}
}

func (m MembersModel) payCmd() tea.Cmd {
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.fields.amount), 64)
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mem, err := m.svc.SettleDebt(ctx, editing.ID, amount)
		if err != nil {
			return memberSavedMsg{err: err}
		}

		return memberSavedMsg{
			status: fmt.Sprintf("Recorded %s from %s, %s outstanding.",
				FormatMoney(amount), mem.Name, FormatMoney(mem.OutstandingDebt)),
		}
	}
}

func (m MembersModel) deleteCmd(mem *member.Member) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, mem.ID); err != nil {
			return memberSavedMsg{err: err}
		}

		return memberSavedMsg{status: fmt.Sprintf("Deleted %s.", mem.Name)}
	}
}
