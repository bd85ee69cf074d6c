package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/libry/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/libry/internal/app"
)

type model struct {
	app *app.App

	currentView View

	booksView   view.BooksModel
	membersView view.MembersModel
	issueView   view.LendingModel
	returnView  view.LendingModel
	importView  view.ImportModel
	historyView view.HistoryModel

	width, height int
}

type View int

const (
	ViewMenu    View = 0
	ViewBooks   View = 1
	ViewMembers View = 2
	ViewIssue   View = 3
	ViewReturn  View = 4
	ViewImport  View = 5
	ViewHistory View = 6
)

func initialModel(a *app.App) model {
	return model{
		app:         a,
		currentView: ViewMenu,
		importView:  view.NewImportModel(a.Importer, a.CSV),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) resize() tea.Cmd {
	if m.height == 0 {
		return nil
	}

	w, h := m.width, m.height

	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewBooks
				m.booksView = view.NewBooksModel(m.app.Books)

				return m, tea.Batch(m.booksView.Init(), m.resize())
			case "2":
				m.currentView = ViewMembers
				m.membersView = view.NewMembersModel(m.app.Members)

				return m, tea.Batch(m.membersView.Init(), m.resize())
			case "3":
				m.currentView = ViewIssue
				m.issueView = view.NewLendingModel(view.ModeIssue, m.app.Lending, m.app.Members, m.app.Books)

				return m, m.issueView.Init()
			case "4":
				m.currentView = ViewReturn
				m.returnView = view.NewLendingModel(view.ModeReturn, m.app.Lending, m.app.Members, m.app.Books)

				return m, m.returnView.Init()
			case "5":
				m.currentView = ViewImport
				return m, m.importView.Init()
			case "6":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.app.Lending, m.app.Members, m.app.Books)

				return m, tea.Batch(m.historyView.Init(), m.resize())
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewBooks:
		var newModel tea.Model
		newModel, cmd = m.booksView.Update(msg)
		m.booksView = newModel.(view.BooksModel)
	case ViewMembers:
		var newModel tea.Model
		newModel, cmd = m.membersView.Update(msg)
		m.membersView = newModel.(view.MembersModel)
	case ViewIssue:
		var newModel tea.Model
		newModel, cmd = m.issueView.Update(msg)
		m.issueView = newModel.(view.LendingModel)
	case ViewReturn:
		var newModel tea.Model
		newModel, cmd = m.returnView.Update(msg)
		m.returnView = newModel.(view.LendingModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	}

	return m, cmd
}

func (m model) active() view.Screen {
	switch m.currentView {
	case ViewBooks:
		return m.booksView
	case ViewMembers:
		return m.membersView
	case ViewIssue:
		return m.issueView
	case ViewReturn:
		return m.returnView
	case ViewImport:
		return m.importView
	case ViewHistory:
		return m.historyView
	}

	return nil
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			"Libry TUI\n\n" +
				"1. Books\n" +
				"2. Members\n" +
				"3. Issue Book\n" +
				"4. Return Book\n" +
				"5. Import Books\n" +
				"6. Lending History\n\n" +
				"q. Quit",
		)
	}

	v := m.active()
	if v == nil {
		return "Unknown View"
	}

	return view.Render(v)
}

func main() {
	cfg, _, err := app.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The alternate screen owns stderr, so logs go to a file.
	logFile, err := tea.LogToFile("libry-tui.log", "")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
