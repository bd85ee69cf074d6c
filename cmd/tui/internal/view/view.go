// Package view holds the screens of the library TUI. Each screen is a bubbletea model
// reached from the main menu; it returns Back to hand control to the menu.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen is a TUI page with a title and a one-line key help.
type Screen interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// Render draws a screen with its key help underneath.
func Render(s Screen) string {
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(s.ShortHelp())
	return lipgloss.JoinVertical(lipgloss.Left, s.View(), help)
}
