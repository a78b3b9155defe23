// Package view holds the screens of the terminal client. Each screen is a
// bubbletea model that returns Back when the user leaves it.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a screen the menu can switch to.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// BackMsg returns control to the menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	_ View = ImportModel{}
	_ View = ReviewModel{}
	_ View = ExportModel{}
)
