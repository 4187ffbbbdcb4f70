package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tstromberg/chronoview/pkg/chronoview"
)

// Run shows the session until the user quits.
func Run(s *chronoview.Session, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
