package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evanmaar/gitpick/internal/models"
)

// Outcome is the result of one selection loop. Branch is nil when the
// user cancelled.
type Outcome struct {
	Branch    *models.Branch
	Cancelled bool
}

// Run drives the selector until the user confirms or cancels. The
// terminal is back in its original mode by the time Run returns,
// whichever way the loop ended.
func Run(branches []models.Branch) (Outcome, error) {
	p := tea.NewProgram(NewModel(branches), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("selector failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Outcome{}, fmt.Errorf("selector returned unexpected model %T", final)
	}

	if m.Cancelled() || m.Choice() == nil {
		return Outcome{Cancelled: true}, nil
	}
	return Outcome{Branch: m.Choice()}, nil
}
