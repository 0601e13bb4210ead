package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evanmaar/gitpick/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("cyan")).
			Bold(true)

	branchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("white"))

	remoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("cyan"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green")).
			Bold(true)

	detachedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	hashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("yellow"))

	upstreamStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	prStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("magenta"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("238"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is the branch selection loop. The branch list is immutable for the
// lifetime of the model; only the cursor and filter move.
type Model struct {
	branches []models.Branch
	visible  []int // indices into branches matching the filter
	cursor   int   // index into visible

	filter    textinput.Model
	filtering bool

	keys keyMap
	help help.Model

	width  int
	height int

	choice    *models.Branch
	cancelled bool
}

func NewModel(branches []models.Branch) Model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 30

	m := Model{
		branches: branches,
		keys:     defaultKeyMap(),
		help:     help.New(),
		filter:   ti,
	}
	m.visible = allIndices(len(branches))

	// Start on the checked-out branch, like git's own listing draws the
	// eye to it.
	for i, idx := range m.visible {
		if branches[idx].IsCurrent {
			m.cursor = i
			break
		}
	}
	return m
}

func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// Interrupt cancels no matter what the filter field is doing.
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}

		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.filtering = false
		m.filter.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.visible) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.pageSize()
		if m.cursor < 0 {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.pageSize()
		if m.cursor > len(m.visible)-1 {
			m.cursor = len(m.visible) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Confirm):
		if b := m.SelectedBranch(); b != nil && !b.Detached {
			m.choice = b
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Escape):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

// applyFilter rebuilds the visible index list from the filter text and
// keeps the cursor inside the new view.
func (m *Model) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		m.visible = allIndices(len(m.branches))
	} else {
		m.visible = m.visible[:0]
		for i, b := range m.branches {
			if strings.Contains(strings.ToLower(b.Name), needle) {
				m.visible = append(m.visible, i)
			}
		}
	}

	if m.cursor > len(m.visible)-1 {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) pageSize() int {
	// Header, filter line, blank line and help take up four rows.
	size := m.height - 4
	if size < 1 {
		size = 10
	}
	return size
}

// SelectedBranch returns the highlighted branch, nil when the filtered
// view is empty.
func (m Model) SelectedBranch() *models.Branch {
	if m.cursor >= 0 && m.cursor < len(m.visible) {
		return &m.branches[m.visible[m.cursor]]
	}
	return nil
}

// Choice returns the confirmed branch, nil if the user cancelled.
func (m Model) Choice() *models.Branch {
	return m.choice
}

// Cancelled reports whether the user left without choosing.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m Model) View() string {
	var out strings.Builder

	header := fmt.Sprintf("Branches (%d)", len(m.visible))
	out.WriteString(headerStyle.Render(header) + "\n")

	if m.filtering || m.filter.Value() != "" {
		out.WriteString(m.filter.View() + "\n")
	}
	out.WriteString("\n")

	if len(m.visible) == 0 {
		out.WriteString(emptyStyle.Render("No branches match.") + "\n")
	}

	for i, idx := range m.visible {
		branch := m.branches[idx]
		var line string

		switch {
		case branch.Detached:
			line = "* " + detachedStyle.Render(branch.Name)
		case branch.IsCurrent:
			line = "* " + currentStyle.Render(branch.Name)
		case branch.IsRemote:
			line = "  " + remoteStyle.Render(branch.Name)
		default:
			line = "  " + branchStyle.Render(branch.Name)
		}

		if branch.PRNumber > 0 {
			line += " " + prStyle.Render(fmt.Sprintf("#%d", branch.PRNumber))
		}

		if branch.Hash != "" {
			line += " " + hashStyle.Render(branch.Hash)
		}

		if branch.Upstream != "" {
			line += " " + upstreamStyle.Render(fmt.Sprintf("[%s]", branch.Upstream))
		}

		if branch.LastCommit != "" {
			line += " " + upstreamStyle.Render(branch.LastCommit)
		}

		if i == m.cursor {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}

		out.WriteString(line + "\n")
	}

	out.WriteString("\n" + m.help.View(m.keys))
	return out.String()
}
