package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linegrep-cli/internal/adapters/search"
	"github.com/linegrep-cli/internal/core/domain"
	"github.com/linegrep-cli/internal/core/ports"
)

// Color scheme
var (
	primaryColor   = lipgloss.Color("#FF5F87") // Pink
	secondaryColor = lipgloss.Color("#AF87FF") // Purple
	accentColor    = lipgloss.Color("#5FD7FF") // Cyan
	textColor      = lipgloss.Color("#FFFFFF") // White
	subtextColor   = lipgloss.Color("#AAAAAA") // Light gray
	borderColor    = lipgloss.Color("#5F87FF") // Blue
)

// Component styles
var (
	appStyle = lipgloss.NewStyle().
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 2).
			MarginBottom(1)

	queryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	modeStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(secondaryColor).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtextColor).
			MarginTop(1)
)

// chromeHeight is the number of rows used by everything except match rows
const chromeHeight = 10

// TUI implements the ports.UI interface using bubbletea
type TUI struct {
	config  ports.SearchConfig
	source  string
	options []tea.ProgramOption
}

// NewTUI creates a new TUI instance
func NewTUI(config ports.SearchConfig, source string, options ...tea.ProgramOption) *TUI {
	return &TUI{
		config:  config,
		source:  source,
		options: options,
	}
}

// Run implements ports.UI
func (t *TUI) Run(ctx context.Context, body string) error {
	options := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, t.options...)
	program := tea.NewProgram(NewModel(t.config, t.source, body), options...)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running UI: %w", err)
	}
	return nil
}

// Model represents the TUI state
type Model struct {
	query         string
	caseSensitive bool
	source        string
	body          string
	matches       []domain.Match
	offset        int
	width         int
	height        int
}

// NewModel creates the browser state and runs the initial search
func NewModel(config ports.SearchConfig, source, body string) Model {
	m := Model{
		query:         config.SearchString,
		caseSensitive: config.CaseSensitive,
		source:        source,
		body:          body,
		height:        chromeHeight + 20,
	}
	m.refresh()
	return m
}

// refresh re-runs the search over the unchanged body
func (m *Model) refresh() {
	m.matches = search.NewSearcher(ports.SearchConfig{
		SearchString:  m.query,
		CaseSensitive: m.caseSensitive,
	}).Matches(m.body)
	m.offset = 0
}

func (m Model) visibleRows() int {
	return max(m.height-chromeHeight, 1)
}

func (m *Model) scroll(delta int) {
	m.offset = min(max(m.offset+delta, 0), max(len(m.matches)-m.visibleRows(), 0))
}

// Init initializes the TUI
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.caseSensitive = !m.caseSensitive
			m.refresh()
		case tea.KeyBackspace:
			if m.query != "" {
				runes := []rune(m.query)
				m.query = string(runes[:len(runes)-1])
				m.refresh()
			}
		case tea.KeyRunes, tea.KeySpace:
			m.query += string(msg.Runes)
			m.refresh()
		case tea.KeyUp:
			m.scroll(-1)
		case tea.KeyDown:
			m.scroll(1)
		case tea.KeyPgUp:
			m.scroll(-m.visibleRows())
		case tea.KeyPgDown:
			m.scroll(m.visibleRows())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll(0)
	}
	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	title := titleStyle.Render("linegrep: " + m.source)

	mode := "case-sensitive"
	if !m.caseSensitive {
		mode = "case-insensitive"
	}
	header := lipgloss.JoinHorizontal(
		lipgloss.Center,
		queryStyle.Render("🔍 "+m.query),
		" ",
		modeStyle.Render(mode),
		" ",
		lipgloss.NewStyle().Foreground(subtextColor).Render(fmt.Sprintf("%d matches", len(m.matches))),
	)

	var rows strings.Builder
	end := min(m.offset+m.visibleRows(), len(m.matches))
	for _, match := range m.matches[m.offset:end] {
		rows.WriteString(lineNumberStyle.Render(fmt.Sprintf("%6d", match.LineNumber)))
		rows.WriteString("  ")
		rows.WriteString(match.Line)
		rows.WriteByte('\n')
	}
	if len(m.matches) == 0 {
		rows.WriteString(lipgloss.NewStyle().Foreground(subtextColor).Render("no matching lines"))
	}

	help := helpStyle.Render("type to edit query • tab: toggle case • ↑/↓ pgup/pgdn: scroll • esc: quit")

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, header, rows.String(), help))
}

// Query returns the current query
func (m Model) Query() string {
	return m.query
}

// CaseSensitive reports the current case mode
func (m Model) CaseSensitive() bool {
	return m.caseSensitive
}

// Matches returns the current matches
func (m Model) Matches() []domain.Match {
	return m.matches
}

// Offset returns the index of the first visible match
func (m Model) Offset() int {
	return m.offset
}
