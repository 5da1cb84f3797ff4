package display

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/table"
)

// TUIModel is the Bubble Tea model for an interactive table.
type TUIModel struct {
	game   Game
	snap   table.Snapshot
	styles Styles
	logger *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model

	status    string
	statusErr bool
	quitting  bool

	width  int
	height int
}

// NewTUIModel creates a model showing snap, the state after the first deal.
func NewTUIModel(g Game, snap table.Snapshot, logger *log.Logger) *TUIModel {
	vp := viewport.New(100, 12)

	ti := textinput.New()
	ti.Placeholder = "fold, check, call, raise 60, allin"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	m := &TUIModel{
		game:        g,
		styles:      DefaultStyles(),
		logger:      logger,
		logViewport: vp,
		actionInput: ti,
	}
	m.setSnapshot(snap)
	m.status = snap.Message
	return m
}

// Snapshot returns the state currently on screen.
func (m *TUIModel) Snapshot() table.Snapshot { return m.snap }

// Status returns the status line and whether it reports an error.
func (m *TUIModel) Status() (string, bool) { return m.status, m.statusErr }

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			input := m.actionInput.Value()
			m.actionInput.SetValue("")
			if m.submit(input) {
				return m, tea.Quit
			}
			return m, nil
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.actionInput, cmd = m.actionInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit runs one line of input and reports whether to quit.
func (m *TUIModel) submit(input string) bool {
	cmd, err := ParseCommand(input)
	if err != nil {
		m.setStatus(err.Error(), true)
		return false
	}
	if cmd.Kind == CmdQuit {
		m.quitting = true
		return true
	}

	snap, status, err := Execute(m.game, m.snap, cmd)
	m.setSnapshot(snap)
	switch {
	case errors.Is(err, table.ErrGameOver):
		m.setStatus("Game over. Type 'quit' to leave or 'stats' for the final standings.", true)
	case err != nil:
		m.logger.Debug("command rejected", "input", input, "err", err)
		m.setStatus(err.Error(), true)
	default:
		m.setStatus(status, false)
	}
	return false
}

func (m *TUIModel) setSnapshot(snap table.Snapshot) {
	m.snap = snap
	m.logViewport.SetContent(strings.Join(snap.Log, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *TUIModel) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	tablePane := m.styles.Pane.Render(m.styles.Table(m.snap))
	logPane := m.styles.Pane.Render(m.logViewport.View())

	status := m.styles.Info.Render(m.status)
	if m.statusErr {
		status = m.styles.Error.Render(m.status)
	}
	help := m.styles.Info.Render("Enter to submit or deal • PgUp/PgDn scroll log • Ctrl+C to quit")
	inputPane := m.styles.Pane.Render(lipgloss.JoinVertical(lipgloss.Left, status, m.actionInput.View(), help))

	return lipgloss.JoinVertical(lipgloss.Left, tablePane, logPane, inputPane)
}

// updateDimensions fits the log and input to the terminal size
func (m *TUIModel) updateDimensions() {
	if m.height <= 0 || m.width <= 0 {
		return
	}
	tableHeight := len(m.snap.Seats) + 8
	inputHeight := 5
	m.logViewport.Width = m.width - 4
	m.logViewport.Height = max(3, m.height-tableHeight-inputHeight-2)
	m.actionInput.Width = m.width - 8
	m.logViewport.GotoBottom()
}
