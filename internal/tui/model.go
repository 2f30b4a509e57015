package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
)

const (
	paneLog = iota
	paneInput
)

const sidebarWidth = 34

// RoundMsg carries the table state after a gameplay tick
type RoundMsg struct {
	View game.RoundView
}

// OutcomeMsg carries the result of a finished round
type OutcomeMsg struct {
	Result *game.Result
}

// QuitMsg asks the program to exit
type QuitMsg struct{}

// Model is the Bubble Tea model for a blackjack round. It is both the
// renderer and the decision source: decisions typed into the input are
// handed to NextDecision over a channel.
type Model struct {
	logger *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model
	help        help.Model
	keys        keyMap

	gameLog     []string
	view        game.RoundView
	hasView     bool
	result      *game.Result
	inputError  string
	focusedPane int
	quitting    bool

	width  int
	height int

	decisions chan game.Decision
	closed    chan struct{}
	closeOnce sync.Once
}

// NewModel creates a model ready to be run by a tea.Program
func NewModel(logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "1 to hit, 2 to hold"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 30
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		help:        help.New(),
		keys:        defaultKeyMap(),
		focusedPane: paneInput,
		decisions:   make(chan game.Decision, 1),
		closed:      make(chan struct{}),
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.close()
		m.quitting = true
		return m, tea.Quit

	case RoundMsg:
		m.view = msg.View
		m.hasView = true
		m.addLogEntry(roundLogLine(msg.View))

	case OutcomeMsg:
		m.result = msg.Result
		for _, line := range strings.Split(strings.TrimRight(display.FormatOutcome(msg.Result), "\n"), "\n") {
			m.addLogEntry(line)
		}
		if msg.Result.History != "" {
			m.addLogEntry("")
			for _, line := range strings.Split(msg.Result.History, "\n") {
				m.addLogEntry(line)
			}
		}
		m.actionInput.Placeholder = "Enter to exit"

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		m.resize()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.close()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus):
			if m.focusedPane == paneLog {
				m.focusedPane = paneInput
				m.actionInput.Focus()
			} else {
				m.focusedPane = paneLog
				m.actionInput.Blur()
			}
			return m, nil
		case key.Matches(msg, m.keys.Submit) && m.focusedPane == paneInput:
			if m.result != nil {
				m.quitting = true
				return m, tea.Quit
			}
			m.submit(m.actionInput.Value())
			m.actionInput.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == paneInput {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.logViewport, cmd = m.logViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit parses one line from the input box. Malformed lines stay in the UI
// as an error and the player is asked again.
func (m *Model) submit(line string) {
	decision, err := game.ParseDecision(line)
	if err != nil {
		m.logger.Debug("Rejected input", "line", line, "error", err)
		m.inputError = "Please enter 1 to hit or 2 to hold."
		return
	}

	select {
	case m.decisions <- decision:
		m.inputError = ""
		m.logger.Debug("Decision submitted", "decision", decision)
	default:
		m.inputError = "Waiting for the dealer..."
	}
}

// NextDecision implements game.DecisionSource
func (m *Model) NextDecision(ctx context.Context) (game.Decision, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case d := <-m.decisions:
		return d, nil
	case <-m.closed:
		// Drain a decision submitted just before quitting
		select {
		case d := <-m.decisions:
			return d, nil
		default:
			return 0, io.EOF
		}
	}
}

func (m *Model) close() {
	m.closeOnce.Do(func() { close(m.closed) })
}

// Closed reports whether the player has quit
func (m *Model) Closed() bool {
	select {
	case <-m.closed:
		return true
	default:
		return false
	}
}

func (m *Model) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// LogEntries returns a copy of the log pane contents
func (m *Model) LogEntries() []string {
	entries := make([]string, len(m.gameLog))
	copy(entries, m.gameLog)
	return entries
}

func (m *Model) resize() {
	actionHeight := lipgloss.Height(m.renderActionPane())
	w := max(m.width-sidebarWidth-4, 1)
	h := max(m.height-actionHeight-4, 1)
	m.logViewport.Width = w
	m.logViewport.Height = h
	m.logViewport.GotoBottom()
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionStyle := paneStyle.
		Width(max(m.width-2, 1)).
		Height(max(lipgloss.Height(actionContent), 1))
	if m.focusedPane == paneInput {
		actionStyle = actionStyle.BorderForeground(focusedBorder)
	}

	logStyle := paneStyle.
		Width(m.logViewport.Width).
		Height(m.logViewport.Height)
	if m.focusedPane == paneLog {
		logStyle = logStyle.BorderForeground(focusedBorder)
	}

	sidebarStyle := paneStyle.
		Width(sidebarWidth).
		Height(m.logViewport.Height)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		logStyle.Render(m.logViewport.View()),
		sidebarStyle.Render(m.renderTable()))

	return lipgloss.JoinVertical(lipgloss.Left, top, actionStyle.Render(actionContent))
}

// renderTable shows every hand with hidden cards masked
func (m *Model) renderTable() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Blackjack"))
	b.WriteString("\n\n")
	if !m.hasView {
		b.WriteString(InfoStyle.Render("Dealing..."))
		return b.String()
	}

	for _, h := range m.view.Hands {
		b.WriteString(TableTitleStyle.Render(h.Name))
		if h.Holding {
			b.WriteString(InfoStyle.Render(" (holding)"))
		}
		b.WriteString("\n")
		b.WriteString(display.FormatCards(h.Cards))
		b.WriteString("\n")
		b.WriteString(ScoreStyle.Render("Score: " + h.ScoreString()))
		b.WriteString("\n\n")
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Deck: %d cards", m.view.DeckSize)))
	return b.String()
}

func (m *Model) renderActionPane() string {
	var b strings.Builder
	switch {
	case m.result != nil:
		b.WriteString(InfoStyle.Render("Round over: " + m.result.Outcome.String()))
	case m.inputError != "":
		b.WriteString(ErrorStyle.Render(m.inputError))
	default:
		b.WriteString(TableTitleStyle.Render("1) Hit  2) Hold"))
	}
	b.WriteString("\n")
	b.WriteString(m.actionInput.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func roundLogLine(view game.RoundView) string {
	var parts []string
	for _, h := range view.Hands {
		parts = append(parts, fmt.Sprintf("%s %s (%s)", h.Name, h.CardsString(), h.ScoreString()))
	}
	prefix := fmt.Sprintf("Turn %d", view.Tick+1)
	if view.LastEvent != 0 {
		prefix += ", " + view.LastEvent.String()
	}
	return prefix + ": " + strings.Join(parts, " | ")
}
