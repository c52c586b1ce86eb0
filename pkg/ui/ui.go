package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// DefaultRefreshInterval is the default refresh interval for the UI
	DefaultRefreshInterval = 200 * time.Millisecond
	// MinRefreshInterval is the minimum allowed refresh interval
	MinRefreshInterval = 10 * time.Millisecond
)

var (
	headerLineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#16213E")).
			MarginBottom(1).
			Align(lipgloss.Center)
	statusLineStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#94A3B8")).
			Background(lipgloss.Color("#0F3460")).
			Bold(true)
	controlLineStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(lipgloss.Color("#94A3B8")).
				Background(lipgloss.Color("#0F3460")).
				Bold(true)
	statusKVSplit    = ": "
	statusItemSplit  = " | "
	controlKVSplit   = ": "
	controlItemSplit = " | "
)

// Model represents the application state
type Model struct {
	engine StepEngine

	refreshRate time.Duration

	currentStep int
	paused      bool
	width       int

	buffer        strings.Builder
	statusBuffer  strings.Builder
	controlBuffer strings.Builder
	controlKeys   map[string]struct{}
	logger        *slog.Logger
}

// RunModel runs a bubbletea program around the given engine
func RunModel(appName string, engine StepEngine, refreshInterval time.Duration) error {
	if appName == "" {
		return fmt.Errorf("appName cannot be empty")
	}
	if engine == nil {
		return fmt.Errorf("engine cannot be nil")
	}
	if refreshInterval < MinRefreshInterval {
		refreshInterval = DefaultRefreshInterval
	}

	logger := slog.With("app", appName)

	model := &Model{
		engine:      engine,
		refreshRate: refreshInterval,
		controlKeys: make(map[string]struct{}),
		logger:      logger,
	}
	for _, control := range engine.HandleKeys() {
		for _, key := range control.Keys {
			model.controlKeys[key] = struct{}{}
		}
	}

	// Run the TUI application
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("Error running program", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Debug("Finished")
	return nil
}

// tickMsg is sent every tick
type tickMsg time.Time

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Tick(m.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	}
	return m, nil
}

// View renders the current state
func (m *Model) View() string {
	m.buffer.Reset()
	m.buffer.WriteString(m.RenderHeader())
	m.buffer.WriteString("\n")
	m.buffer.WriteString(m.RenderStatus())
	m.buffer.WriteString("\n")
	m.buffer.WriteString(m.engine.View())
	m.buffer.WriteString("\n")
	m.buffer.WriteString(m.RenderControlLine())
	return m.buffer.String()
}

// handleKeyPress processes keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := strings.ToLower(msg.String())
	m.logger.Debug("Key pressed", "key", key)

	if _, ok := m.controlKeys[key]; ok {
		if handled, err := m.engine.Handle(key); err != nil {
			m.logger.Error("Key not handled", "key", key, "error", err)
			return m, tea.Quit
		} else if handled {
			return m, nil
		}
	}

	switch key {
	case "ctrl+c", "q", "esc":
		m.engine.Stop()
		return m, tea.Quit

	case " ", "enter": // Space or Enter key for pause/resume
		m.paused = !m.paused

	case "+", "=", "up": // Increase refresh rate (make it faster)
		m.refreshRate = max(m.refreshRate/2, MinRefreshInterval)

	case "-", "_", "down": // Decrease refresh rate (make it slower)
		m.refreshRate = m.refreshRate * 2
	}

	return m, nil
}

// handleTick processes timer ticks
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		currentStep, ok := m.engine.Step()
		if !ok {
			m.paused = true
		}
		m.currentStep = currentStep
		if m.engine.IsFinished() {
			m.paused = true
		}
	}

	return m, tea.Tick(m.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// RenderHeader renders the header
func (m *Model) RenderHeader() string {
	return headerLineStyle.Width(m.width).Render(m.engine.Header())
}

// RenderStatus renders the status line
func (m *Model) RenderStatus() string {
	m.statusBuffer.Reset()

	allStatus := append(m.engine.Status(), m.Status()...)
	if len(allStatus) == 0 {
		return ""
	}

	m.statusBuffer.WriteString(allStatus[0].Label)
	m.statusBuffer.WriteString(statusKVSplit)
	m.statusBuffer.WriteString(allStatus[0].Value)
	for _, item := range allStatus[1:] {
		m.statusBuffer.WriteString(statusItemSplit)
		m.statusBuffer.WriteString(item.Label)
		m.statusBuffer.WriteString(statusKVSplit)
		m.statusBuffer.WriteString(item.Value)
	}

	return statusLineStyle.Width(m.width).Render(m.statusBuffer.String())
}

// Status returns the status line items
func (m *Model) Status() []Status {
	statusText := "Running"
	if m.paused {
		statusText = "Paused"
	}

	return []Status{
		{Label: "Step", Value: strconv.Itoa(m.currentStep)},
		{Label: "Speed", Value: m.refreshRate.String()},
		{Label: "Status", Value: statusText},
	}
}

// RenderControlLine renders the control line
func (m *Model) RenderControlLine() string {
	m.controlBuffer.Reset()

	controls := append(m.engine.HandleKeys(), []Control{
		{Keys: []string{"space"}, Label: "Pause/Resume"},
		{Keys: []string{"+", "-"}, Label: "Speed"},
		{Keys: []string{"q"}, Label: "Quit"},
	}...)

	first := true
	for _, item := range controls {
		if !first {
			m.controlBuffer.WriteString(controlItemSplit)
		}
		first = false
		m.controlBuffer.WriteString(strings.Join(item.Keys, "/"))
		m.controlBuffer.WriteString(controlKVSplit)
		m.controlBuffer.WriteString(item.Label)
	}

	return controlLineStyle.Width(m.width).Render(m.controlBuffer.String())
}
