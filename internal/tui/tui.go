// Package tui provides a Bubble Tea terminal user interface for flac2mp3.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flac2mp3/internal/config"
	"flac2mp3/internal/convert"
	"flac2mp3/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StatePlanning
	StateConverting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   convert.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	logs      []LogEntry
	err       error

	// Conversion context
	ctx    context.Context
	cancel context.CancelFunc

	// Conversion engine
	manager *convert.Manager
	plan    *convert.Plan
	events  chan convert.ProgressEvent

	// Conversion progress
	doneEntries  int32
	totalEntries int32

	// Options
	mode     model.Mode
	newDir   bool
	playlist bool
	force    bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/album"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		logs:      make([]LogEntry, 0),
		mode:      model.ModeVBR,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// PlanDoneMsg is sent when the conversion plan has been built.
	PlanDoneMsg struct {
		Plan    *convert.Plan
		Manager *convert.Manager
		Events  chan convert.ProgressEvent
		Err     error
	}

	// RunDoneMsg is sent when the conversion run finishes.
	RunDoneMsg struct {
		Err error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StatePlanning || m.state == StateConverting {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StatePlanning
				return m, tea.Batch(m.buildPlan(), m.spinner.Tick)
			}

		case "m":
			if m.state == StateInput {
				if m.mode == model.ModeVBR {
					m.mode = model.ModeCBR
				} else {
					m.mode = model.ModeVBR
				}
			}

		case "n":
			if m.state == StateInput {
				m.newDir = !m.newDir
			}

		case "p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "f":
			if m.state == StateInput {
				m.force = !m.force
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new conversion
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.plan = nil
				m.manager = nil
				m.events = nil
				m.doneEntries = 0
				m.totalEntries = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PlanDoneMsg:
		m = m.drainEvents(msg.Events)
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.plan = msg.Plan
			m.manager = msg.Manager
			m.events = msg.Events
			m.state = StateConverting
			cmds = append(cmds, m.startRun(), m.tickProgress())
		}

	case RunDoneMsg:
		m = m.drainEvents(m.events)
		if m.manager != nil {
			m.doneEntries, m.totalEntries = m.manager.GetProgress()
		}
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateConverting {
			m = m.drainEvents(m.events)
			m.doneEntries, m.totalEntries = m.manager.GetProgress()

			var percent float64
			if m.totalEntries > 0 {
				percent = float64(m.doneEntries) / float64(m.totalEntries)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// drainEvents empties the event channel into the scrolling log.
func (m Model) drainEvents(events chan convert.ProgressEvent) Model {
	if events == nil {
		return m
	}
	for {
		select {
		case event := <-events:
			if event.Level == convert.LevelVerbose && !m.verbose {
				continue
			}
			m.logs = append(m.logs, LogEntry{
				Message: event.Message,
				Level:   event.Level,
			})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		default:
			return m
		}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// settingsFromOptions turns the UI toggles into run settings.
func (m Model) settingsFromOptions() *config.Settings {
	settings := config.DefaultSettings()
	settings.Mode = m.mode
	if m.newDir {
		settings.Placement = model.PlacementNewDir
	}
	settings.CreatePlaylist = m.playlist
	settings.Force = m.force
	settings.Verbose = m.verbose
	return settings
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 FLAC to MP3"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Convert FLAC albums to MP3 with lame"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StatePlanning:
		b.WriteString(m.viewPlanning())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter source path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	newDirCheck := "[ ]"
	if m.newDir {
		newDirCheck = "[×]"
	}
	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[×]"
	}
	forceCheck := "[ ]"
	if m.force {
		forceCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Mode: %s (m)\n", m.mode))
	b.WriteString(fmt.Sprintf("  %s New output directory (n)\n", newDirCheck))
	b.WriteString(fmt.Sprintf("  %s Create playlist (p)\n", playlistCheck))
	b.WriteString(fmt.Sprintf("  %s Overwrite existing MP3s (f)\n", forceCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", verboseCheck))
	b.WriteString("\n")
	encoderLine := strings.Join(append([]string{"lame"}, m.mode.EncoderArgs()...), " ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Encoder: %s", encoderLine)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewPlanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading FLAC files..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	if m.plan != nil && m.plan.Release != nil {
		b.WriteString(successStyle.Render(fmt.Sprintf("Converting %d tracks:", len(m.plan.Release.Tracks))))
		b.WriteString("\n")
		b.WriteString(trackStyle.Render(fmt.Sprintf("  ♪ %s", m.plan.Release.TargetDir)))
		b.WriteString("\n\n")
	}

	var percent float64
	if m.totalEntries > 0 {
		percent = float64(m.doneEntries) / float64(m.totalEntries)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Entries: %d/%d",
		m.doneEntries,
		m.totalEntries,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	target := ""
	tracks := 0
	if m.plan != nil && m.plan.Release != nil {
		target = m.plan.Release.TargetDir
		tracks = len(m.plan.Release.Tracks)
	}
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Conversion Complete!\n\n"+
			"Tracks: %d\n"+
			"Entries: %d/%d\n"+
			"Output: %s",
		tracks,
		m.doneEntries,
		m.totalEntries,
		target,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case convert.LevelError:
			style = errorStyle
			prefix = "✗"
		case convert.LevelWarning:
			style = warningStyle
			prefix = "!"
		case convert.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case convert.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • m: mode • n: new directory • p: playlist • f: force • v: verbose • esc: quit"
	case StatePlanning, StateConverting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new conversion • q: quit"
	}
	return ""
}

// buildPlan creates the manager and builds the conversion plan.
func (m *Model) buildPlan() tea.Cmd {
	ctx := m.ctx
	path := m.textInput.Value()
	settings := m.settingsFromOptions()

	return func() tea.Msg {
		// The manager's callback runs on the conversion goroutine. Events
		// go into a bounded channel the UI drains on its tick; a full
		// channel drops the event rather than stalling the conversion.
		events := make(chan convert.ProgressEvent, 256)
		onProgress := func(event convert.ProgressEvent) {
			select {
			case events <- event:
			default:
			}
		}

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		manager := convert.NewManager(settings, logger, onProgress)

		plan, err := manager.Plan(ctx, path)
		if err != nil {
			return PlanDoneMsg{Events: events, Err: err}
		}

		return PlanDoneMsg{
			Plan:    plan,
			Manager: manager,
			Events:  events,
		}
	}
}

// startRun runs the conversion in the background.
func (m *Model) startRun() tea.Cmd {
	ctx := m.ctx
	manager := m.manager

	return func() tea.Msg {
		if manager == nil {
			return RunDoneMsg{Err: fmt.Errorf("no conversion planned")}
		}
		return RunDoneMsg{Err: manager.Run(ctx)}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
