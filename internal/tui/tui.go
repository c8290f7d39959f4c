// Package tui provides a Bubble Tea terminal user interface for aimp2m3u.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/aimp2m3u/internal/aimp"
	"github.com/handiism/aimp2m3u/internal/config"
	"github.com/handiism/aimp2m3u/internal/convert"
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

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// previewLines is how many playlist lines the confirmation screen shows.
const previewLines = 8

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateConverting
	StateConfirm
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   convert.ProgressLevel
}

// logBuffer collects progress events from the converter goroutine.
type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (b *logBuffer) add(event convert.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, LogEntry{Message: event.Message, Level: event.Level})
	// Keep only last 10 logs
	if len(b.entries) > 10 {
		b.entries = b.entries[len(b.entries)-10:]
	}
}

func (b *logBuffer) snapshot() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]LogEntry(nil), b.entries...)
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      *logBuffer
	err       error

	// Conversion context
	ctx    context.Context
	cancel context.CancelFunc

	converter *convert.Converter
	result    *convert.Result
	writing   bool
	written   bool

	// Conversion progress
	songsResolved int64
	songsTotal    int64

	// Options
	extended bool
	tags     bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	return NewModelWithSettings(config.DefaultSettings())
}

// NewModelWithSettings creates a new TUI model starting from settings.
func NewModelWithSettings(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = `C:\Users\me\AppData\Roaming\AIMP\PLS\MyMix.aimppl4`
	ti.Focus()
	ti.CharLimit = 1000
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
		settings:  settings,
		logs:      &logBuffer{},
		ctx:       ctx,
		cancel:    cancel,
		extended:  settings.M3UExtended,
		tags:      settings.ReadTags,
		verbose:   settings.Verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ConvertDoneMsg is sent when the conversion finishes.
	ConvertDoneMsg struct {
		Result *convert.Result
		Err    error
	}

	// WriteDoneMsg is sent when the playlist has been written.
	WriteDoneMsg struct {
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
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StateConverting, StateConfirm:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			switch m.state {
			case StateInput:
				if m.textInput.Value() != "" {
					return m.startConversion()
				}
			case StateConfirm:
				return m.startWrite()
			}

		case "y", "Y":
			if m.state == StateConfirm {
				return m.startWrite()
			}

		case "n", "N":
			if m.state == StateConfirm && !m.writing {
				m.state = StateComplete
				m.written = false
				return m, nil
			}

		case "ctrl+e":
			if m.state == StateInput {
				m.extended = !m.extended
			}

		case "ctrl+t":
			if m.state == StateInput {
				m.tags = !m.tags
			}

		case "ctrl+l":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				return m.reset(), nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ConvertDoneMsg:
		if m.state != StateConverting {
			return m, nil
		}
		m.updateProgress()
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.result = msg.Result
			m.state = StateConfirm
		}

	case WriteDoneMsg:
		m.writing = false
		if m.state != StateConfirm {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.written = true
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from converter
		if m.converter != nil && m.state == StateConverting {
			m.updateProgress()

			var percent float64
			if m.songsTotal > 0 {
				percent = float64(m.songsResolved) / float64(m.songsTotal)
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

// startConversion validates the input path and starts converting it.
func (m Model) startConversion() (tea.Model, tea.Cmd) {
	source := strings.Trim(strings.TrimSpace(m.textInput.Value()), `"`)
	if err := aimp.CheckExtension(source); err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	// Apply options
	settings := *m.settings
	settings.M3UExtended = m.extended
	settings.ReadTags = m.tags
	settings.Verbose = m.verbose

	logs := m.logs
	verbose := m.verbose
	m.converter = convert.NewConverter(&settings, func(event convert.ProgressEvent) {
		// Filter verbose messages if not in verbose mode
		if event.Level == convert.LevelVerbose && !verbose {
			return
		}
		logs.add(event)
	})
	m.state = StateConverting

	return m, tea.Batch(m.convertPlaylist(source), m.spinner.Tick, m.tickProgress())
}

// convertPlaylist runs the conversion in the background.
func (m Model) convertPlaylist(source string) tea.Cmd {
	converter := m.converter
	ctx := m.ctx
	return func() tea.Msg {
		result, err := converter.Convert(ctx, source)
		return ConvertDoneMsg{Result: result, Err: err}
	}
}

// startWrite starts writing the playlist once; key presses while a write
// is in flight are ignored.
func (m Model) startWrite() (tea.Model, tea.Cmd) {
	if m.writing {
		return m, nil
	}
	m.writing = true
	return m, m.writePlaylist()
}

// writePlaylist writes the converted playlist in the background.
func (m Model) writePlaylist() tea.Cmd {
	converter := m.converter
	result := m.result
	ctx := m.ctx
	return func() tea.Msg {
		if converter == nil || result == nil {
			return WriteDoneMsg{Err: fmt.Errorf("nothing to write")}
		}
		return WriteDoneMsg{Err: converter.Write(ctx, result)}
	}
}

func (m *Model) updateProgress() {
	if m.converter == nil {
		return
	}
	m.songsResolved, m.songsTotal = m.converter.GetProgress()
}

// reset prepares the model for a new conversion.
func (m Model) reset() Model {
	m.cancel()
	m.state = StateInput
	m.logs = &logBuffer{}
	m.err = nil
	m.converter = nil
	m.result = nil
	m.writing = false
	m.written = false
	m.songsResolved = 0
	m.songsTotal = 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 aimp2m3u"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Convert AIMP4 playlists to M3U"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateConfirm:
		b.WriteString(m.viewConfirm())
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

	b.WriteString(subtitleStyle.Render("Enter AIMP4 playlist path (.aimppl4):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Extended M3U (ctrl+e)\n", checkbox(m.extended)))
	b.WriteString(fmt.Sprintf("  %s Fill missing info from ID3 tags (ctrl+t)\n", checkbox(m.tags)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+l)\n", checkbox(m.verbose)))
	b.WriteString("\n")

	output := m.settings.OutputDir
	if output == "" {
		output = fmt.Sprintf("<common song folder>/%s", m.settings.PlaylistsDirName)
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", output)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Locating songs..."))
	b.WriteString("\n\n")

	var percent float64
	if m.songsTotal > 0 {
		percent = float64(m.songsResolved) / float64(m.songsTotal)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Songs: %d/%d", m.songsResolved, m.songsTotal)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder

	if m.result == nil {
		return b.String()
	}

	lines := strings.Split(m.result.Content, "\n")
	preview := lines
	if len(preview) > previewLines {
		preview = preview[:previewLines]
	}

	b.WriteString(successStyle.Render(fmt.Sprintf("Converted %d song(s) from %s", len(m.result.Playlist.Songs), m.result.Playlist.Name)))
	b.WriteString("\n\n")
	for _, line := range preview {
		b.WriteString(pathStyle.Render("  ♪ " + line))
		b.WriteString("\n")
	}
	if len(lines) > len(preview) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more line(s)", len(lines)-len(preview))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Proceed with playlist creation at %s? (Y/n)", m.result.Destination)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	if !m.written {
		return warningStyle.Render("Bailing... nothing was written.") + "\n"
	}

	return boxStyle.Render(fmt.Sprintf(
		"✨ Done conversion!\n\n"+
			"Playlist: %s\n"+
			"Songs: %d",
		m.result.Destination,
		len(m.result.Playlist.Songs),
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs.snapshot() {
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
		return "enter: convert • ctrl+e: extended • ctrl+t: tags • ctrl+l: verbose • esc: quit"
	case StateConverting:
		return "esc: cancel"
	case StateConfirm:
		return "y/enter: write • n: bail • esc: cancel"
	case StateComplete, StateError:
		return "r: new conversion • q: quit"
	}
	return ""
}

func checkbox(checked bool) string {
	if checked {
		return "[×]"
	}
	return "[ ]"
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
