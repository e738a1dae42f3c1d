// Package tui provides a terminal user interface for BPMtoFPS
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JHGFD82/BPMtoFPS/pkg/converter"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Edit-suite color scheme (timeline/scrubber aesthetic)
var (
	// Primary colors - scrubber cyan and frame gold
	syncCyan   = lipgloss.Color("#00E5FF")
	frameGold  = lipgloss.Color("#FFC400")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(syncCyan).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(syncCyan).
			Bold(true).
			PaddingLeft(2)

	labelStyle = lipgloss.NewStyle().
			Foreground(frameGold).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(syncCyan).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(syncCyan).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateForm
	StateResult
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Format      converter.InputFormat
}

var menuItems = []MenuItem{
	{Title: "Ticks", Description: "MIDI ticks at a tempo and resolution", Format: converter.InputTicks},
	{Title: "Beats", Description: "Quarter-note beats at a tempo", Format: converter.InputBeats},
	{Title: "Measures", Description: "Whole measures at a tempo and meter", Format: converter.InputMeasures},
	{Title: "Timecode", Description: "Audio position as minutes:seconds", Format: converter.InputTimecode},
	{Title: "Video frames", Description: "Frame count at a frame rate", Format: converter.InputVideoFrames},
	{Title: "Exit", Description: "Exit the application", Format: ""},
}

// formField is one labeled text input in the parameter form
type formField struct {
	label string
	input textinput.Model
}

// Model represents the TUI model
type Model struct {
	state      State
	menuIndex  int
	format     converter.InputFormat
	fields     []formField
	focusIndex int
	result     *converter.Result
	err        error
	width      int
	height     int
}

// New creates a new TUI model
func New() Model {
	return Model{
		state:     StateMenu,
		menuIndex: 0,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateForm:
			return m.updateForm(msg)
		case StateResult:
			return m.updateResult(msg)
		}
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		if m.menuIndex == len(menuItems)-1 {
			return m, tea.Quit
		}
		m.format = menuItems[m.menuIndex].Format
		m.fields = buildForm(m.format)
		m.focusIndex = 0
		m.state = StateForm
		return m, m.fields[0].input.Focus()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = StateMenu
		return m, nil
	case "enter":
		if m.focusIndex == len(m.fields)-1 {
			m.result, m.err = m.runConversion()
			m.state = StateResult
			return m, nil
		}
		return m.focusField(m.focusIndex + 1)
	case "tab", "down":
		return m.focusField(m.focusIndex + 1)
	case "shift+tab", "up":
		return m.focusField(m.focusIndex - 1)
	}

	var cmd tea.Cmd
	m.fields[m.focusIndex].input, cmd = m.fields[m.focusIndex].input.Update(msg)
	return m, cmd
}

func (m Model) focusField(index int) (tea.Model, tea.Cmd) {
	if index < 0 {
		index = len(m.fields) - 1
	}
	if index >= len(m.fields) {
		index = 0
	}
	m.fields[m.focusIndex].input.Blur()
	m.focusIndex = index
	return m, m.fields[m.focusIndex].input.Focus()
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.result = nil
		m.err = nil
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func newField(label, placeholder string) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 20
	ti.Width = 24
	return formField{label: label, input: ti}
}

// buildForm assembles the inputs each format needs. The frame rate is
// always asked for since frames and timecode outputs depend on it.
func buildForm(format converter.InputFormat) []formField {
	var fields []formField

	switch format {
	case converter.InputTimecode:
		fields = append(fields, newField("Timecode", "0:45.59"))
	case converter.InputVideoFrames:
		fields = append(fields, newField("Frames", "112"))
	default:
		fields = append(fields, newField("Count", "240"))
	}

	switch format {
	case converter.InputTicks:
		fields = append(fields,
			newField("BPM", "120"),
			newField("Ticks per beat", "480"))
	case converter.InputBeats:
		fields = append(fields, newField("BPM", "120"))
	case converter.InputMeasures:
		fields = append(fields,
			newField("BPM", "120"),
			newField("Notes per measure", "4"))
	}

	fields = append(fields, newField("FPS", "29.97"))
	return fields
}

// runConversion parses the form and converts to every output format.
func (m Model) runConversion() (*converter.Result, error) {
	var p converter.Params
	var value string

	for i, f := range m.fields {
		text := strings.TrimSpace(f.input.Value())
		if i == 0 {
			value = text
			continue
		}
		if text == "" {
			continue
		}
		switch f.label {
		case "BPM":
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("bpm must be an integer")
			}
			p.BPM = n
		case "Ticks per beat":
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("ticks per beat must be an integer")
			}
			p.TicksPerBeat = n
		case "Notes per measure":
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("notes per measure must be an integer")
			}
			p.NotesPerMeasure = n
		case "FPS":
			f64, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("fps must be a number")
			}
			p.FPS = f64
		}
	}

	return converter.Convert(m.format, converter.OutputFormats(), converter.StringValue(value), p)
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	// Header
	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateForm:
		s.WriteString(m.viewForm())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	// Footer help
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT INPUT FORMAT "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(frameGold).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewForm() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" CONVERT %s ", strings.ToUpper(string(m.format)))))
	s.WriteString("\n\n")

	for i, f := range m.fields {
		marker := "  "
		if i == m.focusIndex {
			marker = "▸ "
		}
		s.WriteString(labelStyle.Render(fmt.Sprintf("%s%-18s", marker, f.label)))
		s.WriteString(f.input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("tab: next field • enter on last field: convert • esc: back"))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" RESULT "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Converted"))
		s.WriteString("\n\n")
		for _, f := range m.result.Formats() {
			v, _ := m.result.Value(f)
			s.WriteString(fmt.Sprintf("%-10s %v\n", f, v))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   ____  ____  __  __ ____  _____ ____  ____
  | __ )|  _ \|  \/  |___ \|  ___|  _ \/ ___|
  |  _ \| |_) | |\/| | __) | |_  | |_) \___ \
  | |_) |  __/| |  | |/ __/|  _| |  __/ ___) |
  |____/|_|   |_|  |_|_____|_|   |_|  |____/
`
	return lipgloss.NewStyle().Foreground(syncCyan).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
