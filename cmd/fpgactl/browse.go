package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/fpga-runtime/bitfile"
	"github.com/wippyai/fpga-runtime/loopback"
	"github.com/wippyai/fpga-runtime/registry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <document>",
		Short: "Write and read back registers on a simulated device",
		Long: `Open an interactive view of the document's registers backed by an
in-memory loopback device. Pick a register, enter a JSON value and see the
value read back together with the raw register words.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newBrowseModel(args[0], rootOpts.log), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

type browseState int

const (
	stateSelectRegister browseState = iota
	stateInputValue
	stateShowResult
)

type browseModel struct {
	err      error
	log      *zap.Logger
	dev      *loopback.Device
	filename string
	value    string
	words    string
	regs     []*registry.Register
	input    textinput.Model
	selected int
	state    browseState
}

type loadedMsg struct {
	err  error
	regs []*registry.Register
}

type writeResultMsg struct {
	err   error
	value string
	words string
}

func newBrowseModel(filename string, log *zap.Logger) *browseModel {
	return &browseModel{
		filename: filename,
		log:      log,
		dev:      loopback.New(),
		state:    stateSelectRegister,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadDocument
}

func (m *browseModel) loadDocument() tea.Msg {
	doc, err := bitfile.Open(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	reg := registry.New(doc, registry.WithLogger(m.log))

	var regs []*registry.Register
	for _, name := range reg.RegisterNames() {
		r, err := reg.Register(name)
		if err != nil {
			return loadedMsg{err: err}
		}
		regs = append(regs, r)
	}
	if len(regs) == 0 {
		return loadedMsg{err: fmt.Errorf("%s has no usable registers", m.filename)}
	}
	return loadedMsg{regs: regs}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputValue {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectRegister && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectRegister && m.selected < len(m.regs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectRegister:
				if len(m.regs) == 0 {
					return m, nil
				}
				m.prepareInput()
				m.state = stateInputValue
				return m, textinput.Blink

			case stateInputValue:
				return m, m.writeRegister

			case stateShowResult:
				m.reset()
			}
			return m, nil

		case "esc":
			if m.state != stateSelectRegister {
				m.reset()
			}
			return m, nil
		}

	case loadedMsg:
		m.err = msg.err
		m.regs = msg.regs
		return m, nil

	case writeResultMsg:
		m.err = msg.err
		m.value = msg.value
		m.words = msg.words
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInputValue {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *browseModel) reset() {
	m.state = stateSelectRegister
	m.value = ""
	m.words = ""
	m.err = nil
}

func (m *browseModel) prepareInput() {
	r := m.regs[m.selected]
	ti := textinput.New()
	ti.Placeholder = r.Descriptor().String()
	ti.Prompt = r.Name() + " = "
	ti.Width = 60
	ti.Focus()
	m.input = ti
}

func (m *browseModel) writeRegister() tea.Msg {
	ctx := context.Background()
	r := m.regs[m.selected]

	v, err := decodeJSON(m.input.Value())
	if err != nil {
		return writeResultMsg{err: err}
	}
	if err := r.Write(ctx, m.dev, v); err != nil {
		return writeResultMsg{err: err}
	}

	words := make([]uint32, r.Words())
	if err := m.dev.ReadRegister(ctx, r.Offset(), words); err != nil {
		return writeResultMsg{err: err}
	}
	back, err := r.Read(ctx, m.dev)
	if err != nil {
		return writeResultMsg{err: err}
	}
	text, err := encodeJSON(back)
	if err != nil {
		return writeResultMsg{err: err}
	}
	return writeResultMsg{value: text, words: formatWords(words)}
}

func (m *browseModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.regs) == 0 {
		return "Loading document..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("FPGA Registers"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectRegister:
		b.WriteString("Select a register to write:\n\n")
		for i, r := range m.regs {
			line := formatRegister(r)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter write • q quit"))

	case stateInputValue:
		r := m.regs[m.selected]
		b.WriteString(fmt.Sprintf("Writing %s at 0x%x\n\n", nameStyle.Render(r.Name()), r.Offset()))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter write • esc back"))

	case stateShowResult:
		r := m.regs[m.selected]
		b.WriteString(fmt.Sprintf("Read back %s:\n\n", nameStyle.Render(r.Name())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.value))
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("words: " + m.words))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatRegister(r *registry.Register) string {
	s := nameStyle.Render(r.Name()) + ": " + typeStyle.Render(r.Descriptor().String())
	if r.Indicator() {
		s += helpStyle.Render(" (indicator)")
	}
	return s
}
