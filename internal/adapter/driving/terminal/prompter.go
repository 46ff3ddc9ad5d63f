// Package terminal is the interactive driving side of the CLI: it answers the
// credential run's input requests from the keyboard and renders the result.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
	"github.com/ericfisherdev/tgapikeys/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Prompter = (*Prompter)(nil)

// ErrPromptCanceled is returned when the user leaves a prompt with Esc or Ctrl+C.
var ErrPromptCanceled = errors.New("prompt canceled")

// Prompter asks for each value with a single-line bubbletea input.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading keys from in and drawing on out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Ask blocks until the user submits a value, cancels, or ctx is done.
func (p *Prompter) Ask(ctx context.Context, req model.InputRequest) (string, error) {
	prog := tea.NewProgram(newPromptModel(req),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", req.Kind, err)
	}

	m, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("prompt %s: unexpected model %T", req.Kind, final)
	}
	if m.canceled {
		return "", ErrPromptCanceled
	}
	return m.value, nil
}

// promptModel is the bubbletea model for one input request.
type promptModel struct {
	req      model.InputRequest
	input    textinput.Model
	value    string
	done     bool
	canceled bool
}

func newPromptModel(req model.InputRequest) promptModel {
	ti := textinput.New()
	ti.Placeholder = req.Placeholder
	ti.CharLimit = 32
	ti.Focus()

	return promptModel{req: req, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.value = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.canceled = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		labelStyle.Render(m.req.Prompt),
		m.input.View(),
		helpStyle.Render("Enter: submit  Esc: cancel"),
	)
}
