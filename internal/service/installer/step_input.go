package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/replybot/internal/service/ui"
)

// InputStep asks for a single value. Steps whose When returns false are skipped.
type InputStep struct {
	Title    string
	Key      string
	Hint     string
	Default  string
	Secret   bool
	Optional bool
	When     func(*InstallState) bool

	input  textinput.Model
	active bool
	err    string
}

// Init emits a message right away so Update can decide whether to skip.
func (s *InputStep) Init() tea.Cmd {
	return next
}

func (s *InputStep) activate() tea.Cmd {
	s.input = textinput.New()
	s.input.Placeholder = s.Hint
	if s.Optional {
		s.input.Placeholder = strings.TrimSpace(s.Hint + " (optional, Enter to skip)")
	}
	s.input.CharLimit = 512
	s.input.Width = 48
	if s.Secret {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
	s.active = true
	return s.input.Focus()
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.active {
		if s.When != nil && !s.When(state) {
			return nil, nil
		}
		return s, s.activate()
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			value = s.Default
		}
		if value == "" && !s.Optional {
			s.err = "a value is required"
			return s, nil
		}
		if value != "" {
			state.EnvVars[s.Key] = value
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	if !s.active {
		return "Loading...\n"
	}

	view := fmt.Sprintf("Enter the %s:\n\n%s\n\n(press enter to confirm)\n", s.Title, s.input.View())
	if s.err != "" {
		view += "\n" + ui.ErrorStyle.Render(s.err) + "\n"
	}
	return view
}
