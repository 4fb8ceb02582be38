// Package installer is the interactive first-run setup that writes <runtime>/.env.
package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/replybot/internal/service/ui"
)

// Step represents a single step in the installation wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

const (
	keyProvider = "LLM_PROVIDER"
	keyChannel  = "_CHANNEL"
)

const (
	channelLine     = "LINE"
	channelTelegram = "Telegram"
	channelBoth     = "LINE + Telegram"
)

func getSteps(runtimePath string) []Step {
	steps := []Step{
		NewSelectStep("Select the generative fallback provider:", keyProvider,
			[]string{"openai", "gemini", "anthropic", "openrouter", "ollama", "custom"}),
	}
	steps = append(steps, apiKeySteps()...)
	steps = append(steps,
		&InputStep{
			Title: "Custom OpenAI-compatible base URL",
			Key:   "CUSTOM_OPENAI_BASE_URL",
			Hint:  "https://llm.internal:8000",
			When:  providerIs("custom"),
		},
		&InputStep{
			Title:    "Ollama base URL",
			Key:      "OLLAMA_BASE_URL",
			Hint:     "http://localhost:11434",
			When:     providerIs("ollama"),
			Default:  "http://localhost:11434",
			Optional: true,
		},
		NewSelectStep("Select the chat channel:", keyChannel,
			[]string{channelLine, channelTelegram, channelBoth}),
		&InputStep{Title: "LINE channel secret", Key: "LINE_CHANNEL_SECRET", Secret: true, When: usesLine},
		&InputStep{Title: "LINE channel access token", Key: "LINE_CHANNEL_ACCESS_TOKEN", Secret: true, When: usesLine},
		&InputStep{Title: "Telegram bot token", Key: "TELEGRAM_TOKEN", Hint: "123456:ABC-DEF...", Secret: true, When: usesTelegram},
		&InputStep{
			Title:    "Knowledge base file",
			Key:      "KNOWLEDGE_PATH",
			Hint:     "faq.json",
			Default:  "faq.json",
			Optional: true,
		},
		NewFinalizationStep(),
		NewSaveEnvStep(runtimePath),
	)
	return steps
}

func apiKeySteps() []Step {
	keys := []struct {
		provider, key, title, hint string
		optional                   bool
	}{
		{"openai", "OPENAI_API_KEY", "OpenAI API key", "sk-...", false},
		{"gemini", "GEMINI_API_KEY", "Gemini API key", "AIza...", false},
		{"anthropic", "ANTHROPIC_API_KEY", "Anthropic API key", "sk-ant-...", false},
		{"openrouter", "OPENROUTER_API_KEY", "OpenRouter API key", "sk-or-v1-...", false},
		{"ollama", "OLLAMA_API_KEY", "Ollama API key", "", true},
		{"custom", "CUSTOM_OPENAI_API_KEY", "Custom endpoint API key", "", true},
	}

	steps := make([]Step, 0, len(keys))
	for _, k := range keys {
		steps = append(steps, &InputStep{
			Title:    k.title,
			Key:      k.key,
			Hint:     k.hint,
			Secret:   true,
			Optional: k.optional,
			When:     providerIs(k.provider),
		})
	}
	return steps
}

func providerIs(name string) func(*InstallState) bool {
	return func(s *InstallState) bool { return s.EnvVars[keyProvider] == name }
}

func usesLine(s *InstallState) bool {
	ch := s.EnvVars[keyChannel]
	return ch == channelLine || ch == channelBoth
}

func usesTelegram(s *InstallState) bool {
	ch := s.EnvVars[keyChannel]
	return ch == channelTelegram || ch == channelBoth
}

type nextMsg struct{}

func next() tea.Msg { return nextMsg{} }

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func initialModel(runtimePath string) model {
	return model{
		steps:       getSteps(runtimePath),
		currentStep: 0,
		state:       NewInstallState(),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 && m.steps[0] != nil {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)

	if nextStep == nil {
		m.currentStep++
		if m.currentStep >= len(m.steps) {
			return m, tea.Quit
		}
		return m, m.steps[m.currentStep].Init()
	}

	// a step may swap itself out for branching
	if nextStep != m.steps[m.currentStep] {
		m.steps[m.currentStep] = nextStep
	}

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}

	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}

	return ui.TitleStyle.Render("Setting up ReplyBot 💬") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and writes <runtimePath>/.env on success.
func RunWizard(runtimePath string) (*InstallState, error) {
	p := tea.NewProgram(initialModel(runtimePath), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, fmt.Errorf("replybot setup interrupted")
	}

	return finalModel.state, nil
}
