package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values from the answers.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return next
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	state.EnvVars["ENABLE_LINE"] = boolString(usesLine(state))
	state.EnvVars["ENABLE_TELEGRAM"] = boolString(usesTelegram(state))

	if state.EnvVars["REPLYBOT_DEBUG"] == "" {
		state.EnvVars["REPLYBOT_DEBUG"] = "0"
	}

	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
