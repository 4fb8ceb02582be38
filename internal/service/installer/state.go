package installer

import "github.com/sandevgo/replybot/pkg/env"

// InstallState collects answers as environment variables. Keys starting
// with an underscore are wizard-internal and never written.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

// Render returns the .env content for every non-internal variable.
func (s *InstallState) Render() string {
	out := make(map[string]string, len(s.EnvVars))
	for k, v := range s.EnvVars {
		if len(k) > 0 && k[0] == '_' {
			continue
		}
		out[k] = v
	}
	return env.FormatEnv(out)
}
