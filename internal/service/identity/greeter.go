package identity

import "strings"

const (
	DefaultGreetingTemplate = "Hi {name} 👋 Welcome aboard! Ask me anything about taxes or company registration 📄💡"
	DefaultGenericGreeting  = "Hi there 👋 Welcome aboard! Ask me anything about taxes or company registration 📄💡"
)

// Greeter builds first-contact greetings. The template may contain {name}.
type Greeter struct {
	template string
	generic  string
}

// NewGreeter falls back to the built-in texts for empty arguments.
func NewGreeter(template, generic string) *Greeter {
	if strings.TrimSpace(template) == "" {
		template = DefaultGreetingTemplate
	}
	if strings.TrimSpace(generic) == "" {
		generic = DefaultGenericGreeting
	}
	return &Greeter{template: template, generic: generic}
}

// Personal greets by display name, or generically when the name is blank.
func (g *Greeter) Personal(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return g.generic
	}
	return strings.ReplaceAll(g.template, "{name}", name)
}

func (g *Greeter) Generic() string {
	return g.generic
}
