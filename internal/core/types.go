package core

const (
	BotName       = "ReplyBot"
	BotUserAgent  = "ReplyBot/0.1"
	RepositoryURL = "https://github.com/sandevgo/replybot"
	Version       = "0.1.0"
)

// EventKind tags an InboundEvent.
type EventKind int

const (
	EventOther EventKind = iota
	EventFollow
	EventText
)

func (k EventKind) String() string {
	switch k {
	case EventFollow:
		return "follow"
	case EventText:
		return "text"
	default:
		return "other"
	}
}

// InboundEvent is a single conversational event decoded by a transport.
// Text is only meaningful for EventText.
type InboundEvent struct {
	Kind        EventKind
	Identity    string
	ReplyHandle string
	Text        string
	Source      string // transport name, for logs
}

// ReplyDecision is the single reply produced for an event.
type ReplyDecision struct {
	ReplyHandle string `json:"reply_handle"`
	Text        string `json:"text"`
}

// KnowledgeRecord is a raw knowledge source record before validation.
// Question is the legacy single-phrase FAQ format and counts as one more trigger.
type KnowledgeRecord struct {
	Triggers []string `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	Question string   `json:"question,omitempty" yaml:"question,omitempty"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// AllTriggers returns Triggers plus Question when set.
func (r KnowledgeRecord) AllTriggers() []string {
	if r.Question == "" {
		return r.Triggers
	}
	out := make([]string, 0, len(r.Triggers)+1)
	out = append(out, r.Triggers...)
	return append(out, r.Question)
}
