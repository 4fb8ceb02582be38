package fallback

// Messages are the fixed user-visible replies for each failure kind.
type Messages struct {
	Throttled         string
	ProviderThrottled string
	Misconfigured     string
	Unavailable       string
	NoContent         string
}

func DefaultMessages() Messages {
	return Messages{
		Throttled:         "You're sending messages a little too fast 🙏 Please wait a moment and try again.",
		ProviderThrottled: "Lots of questions are coming in right now 🙇 Please try again in a minute.",
		Misconfigured:     "Sorry, I can't answer that right now. Our team has been notified 🛠️",
		Unavailable:       "Sorry, the service is busy right now, please try again later ⏳",
		NoContent:         "Sorry, I don't have an answer for that yet 🤔",
	}
}

// WithDefaults fills empty fields from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	if m.Throttled == "" {
		m.Throttled = d.Throttled
	}
	if m.ProviderThrottled == "" {
		m.ProviderThrottled = d.ProviderThrottled
	}
	if m.Misconfigured == "" {
		m.Misconfigured = d.Misconfigured
	}
	if m.Unavailable == "" {
		m.Unavailable = d.Unavailable
	}
	if m.NoContent == "" {
		m.NoContent = d.NoContent
	}
	return m
}

// For returns the reply shown for a failed Resolve.
func (m Messages) For(err error) string {
	switch KindOf(err) {
	case KindThrottled:
		return m.Throttled
	case KindProviderThrottled:
		return m.ProviderThrottled
	case KindProviderMisconfigured:
		return m.Misconfigured
	default:
		return m.Unavailable
	}
}
