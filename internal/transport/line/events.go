package line

import "github.com/sandevgo/replybot/internal/core"

const source = "line"

type webhookBody struct {
	Destination string         `json:"destination"`
	Events      []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type           string        `json:"type"`
	Mode           string        `json:"mode"`
	ReplyToken     string        `json:"replyToken"`
	WebhookEventID string        `json:"webhookEventId"`
	Source         eventSource   `json:"source"`
	Message        *eventMessage `json:"message,omitempty"`
	DeliveryCtx    *deliveryCtx  `json:"deliveryContext,omitempty"`
}

type eventSource struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId,omitempty"`
	RoomID  string `json:"roomId,omitempty"`
}

type eventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

type deliveryCtx struct {
	IsRedelivery bool `json:"isRedelivery"`
}

// toInbound maps a LINE webhook event onto the router's event model.
func (e webhookEvent) toInbound() core.InboundEvent {
	ev := core.InboundEvent{
		Kind:        core.EventOther,
		Identity:    e.Source.UserID,
		ReplyHandle: e.ReplyToken,
		Source:      source,
	}

	// standby channels must not answer
	if e.Mode == "standby" {
		return ev
	}

	switch e.Type {
	case "follow":
		ev.Kind = core.EventFollow
	case "message":
		if e.Message != nil && e.Message.Type == "text" {
			ev.Kind = core.EventText
			ev.Text = e.Message.Text
		}
	}
	return ev
}
