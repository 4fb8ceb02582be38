package line

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/pkg/log"
)

const (
	signatureHeader = "X-Line-Signature"
	maxBodyBytes    = 1 << 20
)

// Dispatcher routes a batch and delivers the replies. router.Router satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []core.InboundEvent, client core.ReplyClient) []core.ReplyDecision
}

// Webhook authenticates LINE deliveries and hands their events to the dispatcher.
type Webhook struct {
	secret     []byte
	dispatcher Dispatcher
	client     core.ReplyClient
}

func NewWebhook(channelSecret string, dispatcher Dispatcher, client core.ReplyClient) *Webhook {
	return &Webhook{
		secret:     []byte(channelSecret),
		dispatcher: dispatcher,
		client:     client,
	}
}

func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := log.With(r.Context(), func(c zerolog.Context) zerolog.Context {
		return c.Str("request_id", uuid.NewString()).Str("transport", source)
	})
	logger := log.FromCtx(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read webhook body")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if !h.validSignature(body, r.Header.Get(signatureHeader)) {
		logger.Warn().Msg("rejected webhook with invalid signature")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var payload webhookBody
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Warn().Err(err).Msg("failed to decode webhook body")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	events := make([]core.InboundEvent, 0, len(payload.Events))
	for _, e := range payload.Events {
		if e.DeliveryCtx != nil && e.DeliveryCtx.IsRedelivery {
			logger.Debug().Str("webhook_event_id", e.WebhookEventID).Msg("redelivered event")
		}
		events = append(events, e.toInbound())
	}

	logger.Debug().Int("events", len(events)).Msg("webhook received")

	// replies must still go out if LINE drops the connection early
	decisions := h.dispatcher.Dispatch(context.WithoutCancel(ctx), events, h.client)

	logger.Debug().Int("replies", len(decisions)).Msg("webhook handled")

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte("{}"))
}

func (h *Webhook) validSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, Sign(h.secret, body))
}

// Sign computes the raw HMAC-SHA256 LINE puts, base64 encoded, in X-Line-Signature.
func Sign(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return mac.Sum(nil)
}
