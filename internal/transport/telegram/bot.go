package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/replybot/internal/config"
	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"
	source         = "telegram"
	identityPrefix = "telegram-"
)

// Dispatcher routes a batch and delivers the replies. router.Router satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []core.InboundEvent, client core.ReplyClient) []core.ReplyDecision
}

type Bot struct {
	bot        *tele.Bot
	sender     *sender
	dispatcher Dispatcher
}

func NewBot(ctx context.Context, cfg *config.TelegramConfig) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		sender: newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleText)

	return bot, nil
}

// Bind sets the dispatcher. It must be called before Start; the bot itself
// is the dispatcher's profile resolver, so both cannot be built in one step.
func (b *Bot) Bind(d Dispatcher) {
	b.dispatcher = d
}

func (b *Bot) Start(ctx context.Context) error {
	if b.dispatcher == nil {
		return fmt.Errorf("telegram bot started without a dispatcher")
	}
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// Reply sends text to the chat whose id is replyHandle.
func (b *Bot) Reply(ctx context.Context, replyHandle, text string) error {
	chatID, err := strconv.ParseInt(replyHandle, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", replyHandle, err)
	}
	return b.sender.sendMarkdown(ctx, &tele.Chat{ID: chatID}, text)
}

// DisplayName looks up the user's private chat for a name to greet with.
func (b *Bot) DisplayName(ctx context.Context, identity string) (string, error) {
	userID, err := userIDFromIdentity(identity)
	if err != nil {
		return "", err
	}

	chat, err := b.bot.ChatByID(userID)
	if err != nil {
		return "", fmt.Errorf("get chat %d: %w", userID, err)
	}
	return chatName(chat), nil
}

func (b *Bot) handleStart(c tele.Context) error {
	return b.dispatch(c, core.EventFollow, "")
}

func (b *Bot) handleText(c tele.Context) error {
	return b.dispatch(c, core.EventText, c.Text())
}

func (b *Bot) dispatch(c tele.Context, kind core.EventKind, text string) error {
	ctx, ok := c.Get(baseContextKey).(context.Context)
	if !ok {
		ctx = context.Background()
	}
	if c.Sender() == nil || c.Chat() == nil {
		return nil
	}

	ev := newEvent(kind, c.Sender().ID, c.Chat().ID, text)
	if kind == core.EventText {
		_ = c.Notify(tele.Typing)
	}

	b.dispatcher.Dispatch(ctx, []core.InboundEvent{ev}, b)
	return nil
}

func newEvent(kind core.EventKind, userID, chatID int64, text string) core.InboundEvent {
	return core.InboundEvent{
		Kind:        kind,
		Identity:    identityPrefix + strconv.FormatInt(userID, 10),
		ReplyHandle: strconv.FormatInt(chatID, 10),
		Text:        text,
		Source:      source,
	}
}

func userIDFromIdentity(identity string) (int64, error) {
	raw, ok := strings.CutPrefix(identity, identityPrefix)
	if !ok {
		return 0, fmt.Errorf("not a telegram identity: %q", identity)
	}
	return strconv.ParseInt(raw, 10, 64)
}

func chatName(chat *tele.Chat) string {
	name := strings.TrimSpace(chat.FirstName + " " + chat.LastName)
	if name == "" {
		name = chat.Username
	}
	return name
}
