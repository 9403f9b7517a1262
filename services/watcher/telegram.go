package watcher

import (
	"context"
	"log/slog"
	"strconv"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type TelegramConfig struct {
	Token  string `json:"token"`
	ChatId int64  `json:"chat_id"`
	// ErrorChatId receives failure reports, defaults to ChatId.
	ErrorChatId int64 `json:"error_chat_id"`
}

func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatId != 0
}

// telegramAPI is the part of *tgbotapi.BotAPI the notifier uses.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// maxMessageLength is telegram's limit for the text of one message.
const maxMessageLength = 4096

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-1]) + "…"
}

// TelegramNotifier posts every change as a new message and deletes the
// message it posted before, so the chat only ever shows the current plan.
type TelegramNotifier struct {
	api    telegramAPI
	config TelegramConfig
	store  Store
}

func NewTelegramNotifier(api telegramAPI, config TelegramConfig, store Store) TelegramNotifier {
	return TelegramNotifier{
		api:    api,
		config: config,
		store:  store,
	}
}

// NewTelegramBot connects to the bot api, `endpoint` may be empty to use the
// public api.
func NewTelegramBot(token, endpoint string) (*tgbotapi.BotAPI, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
}

func (n TelegramNotifier) Name() string {
	return "telegram"
}

func (n TelegramNotifier) Notify(ctx context.Context, msg Message) error {
	ctx, span := tracer.Start(ctx, "TelegramNotifier.Notify")
	defer span.End()

	if msg.IsError {
		chatId := n.config.ErrorChatId
		if chatId == 0 {
			chatId = n.config.ChatId
		}
		_, err := n.api.Send(tgbotapi.NewMessage(chatId, truncate(msg.Title+"\n\n"+msg.Text, maxMessageLength)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to send error report")
		}
		return err
	}

	previous, err := n.store.SentMessage(ctx, n.Name(), msg.Filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read previous message")
		return err
	}

	sent, err := n.api.Send(tgbotapi.NewMessage(
		n.config.ChatId,
		truncate(msg.Title+"\n\n"+msg.Text, maxMessageLength),
	))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send message")
		return err
	}
	span.SetAttributes(attribute.Int("message_id", sent.MessageID))

	err = n.store.SetSentMessage(ctx, n.Name(), msg.Filter, strconv.Itoa(sent.MessageID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store message id")
		return err
	}

	if previous == "" {
		return nil
	}
	previousId, err := strconv.Atoi(previous)
	if err != nil {
		slog.WarnContext(ctx, "invalid stored message id", "reference", previous, "err", err)
		return nil
	}
	_, err = n.api.Request(tgbotapi.NewDeleteMessage(n.config.ChatId, previousId))
	if err != nil {
		// the message may already be gone, the new one is out either way
		slog.WarnContext(ctx, "delete previous message", "message_id", previousId, "err", err)
	}
	return nil
}
