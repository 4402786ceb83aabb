// Package telegram implements messaging.ChatTransport over the Telegram Bot
// API using long polling.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
)

// Transport is a Telegram-backed ChatTransport.
type Transport struct {
	api    *tgbotapi.BotAPI
	events chan messaging.Event
}

// Compile-time check that Transport implements messaging.ChatTransport.
var _ messaging.ChatTransport = (*Transport)(nil)

// NewTransport authenticates against the Telegram Bot API.
func NewTransport(token string) (*Transport, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	slog.Info("Telegram transport authenticated", "username", api.Self.UserName)
	return &Transport{
		api:    api,
		events: make(chan messaging.Event, 64),
	}, nil
}

// Start begins long polling and translating updates into events.
func (t *Transport) Start(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := t.api.GetUpdatesChan(cfg)

	go func() {
		defer close(t.events)
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if ev, ok := translate(update); ok {
					t.events <- ev
				}
			}
		}
	}()
	return nil
}

// Stop halts long polling; the event channel closes once the update stream
// drains.
func (t *Transport) Stop() {
	t.api.StopReceivingUpdates()
}

// Events returns the inbound event channel.
func (t *Transport) Events() <-chan messaging.Event {
	return t.events
}

// translate maps a Telegram update onto a transport event. Updates that are
// neither text messages nor callback queries are dropped.
func translate(update tgbotapi.Update) (messaging.Event, bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		cq := update.CallbackQuery
		return messaging.Event{
			ChatID:     cq.Message.Chat.ID,
			Payload:    cq.Data,
			CallbackID: cq.ID,
			Message:    messaging.MessageRef{MessageID: cq.Message.MessageID},
		}, true
	case update.Message != nil && update.Message.Text != "":
		return messaging.Event{
			ChatID: update.Message.Chat.ID,
			Text:   update.Message.Text,
		}, true
	default:
		return messaging.Event{}, false
	}
}

// Send delivers a new message.
func (t *Transport) Send(ctx context.Context, chatID int64, text string, opts *messaging.Options) (messaging.MessageRef, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if opts != nil {
		if opts.Markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		if opts.Keyboard != nil {
			msg.ReplyMarkup = toMarkup(opts.Keyboard)
		}
	}
	sent, err := t.api.Send(msg)
	if err != nil {
		return messaging.MessageRef{}, fmt.Errorf("telegram send: %w", err)
	}
	return messaging.MessageRef{MessageID: sent.MessageID}, nil
}

// EditText replaces an earlier message's text.
func (t *Transport) EditText(ctx context.Context, chatID int64, ref messaging.MessageRef, text string, opts *messaging.Options) error {
	edit := tgbotapi.NewEditMessageText(chatID, ref.MessageID, text)
	if opts != nil {
		if opts.Markdown {
			edit.ParseMode = tgbotapi.ModeMarkdown
		}
		if opts.Keyboard != nil {
			markup := toMarkup(opts.Keyboard)
			edit.ReplyMarkup = &markup
		}
	}
	if _, err := t.api.Send(edit); err != nil {
		return fmt.Errorf("telegram edit text: %w", err)
	}
	return nil
}

// EditKeyboard replaces an earlier message's inline keyboard; an empty
// keyboard strips the buttons.
func (t *Transport) EditKeyboard(ctx context.Context, chatID int64, ref messaging.MessageRef, kb messaging.Keyboard) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, ref.MessageID, toMarkup(kb))
	if _, err := t.api.Send(edit); err != nil {
		return fmt.Errorf("telegram edit keyboard: %w", err)
	}
	return nil
}

// Acknowledge answers a callback query so the client stops its spinner. It
// runs in the background and never blocks dispatch; a lost acknowledgement
// only leaves the spinner running until the client times out.
func (t *Transport) Acknowledge(callbackID string) {
	go func() {
		if _, err := t.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
			slog.Warn("Telegram callback acknowledgement failed", "callback_id", callbackID, "error", err)
		}
	}()
}

// toMarkup converts the transport-neutral keyboard to Telegram's form.
func toMarkup(kb messaging.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
