// Package bot wires inbound chat events to the flow engine and the stateless
// menu actions. It owns the routing rule that an active conversation captures
// every event for its chat, and serializes event handling per chat.
package bot

import (
	"context"
	"log/slog"

	"github.com/BTreeMap/PennyPipe/internal/flow"
	"github.com/BTreeMap/PennyPipe/internal/ledger"
	"github.com/BTreeMap/PennyPipe/internal/messaging"
)

// Bot consumes transport events and dispatches them.
type Bot struct {
	engine    *flow.Engine
	ledger    ledger.Ledger
	transport messaging.ChatTransport
	queues    *chatQueues
}

// New creates a bot over its collaborators.
func New(engine *flow.Engine, led ledger.Ledger, transport messaging.ChatTransport) *Bot {
	b := &Bot{engine: engine, ledger: led, transport: transport}
	b.queues = newChatQueues(func(ctx context.Context, ev messaging.Event) {
		b.dispatch(ctx, ev)
	})
	return b
}

// Run starts the transport and processes its events until the context is
// cancelled or the transport closes its event channel.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.transport.Start(ctx); err != nil {
		return err
	}
	defer b.transport.Stop()
	defer b.queues.close()

	slog.Info("Bot running")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-b.transport.Events():
			if !ok {
				return nil
			}
			b.queues.submit(ctx, ev)
		}
	}
}

// dispatch routes one event. Button presses are acknowledged up front so the
// chat client stops its spinner regardless of what the press turns out to
// mean. An active flow captures the whole event; otherwise button payloads
// select a stateless action and texts are treated as commands or quick
// entries.
func (b *Bot) dispatch(ctx context.Context, ev messaging.Event) {
	if ev.IsButton() {
		b.transport.Acknowledge(ev.CallbackID)
		if b.engine.Active(ev.ChatID) {
			if err := b.engine.HandleButton(ctx, ev.ChatID, ev.Message, ev.Payload); err != nil {
				slog.Error("Flow button handling failed", "chat_id", ev.ChatID, "error", err)
			}
			return
		}
		b.handleMenuAction(ctx, ev)
		return
	}

	if b.engine.Active(ev.ChatID) {
		if err := b.engine.HandleText(ctx, ev.ChatID, ev.Text); err != nil {
			slog.Error("Flow text handling failed", "chat_id", ev.ChatID, "error", err)
		}
		return
	}
	b.handleCommand(ctx, ev)
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	if _, err := b.transport.Send(ctx, chatID, text, nil); err != nil {
		slog.Error("Bot send failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendMarkdown(ctx context.Context, chatID int64, text string, kb messaging.Keyboard) {
	opts := &messaging.Options{Markdown: true, Keyboard: kb}
	if _, err := b.transport.Send(ctx, chatID, text, opts); err != nil {
		slog.Error("Bot send failed", "chat_id", chatID, "error", err)
	}
}
