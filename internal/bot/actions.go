package bot

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
	"github.com/BTreeMap/PennyPipe/internal/reports"
	"github.com/BTreeMap/PennyPipe/internal/ui"
)

// manageListSize caps how many entries the management listing offers at once.
const manageListSize = 5

// handleMenuAction runs the stateless actions available when no flow is
// active. Unknown or malformed payloads are dropped silently: they are stale
// buttons from superseded messages, not errors.
func (b *Bot) handleMenuAction(ctx context.Context, ev messaging.Event) {
	cb := models.ParseCallback(ev.Payload)
	chatID := ev.ChatID
	slog.Debug("Menu action", "chat_id", chatID, "action", cb.Action)

	switch cb.Action {
	case models.ActionStartExpense:
		b.startFlow(ctx, chatID, func() error { return b.engine.StartTransaction(ctx, chatID, models.KindExpense) })
	case models.ActionStartIncome:
		b.startFlow(ctx, chatID, func() error { return b.engine.StartTransaction(ctx, chatID, models.KindIncome) })
	case models.ActionStartRecurring:
		b.startFlow(ctx, chatID, func() error { return b.engine.StartRecurring(ctx, chatID) })

	case models.ActionShowSummary:
		b.showSummary(ctx, chatID)
	case models.ActionShowLast:
		b.showLast(ctx, chatID, 5)

	case models.ActionManage:
		b.showManage(ctx, chatID)
	case models.ActionManageRecurring:
		b.showManageRecurring(ctx, chatID)

	case models.ActionEdit:
		row, ok := parseRow(cb.Arg(0))
		if !ok {
			return
		}
		b.sendMarkdown(ctx, chatID, "Which field do you want to change?", ui.FieldMenuKeyboard(row))

	case models.ActionEditField:
		row, ok := parseRow(cb.Arg(0))
		if !ok || cb.Arg(1) == "" || cb.Arg(2) == "" {
			return
		}
		req := models.EditFieldRequest{Row: row, Column: cb.Arg(1), FieldName: cb.Arg(2)}
		b.startFlow(ctx, chatID, func() error { return b.engine.StartEdit(ctx, chatID, req) })

	case models.ActionDelete:
		row, ok := parseRow(cb.Arg(0))
		if !ok {
			return
		}
		b.sendMarkdown(ctx, chatID, "Delete this entry? This cannot be undone.", ui.DeleteConfirmKeyboard(row))

	case models.ActionConfirmDelete:
		row, ok := parseRow(cb.Arg(0))
		if !ok {
			return
		}
		if err := b.ledger.DeleteRow(ctx, row); err != nil {
			slog.Error("Entry deletion failed", "chat_id", chatID, "row", row, "error", err)
			b.send(ctx, chatID, "⚠️ Couldn't delete the entry. Please try again.")
			return
		}
		b.send(ctx, chatID, "🗑 Entry deleted.")

	case models.ActionDeleteRecurring:
		row, ok := parseRow(cb.Arg(0))
		if !ok {
			return
		}
		if err := b.ledger.DeleteRecurringRow(ctx, row); err != nil {
			slog.Error("Recurring deletion failed", "chat_id", chatID, "row", row, "error", err)
			b.send(ctx, chatID, "⚠️ Couldn't delete the recurring entry. Please try again.")
			return
		}
		b.send(ctx, chatID, "🗑 Recurring entry deleted.")

	default:
		slog.Debug("Ignoring stale menu payload", "chat_id", chatID, "payload", ev.Payload)
	}
}

func (b *Bot) startFlow(ctx context.Context, chatID int64, start func() error) {
	if err := start(); err != nil {
		slog.Error("Flow start failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) showSummary(ctx context.Context, chatID int64) {
	entries, err := b.ledger.Entries(ctx)
	if err != nil {
		slog.Error("Summary entries read failed", "chat_id", chatID, "error", err)
		b.send(ctx, chatID, "⚠️ Couldn't read the spreadsheet. Please try again.")
		return
	}
	budgets, err := b.ledger.Budgets(ctx)
	if err != nil {
		slog.Warn("Budget read failed, summarizing without budgets", "chat_id", chatID, "error", err)
		budgets = models.Budgets{}
	}
	b.sendMarkdown(ctx, chatID, reports.Summary(entries, budgets, time.Now()), nil)
}

func (b *Bot) showLast(ctx context.Context, chatID int64, n int) {
	entries, err := b.ledger.Entries(ctx)
	if err != nil {
		slog.Error("Listing read failed", "chat_id", chatID, "error", err)
		b.send(ctx, chatID, "⚠️ Couldn't read the spreadsheet. Please try again.")
		return
	}
	b.sendMarkdown(ctx, chatID, reports.LastEntries(entries, n), nil)
}

// showManage re-lists on every call: the row handles on the buttons are
// positional and go stale after any deletion.
func (b *Bot) showManage(ctx context.Context, chatID int64) {
	entries, err := b.ledger.Entries(ctx)
	if err != nil {
		slog.Error("Manage listing read failed", "chat_id", chatID, "error", err)
		b.send(ctx, chatID, "⚠️ Couldn't read the spreadsheet. Please try again.")
		return
	}
	if len(entries) > manageListSize {
		entries = entries[len(entries)-manageListSize:]
	}
	if len(entries) == 0 {
		b.send(ctx, chatID, "🧾 No entries to manage yet.")
		return
	}
	b.sendMarkdown(ctx, chatID, "🛠 *Latest entries* — tap to edit or delete:", ui.ManageKeyboard(entries))
}

func (b *Bot) showManageRecurring(ctx context.Context, chatID int64) {
	entries, err := b.ledger.Recurring(ctx)
	if err != nil {
		slog.Error("Recurring listing read failed", "chat_id", chatID, "error", err)
		b.send(ctx, chatID, "⚠️ Couldn't read the spreadsheet. Please try again.")
		return
	}
	if len(entries) == 0 {
		b.send(ctx, chatID, "📅 No recurring entries yet.")
		return
	}
	b.sendMarkdown(ctx, chatID, "📅 *Recurring entries* — tap to delete:", ui.RecurringManageKeyboard(entries))
}

func parseRow(s string) (int, bool) {
	row, err := strconv.Atoi(s)
	if err != nil || row < 2 {
		// Row 1 is the header; anything below 2 is a malformed payload.
		return 0, false
	}
	return row, true
}
