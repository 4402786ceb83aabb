package flow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BTreeMap/PennyPipe/internal/models"
	"github.com/BTreeMap/PennyPipe/internal/ui"
)

// handleRecurring advances the NewRecurringEntry flow:
// description -> amount -> type -> category -> account -> day of month.
// There is no confirmation gate; a valid day persists immediately.
func (e *Engine) handleRecurring(ctx context.Context, chatID int64, state *models.ConversationState, in input) error {
	draft := state.Recurring

	switch state.Step {
	case models.StepAwaitingDescription:
		if in.isButton() {
			return nil
		}
		text := strings.TrimSpace(in.text)
		if text == "" {
			return e.send(ctx, chatID, "Send a short description for the recurring entry.")
		}
		draft.Description = text
		state.Step = models.StepAwaitingAmount
		return e.send(ctx, chatID, "Description set. How much is it?")

	case models.StepAwaitingAmount:
		if in.isButton() {
			return nil
		}
		amount, err := ParseAmount(in.text)
		if err != nil {
			return e.send(ctx, chatID, msgInvalidAmount)
		}
		draft.Amount = amount
		state.Step = models.StepAwaitingType
		return e.sendKeyboard(ctx, chatID, "Is it income or an expense?", ui.KindKeyboard())

	case models.StepAwaitingType:
		if !in.isButton() {
			return e.send(ctx, chatID, msgUseButtons)
		}
		kind := models.EntryKind(in.callback.Arg(0))
		if in.callback.Action != models.ActionData || !kind.Valid() {
			return nil
		}
		kb, err := e.categoriesKeyboard(ctx, kind)
		if err != nil {
			slog.Error("Recurring flow category fetch failed", "chat_id", chatID, "error", err)
			return e.send(ctx, chatID, msgLedgerReadFail)
		}
		draft.Kind = kind
		state.Step = models.StepAwaitingCategory
		e.retract(ctx, chatID, in)
		return e.sendKeyboard(ctx, chatID, "Ok. And the category?", kb)

	case models.StepAwaitingCategory:
		if !in.isButton() {
			return e.send(ctx, chatID, msgUseButtons)
		}
		if in.callback.Action != models.ActionData {
			return nil
		}
		kb, err := e.accountsKeyboard(ctx)
		if err != nil {
			slog.Error("Recurring flow account fetch failed", "chat_id", chatID, "error", err)
			return e.send(ctx, chatID, msgLedgerReadFail)
		}
		draft.Category = in.callback.Arg(0)
		state.Step = models.StepAwaitingAccount
		e.retract(ctx, chatID, in)
		return e.sendKeyboard(ctx, chatID, "And the account?", kb)

	case models.StepAwaitingAccount:
		if !in.isButton() {
			return e.send(ctx, chatID, msgUseButtons)
		}
		if in.callback.Action != models.ActionData {
			return nil
		}
		draft.Account = in.callback.Arg(0)
		state.Step = models.StepAwaitingDayOfMonth
		e.retract(ctx, chatID, in)
		return e.send(ctx, chatID, "Which day of the month (1-31) should it post?")

	case models.StepAwaitingDayOfMonth:
		if in.isButton() {
			return nil
		}
		day, err := ParseDayOfMonth(in.text)
		if err != nil {
			return e.send(ctx, chatID, "❌ Invalid day. Send a number from 1 to 31.")
		}
		draft.DayOfMonth = day
		if err := e.ledger.AddRecurring(ctx, *draft); err != nil {
			// State stays at this step; sending the day again retries the write.
			slog.Error("Recurring entry commit failed", "chat_id", chatID, "error", err)
			return e.send(ctx, chatID, msgPersistFailed)
		}
		e.states.Clear(chatID)
		slog.Info("Recurring entry saved", "chat_id", chatID, "description", draft.Description, "day", day)
		return e.send(ctx, chatID, "✅ Recurring entry saved!")

	default:
		slog.Error("Recurring flow unknown step", "chat_id", chatID, "step", state.Step)
		e.states.Clear(chatID)
		return nil
	}
}
