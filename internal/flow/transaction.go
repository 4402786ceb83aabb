package flow

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
	"github.com/BTreeMap/PennyPipe/internal/ui"
)

// handleTransaction advances the NewTransaction flow:
// amount -> category -> account -> description -> confirmation.
func (e *Engine) handleTransaction(ctx context.Context, chatID int64, state *models.ConversationState, in input) error {
	draft := state.Transaction

	switch state.Step {
	case models.StepAwaitingAmount:
		if in.isButton() {
			return nil
		}
		amount, err := ParseAmount(in.text)
		if err != nil {
			return e.send(ctx, chatID, msgInvalidAmount)
		}
		// Fetch the next prompt's choices before committing the step so a
		// backend failure leaves the state replayable.
		kb, err := e.categoriesKeyboard(ctx, draft.Kind)
		if err != nil {
			slog.Error("Transaction flow category fetch failed", "chat_id", chatID, "error", err)
			return e.send(ctx, chatID, msgLedgerReadFail)
		}
		draft.Amount = amount
		state.Step = models.StepAwaitingCategory
		return e.sendKeyboard(ctx, chatID, "Great. Now pick the category:", kb)

	case models.StepAwaitingCategory:
		if !in.isButton() {
			return e.send(ctx, chatID, msgUseButtons)
		}
		if in.callback.Action != models.ActionData {
			return nil
		}
		kb, err := e.accountsKeyboard(ctx)
		if err != nil {
			slog.Error("Transaction flow account fetch failed", "chat_id", chatID, "error", err)
			return e.send(ctx, chatID, msgLedgerReadFail)
		}
		draft.Category = in.callback.Arg(0)
		state.Step = models.StepAwaitingAccount
		e.retract(ctx, chatID, in)
		return e.sendKeyboard(ctx, chatID, "Category: "+draft.Category+". Which account?", kb)

	case models.StepAwaitingAccount:
		if !in.isButton() {
			return e.send(ctx, chatID, msgUseButtons)
		}
		if in.callback.Action != models.ActionData {
			return nil
		}
		draft.Account = in.callback.Arg(0)
		state.Step = models.StepAwaitingDescription
		e.retract(ctx, chatID, in)
		return e.sendKeyboard(ctx, chatID,
			"Account: "+draft.Account+". Add a description? (or send '-' to skip)",
			ui.SkipKeyboard())

	case models.StepAwaitingDescription:
		switch {
		case in.isButton() && in.callback.Action == models.ActionSkip:
			draft.Description = draft.Category
			e.retract(ctx, chatID, in)
		case in.isButton():
			return nil
		case strings.TrimSpace(in.text) == ui.SkipMarker:
			draft.Description = draft.Category
		case strings.TrimSpace(in.text) != "":
			draft.Description = strings.TrimSpace(in.text)
		default:
			return e.send(ctx, chatID, "Send a description, or '-' to use the category name.")
		}
		state.Step = models.StepAwaitingConfirmation
		_, err := e.transport.Send(ctx, chatID, ui.ConfirmationText(*draft), &messaging.Options{
			Markdown: true,
			Keyboard: ui.ConfirmationKeyboard(chatID),
		})
		return err

	case models.StepAwaitingConfirmation:
		return e.handleConfirmation(ctx, chatID, state, in)

	default:
		slog.Error("Transaction flow unknown step", "chat_id", chatID, "step", state.Step)
		e.states.Clear(chatID)
		return nil
	}
}

// handleConfirmation is the only reversible gate: confirm commits exactly one
// ledger write, cancel discards the draft. Both tokens embed the chat id; a
// mismatch means the button came from some other chat's forwarded message and
// is dropped without a reply.
func (e *Engine) handleConfirmation(ctx context.Context, chatID int64, state *models.ConversationState, in input) error {
	if !in.isButton() {
		return e.send(ctx, chatID, "Use the buttons to confirm or cancel.")
	}
	draft := state.Transaction

	switch in.callback.Action {
	case models.ActionConfirm:
		if in.callback.Arg(0) != strconv.FormatInt(chatID, 10) {
			return nil
		}
		entry, err := e.ledger.Append(ctx, *draft)
		if err != nil {
			// Keep the state and the confirm keyboard: the user may press
			// confirm again once the backend is back.
			slog.Error("Transaction commit failed", "chat_id", chatID, "draft_id", draft.ID, "error", err)
			return e.send(ctx, chatID, msgPersistFailed)
		}
		e.retract(ctx, chatID, in)
		e.states.Clear(chatID)
		slog.Info("Transaction recorded", "chat_id", chatID, "id", entry.ID, "kind", entry.Kind, "amount", entry.Amount)
		return e.sendMarkdown(ctx, chatID, ui.RecordedText(entry))

	case models.ActionCancel:
		if in.callback.Arg(0) != strconv.FormatInt(chatID, 10) {
			return nil
		}
		e.retract(ctx, chatID, in)
		e.states.Clear(chatID)
		return e.send(ctx, chatID, "❌ Entry discarded.")

	default:
		return nil
	}
}
