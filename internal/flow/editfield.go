package flow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BTreeMap/PennyPipe/internal/models"
)

// handleEdit runs the single-step EditField flow: the next text received
// overwrites the targeted cell verbatim. The value is not type checked
// against the field; the sheet stores whatever the user sent.
func (e *Engine) handleEdit(ctx context.Context, chatID int64, state *models.ConversationState, in input) error {
	if in.isButton() {
		return nil
	}
	text := strings.TrimSpace(in.text)
	if text == "" {
		return e.send(ctx, chatID, "Send the new value as text.")
	}

	req := state.Edit
	if err := e.ledger.UpdateCell(ctx, req.Row, req.Column, text); err != nil {
		slog.Error("Edit field update failed", "chat_id", chatID, "row", req.Row, "column", req.Column, "error", err)
		return e.send(ctx, chatID, msgPersistFailed)
	}
	e.states.Clear(chatID)
	slog.Info("Edit field updated", "chat_id", chatID, "row", req.Row, "column", req.Column, "field", req.FieldName)
	return e.sendMarkdown(ctx, chatID, "✅ *"+req.FieldName+"* updated to *"+text+"*!")
}
