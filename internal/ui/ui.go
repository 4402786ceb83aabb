// Package ui renders the inline keyboards and message texts the bot presents.
// Everything here is pure formatting over data the callers fetched.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
)

// SkipMarker is the text a user sends to skip the optional description.
const SkipMarker = "-"

// MainMenu is the top-level inline menu shown with the help message.
func MainMenu() messaging.Keyboard {
	return messaging.Keyboard{
		{
			{Text: "💸 New Expense", Data: models.Callback{Action: models.ActionStartExpense}.Encode()},
			{Text: "💰 New Income", Data: models.Callback{Action: models.ActionStartIncome}.Encode()},
		},
		{
			{Text: "📊 Summary", Data: models.Callback{Action: models.ActionShowSummary}.Encode()},
			{Text: "🧾 Last 5", Data: models.Callback{Action: models.ActionShowLast}.Encode()},
		},
		{
			{Text: "📅 New Recurring", Data: models.Callback{Action: models.ActionStartRecurring}.Encode()},
			{Text: "🛠 Manage", Data: models.Callback{Action: models.ActionManage}.Encode()},
		},
	}
}

// HelpMessage is the markdown help text sent with the main menu.
func HelpMessage() string {
	return `🤖 *PennyPipe*

Use the buttons below, or:

💸 *New Expense* / 💰 *New Income*: step-by-step entry.
📊 *Summary*: income, expenses and balance for this month.
🧾 *Last 5*: your latest entries.
📅 *New Recurring*: an entry posted automatically every month.
🛠 *Manage*: edit or delete saved entries.

Text commands still work: /summary, /last 10, /expense, /income, /recurring.
You can also just type "spent 45 on groceries with cash".`
}

// ChoiceKeyboard renders a list of user-defined names (categories, accounts)
// as data buttons, two per row. Values travel under the data: prefix so a
// name can never collide with a reserved action token.
func ChoiceKeyboard(names []string) messaging.Keyboard {
	var kb messaging.Keyboard
	var row []messaging.Button
	for _, name := range names {
		row = append(row, messaging.Button{Text: name, Data: models.DataCallback(name).Encode()})
		if len(row) == 2 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	return kb
}

// KindKeyboard offers the income/expense choice in the recurring flow.
func KindKeyboard() messaging.Keyboard {
	return messaging.Keyboard{{
		{Text: "💰 Income", Data: models.DataCallback(string(models.KindIncome)).Encode()},
		{Text: "💸 Expense", Data: models.DataCallback(string(models.KindExpense)).Encode()},
	}}
}

// SkipKeyboard offers skipping the optional description.
func SkipKeyboard() messaging.Keyboard {
	return messaging.Keyboard{{
		{Text: "Skip", Data: models.Callback{Action: models.ActionSkip}.Encode()},
	}}
}

// ConfirmationKeyboard renders the confirm/cancel gate. Both payloads embed
// the chat id; the flow drops presses whose embedded id doesn't match the
// receiving chat.
func ConfirmationKeyboard(chatID int64) messaging.Keyboard {
	id := strconv.FormatInt(chatID, 10)
	return messaging.Keyboard{{
		{Text: "✅ Confirm", Data: models.Callback{Action: models.ActionConfirm, Args: []string{id}}.Encode()},
		{Text: "❌ Cancel", Data: models.Callback{Action: models.ActionCancel, Args: []string{id}}.Encode()},
	}}
}

// ConfirmationText summarizes a completed draft for the confirm gate.
func ConfirmationText(draft models.TransactionDraft) string {
	var b strings.Builder
	b.WriteString("*Please confirm:*\n\n")
	fmt.Fprintf(&b, "• *Kind:* %s\n", draft.Kind)
	fmt.Fprintf(&b, "• *Amount:* %s\n", draft.Amount.StringFixed(2))
	fmt.Fprintf(&b, "• *Category:* %s\n", draft.Category)
	fmt.Fprintf(&b, "• *Account:* %s\n", draft.Account)
	fmt.Fprintf(&b, "• *Description:* %s\n", draft.Description)
	b.WriteString("\nAll good?")
	return b.String()
}

// RecordedText confirms a persisted entry back to the user.
func RecordedText(entry models.LedgerEntry) string {
	return fmt.Sprintf("✅ %s of *%s* recorded in *%s* via *%s*",
		entry.Kind, entry.Amount.StringFixed(2), entry.Category, entry.Account)
}
