package ui

import (
	"fmt"
	"strconv"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
)

// Editable fields of an entry row, in sheet column order. Date and the
// generated id are deliberately not editable from chat.
var editableFields = []struct {
	Column string
	Name   string
}{
	{"B", "Description"},
	{"C", "Category"},
	{"D", "Amount"},
	{"F", "Account"},
	{"G", "Note"},
}

// EntryLine renders one entry for a listing.
func EntryLine(entry models.LedgerEntry) string {
	sign := "-"
	if entry.Kind == models.KindIncome {
		sign = "+"
	}
	return fmt.Sprintf("%s  %s%s  %s (%s)", entry.Date, sign, entry.Amount.StringFixed(2), entry.Description, entry.Category)
}

// ManageKeyboard offers edit/delete per listed entry. Buttons carry the
// 1-based sheet row; the listing and its buttons go stale together when rows
// above are deleted, so callers re-list after every mutation.
func ManageKeyboard(entries []models.LedgerEntry) messaging.Keyboard {
	var kb messaging.Keyboard
	for _, entry := range entries {
		row := strconv.Itoa(entry.Row)
		label := entry.Description
		if len(label) > 20 {
			label = label[:20] + "…"
		}
		kb = append(kb, []messaging.Button{
			{Text: "✏️ " + label, Data: models.Callback{Action: models.ActionEdit, Args: []string{row}}.Encode()},
			{Text: "🗑", Data: models.Callback{Action: models.ActionDelete, Args: []string{row}}.Encode()},
		})
	}
	kb = append(kb, []messaging.Button{
		{Text: "📅 Recurring…", Data: models.Callback{Action: models.ActionManageRecurring}.Encode()},
	})
	return kb
}

// FieldMenuKeyboard picks which field of the entry to edit.
func FieldMenuKeyboard(row int) messaging.Keyboard {
	var kb messaging.Keyboard
	r := strconv.Itoa(row)
	for _, f := range editableFields {
		kb = append(kb, []messaging.Button{{
			Text: f.Name,
			Data: models.Callback{Action: models.ActionEditField, Args: []string{r, f.Column, f.Name}}.Encode(),
		}})
	}
	return kb
}

// DeleteConfirmKeyboard gates a row deletion behind an explicit second press.
func DeleteConfirmKeyboard(row int) messaging.Keyboard {
	r := strconv.Itoa(row)
	return messaging.Keyboard{{
		{Text: "🗑 Yes, delete", Data: models.Callback{Action: models.ActionConfirmDelete, Args: []string{r}}.Encode()},
		{Text: "↩️ Back", Data: models.Callback{Action: models.ActionManage}.Encode()},
	}}
}

// RecurringManageKeyboard offers deletion per recurring entry.
func RecurringManageKeyboard(entries []models.RecurringEntry) messaging.Keyboard {
	var kb messaging.Keyboard
	for _, entry := range entries {
		kb = append(kb, []messaging.Button{{
			Text: fmt.Sprintf("🗑 %s (day %d)", entry.Description, entry.DayOfMonth),
			Data: models.Callback{Action: models.ActionDeleteRecurring, Args: []string{strconv.Itoa(entry.Row)}}.Encode(),
		}})
	}
	return kb
}
