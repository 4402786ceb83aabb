package models

import "strings"

// Action is the leading token of an inline button payload.
type Action string

// Reserved action tokens. Tokens carrying user-controlled text (category and
// account names) always travel under ActionData so a category named, say,
// "cancel" can never collide with a reserved keyword.
const (
	ActionStartExpense     Action = "start_expense"
	ActionStartIncome      Action = "start_income"
	ActionStartRecurring   Action = "start_recurring"
	ActionShowSummary      Action = "show_summary"
	ActionShowLast         Action = "show_last"
	ActionManage           Action = "manage"
	ActionManageRecurring  Action = "manage_recurring"
	ActionDelete           Action = "delete"
	ActionConfirmDelete    Action = "confirm_delete"
	ActionDeleteRecurring  Action = "delete_recurring"
	ActionEdit             Action = "edit"
	ActionEditField        Action = "edit_field"
	ActionData             Action = "data"
	ActionSkip             Action = "skip"
	ActionConfirm          Action = "confirm"
	ActionCancel           Action = "cancel"
)

// Callback is the decoded form of a button payload. Payloads are colon
// separated: the first token selects the action, the remainder are arguments.
type Callback struct {
	Action Action
	Args   []string
}

// ParseCallback decodes a raw payload. It never fails: an empty payload
// decodes to an empty action, which no dispatcher matches.
func ParseCallback(payload string) Callback {
	parts := strings.Split(payload, ":")
	cb := Callback{Action: Action(parts[0])}
	if len(parts) > 1 {
		// Data values may themselves contain colons; everything after the
		// action token is the value.
		if cb.Action == ActionData {
			cb.Args = []string{strings.Join(parts[1:], ":")}
		} else {
			cb.Args = parts[1:]
		}
	}
	return cb
}

// Encode renders the callback back into wire form.
func (c Callback) Encode() string {
	if len(c.Args) == 0 {
		return string(c.Action)
	}
	return string(c.Action) + ":" + strings.Join(c.Args, ":")
}

// Arg returns the i-th argument or "" when absent.
func (c Callback) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// DataCallback builds a "data:<value>" payload for user-controlled text.
func DataCallback(value string) Callback {
	return Callback{Action: ActionData, Args: []string{value}}
}
