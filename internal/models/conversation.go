// Package models defines conversation flow types to avoid circular imports.
package models

// FlowType identifies one of the multi-step dialogue flows.
type FlowType string

// Flow type constants.
const (
	FlowNewTransaction FlowType = "new_transaction"
	FlowNewRecurring   FlowType = "new_recurring"
	FlowEditField      FlowType = "edit_field"
)

// Step identifies a state within a flow.
type Step string

// Step constants. The two entry flows share step names but not ordering:
// transactions collect the amount first, recurring entries the description.
const (
	StepAwaitingAmount       Step = "AWAITING_AMOUNT"
	StepAwaitingCategory     Step = "AWAITING_CATEGORY"
	StepAwaitingAccount      Step = "AWAITING_ACCOUNT"
	StepAwaitingDescription  Step = "AWAITING_DESCRIPTION"
	StepAwaitingConfirmation Step = "AWAITING_CONFIRMATION"
	StepAwaitingType         Step = "AWAITING_TYPE"
	StepAwaitingDayOfMonth   Step = "AWAITING_DAY_OF_MONTH"
	StepAwaitingNewValue     Step = "AWAITING_NEW_VALUE"
)

// EntryStep returns the step a flow begins in.
func (f FlowType) EntryStep() Step {
	switch f {
	case FlowNewRecurring:
		return StepAwaitingDescription
	case FlowEditField:
		return StepAwaitingNewValue
	default:
		return StepAwaitingAmount
	}
}

// ConversationState is the per-chat record of an active flow. Exactly one of
// Transaction, Recurring or Edit is non-nil, matching Flow.
type ConversationState struct {
	Flow        FlowType             `json:"flow"`
	Step        Step                 `json:"step"`
	Transaction *TransactionDraft    `json:"transaction,omitempty"`
	Recurring   *RecurringEntryDraft `json:"recurring,omitempty"`
	Edit        *EditFieldRequest    `json:"edit,omitempty"`
}
