// Package messaging defines the chat transport abstraction PennyPipe speaks
// through. The flow engine and the bot dispatcher depend only on the
// interfaces here; the Telegram adapter lives in internal/telegram.
package messaging

import "context"

// MessageRef is an opaque handle to a delivered message, used to edit its
// text or retract its inline keyboard later.
type MessageRef struct {
	MessageID int
}

// Button is one inline keyboard button. Data is the raw callback payload
// delivered back when the button is pressed.
type Button struct {
	Text string
	Data string
}

// Keyboard is an inline keyboard as rows of buttons. A nil Keyboard means no
// keyboard; an explicit empty one retracts a previously attached keyboard.
type Keyboard [][]Button

// Options modifies how a message is rendered.
type Options struct {
	Keyboard Keyboard
	Markdown bool
}

// Event is an inbound chat event: either a plain text message or an inline
// button press. Button presses carry the payload, the callback event id to
// acknowledge, and a reference to the message holding the pressed keyboard.
type Event struct {
	ChatID     int64
	Text       string
	Payload    string
	CallbackID string
	Message    MessageRef
}

// IsButton reports whether the event is a button press.
func (e Event) IsButton() bool {
	return e.CallbackID != ""
}

// ChatTransport defines a pluggable chat delivery abstraction.
// It supports sending and editing messages and exposes a channel of inbound
// events produced by its long-poll loop.
type ChatTransport interface {
	// Send delivers a new message to the chat and returns its handle.
	Send(ctx context.Context, chatID int64, text string, opts *Options) (MessageRef, error)

	// EditText replaces the text (and optionally keyboard) of an earlier message.
	EditText(ctx context.Context, chatID int64, ref MessageRef, text string, opts *Options) error

	// EditKeyboard replaces the inline keyboard of an earlier message.
	// Passing an empty (non-nil) keyboard strips the buttons.
	EditKeyboard(ctx context.Context, chatID int64, ref MessageRef, kb Keyboard) error

	// Acknowledge confirms receipt of a button press to the chat network.
	// It is fire-and-forget: implementations must not block the caller.
	Acknowledge(callbackID string)

	// Start begins background processing (e.g., polling for updates).
	Start(ctx context.Context) error

	// Stop stops background processing and closes the Events channel.
	Stop()

	// Events returns the channel of inbound chat events.
	Events() <-chan Event
}

// RetractKeyboard is the explicit empty keyboard used to strip buttons from a
// message once its step has been consumed.
var RetractKeyboard = Keyboard{}
