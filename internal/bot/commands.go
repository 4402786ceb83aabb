package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
	"github.com/BTreeMap/PennyPipe/internal/models"
	"github.com/BTreeMap/PennyPipe/internal/parser"
	"github.com/BTreeMap/PennyPipe/internal/ui"
)

// handleCommand processes a text received outside any flow: slash commands
// first, then the legacy quick-entry parse, then the help menu as fallback.
func (b *Bot) handleCommand(ctx context.Context, ev messaging.Event) {
	chatID := ev.ChatID
	fields := strings.Fields(ev.Text)
	if len(fields) == 0 {
		return
	}
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], "/"))

	switch cmd {
	case "start", "help":
		b.sendMarkdown(ctx, chatID, ui.HelpMessage(), ui.MainMenu())
	case "expense":
		b.startFlow(ctx, chatID, func() error { return b.engine.StartTransaction(ctx, chatID, models.KindExpense) })
	case "income":
		b.startFlow(ctx, chatID, func() error { return b.engine.StartTransaction(ctx, chatID, models.KindIncome) })
	case "recurring":
		b.startFlow(ctx, chatID, func() error { return b.engine.StartRecurring(ctx, chatID) })
	case "summary":
		b.showSummary(ctx, chatID)
	case "last":
		n := 5
		if len(fields) > 1 {
			if parsed, err := strconv.Atoi(fields[1]); err == nil && parsed > 0 {
				n = parsed
			}
		}
		b.showLast(ctx, chatID, n)
	default:
		b.quickEntryOrHelp(ctx, ev)
	}
}

// quickEntryOrHelp keeps the legacy fast path: a free-text message with a
// verb and an amount is appended immediately, anything else gets the menu.
func (b *Bot) quickEntryOrHelp(ctx context.Context, ev messaging.Event) {
	chatID := ev.ChatID
	catalog, err := b.loadCatalog(ctx)
	if err != nil {
		slog.Error("Catalog read failed for quick entry", "chat_id", chatID, "error", err)
		b.send(ctx, chatID, "⚠️ Couldn't read the spreadsheet. Please try again.")
		return
	}

	draft := parser.QuickEntry(ev.Text, catalog)
	if draft == nil {
		b.sendMarkdown(ctx, chatID, "I didn't get that. Use the menu below or /help.", ui.MainMenu())
		return
	}

	draft.ID = uuid.NewString()
	entry, err := b.ledger.Append(ctx, *draft)
	if err != nil {
		slog.Error("Quick entry append failed", "chat_id", chatID, "error", err)
		b.send(ctx, chatID, "⚠️ Couldn't reach the spreadsheet. Nothing was saved — please try again.")
		return
	}
	slog.Info("Quick entry recorded", "chat_id", chatID, "id", entry.ID, "kind", entry.Kind, "amount", entry.Amount)
	b.sendMarkdown(ctx, chatID, "⚡ "+ui.RecordedText(entry), nil)
}

func (b *Bot) loadCatalog(ctx context.Context) (parser.Catalog, error) {
	expense, err := b.ledger.ListCategories(ctx, models.KindExpense)
	if err != nil {
		return parser.Catalog{}, err
	}
	income, err := b.ledger.ListCategories(ctx, models.KindIncome)
	if err != nil {
		return parser.Catalog{}, err
	}
	accounts, err := b.ledger.ListAccounts(ctx)
	if err != nil {
		return parser.Catalog{}, err
	}
	return parser.Catalog{
		ExpenseCategories: expense,
		IncomeCategories:  income,
		Accounts:          accounts,
	}, nil
}
