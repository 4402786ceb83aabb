package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/BTreeMap/PennyPipe/internal/models"
)

// Sheet tab names and ranges. Data rows start at row 2; row 1 holds headers.
const (
	entriesSheet   = "Entries"
	recurringSheet = "Recurring"

	entriesRange    = "Entries!A:H"
	recurringRange  = "Recurring!A:G"
	categoriesRange = "Config!A:B"
	accountsRange   = "Config!C:C"
	budgetsRange    = "Budgets!A:B"

	dateLayout = "02/01/2006"
)

// SheetsLedger implements Ledger on top of a Google Sheets spreadsheet.
type SheetsLedger struct {
	svc           *sheets.Service
	spreadsheetID string
	now           func() time.Time
}

// Compile-time check that SheetsLedger implements Ledger.
var _ Ledger = (*SheetsLedger)(nil)

// NewSheetsLedger builds a ledger over the given spreadsheet using
// service-account credentials in JSON form.
func NewSheetsLedger(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*SheetsLedger, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.Info("SheetsLedger initialized", "spreadsheet_id", spreadsheetID)
	return &SheetsLedger{svc: svc, spreadsheetID: spreadsheetID, now: time.Now}, nil
}

func (l *SheetsLedger) read(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// dataRows drops the header row from a raw range read.
func dataRows(rows [][]interface{}) [][]interface{} {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

// ListCategories returns the configured categories for one entry kind.
// Column A holds expense categories, column B income categories.
func (l *SheetsLedger) ListCategories(ctx context.Context, kind models.EntryKind) ([]string, error) {
	rows, err := l.read(ctx, categoriesRange)
	if err != nil {
		return nil, persistence("list categories", err)
	}
	col := 0
	if kind == models.KindIncome {
		col = 1
	}
	var out []string
	for _, row := range dataRows(rows) {
		if name := cellString(row, col); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// ListAccounts returns the configured account names.
func (l *SheetsLedger) ListAccounts(ctx context.Context) ([]string, error) {
	rows, err := l.read(ctx, accountsRange)
	if err != nil {
		return nil, persistence("list accounts", err)
	}
	var out []string
	for _, row := range dataRows(rows) {
		if name := cellString(row, 0); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// Append writes the draft as a new row at the bottom of the entries sheet.
func (l *SheetsLedger) Append(ctx context.Context, draft models.TransactionDraft) (models.LedgerEntry, error) {
	entry := models.LedgerEntry{
		Date:        l.now().Format(dateLayout),
		Description: draft.Description,
		Category:    draft.Category,
		Amount:      draft.Amount,
		Kind:        draft.Kind,
		Account:     draft.Account,
		ID:          draft.ID,
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{{
		entry.Date, entry.Description, entry.Category, entry.Amount.String(),
		string(entry.Kind), entry.Account, entry.Note, entry.ID,
	}}}
	_, err := l.svc.Spreadsheets.Values.Append(l.spreadsheetID, entriesRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return models.LedgerEntry{}, persistence("append entry", err)
	}
	slog.Debug("SheetsLedger appended entry", "id", entry.ID, "kind", entry.Kind, "amount", entry.Amount)
	return entry, nil
}

// AddRecurring writes the draft as a new row on the recurring sheet.
func (l *SheetsLedger) AddRecurring(ctx context.Context, draft models.RecurringEntryDraft) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{{
		draft.Description, draft.Amount.String(), string(draft.Kind),
		draft.Category, draft.Account, draft.DayOfMonth,
	}}}
	_, err := l.svc.Spreadsheets.Values.Append(l.spreadsheetID, recurringRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return persistence("append recurring", err)
	}
	slog.Debug("SheetsLedger appended recurring entry", "description", draft.Description, "day", draft.DayOfMonth)
	return nil
}

// UpdateCell overwrites a single cell of the entries sheet. The row is a
// 1-based sheet row; if rows above it were deleted since it was listed, the
// write lands on the wrong entry with no error surfaced here.
func (l *SheetsLedger) UpdateCell(ctx context.Context, row int, column string, value string) error {
	rng := fmt.Sprintf("%s!%s%d", entriesSheet, column, row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := l.svc.Spreadsheets.Values.Update(l.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return persistence("update cell", err)
	}
	slog.Debug("SheetsLedger updated cell", "range", rng)
	return nil
}

// Entries returns all persisted transactions, oldest first.
func (l *SheetsLedger) Entries(ctx context.Context) ([]models.LedgerEntry, error) {
	rows, err := l.read(ctx, entriesRange)
	if err != nil {
		return nil, persistence("list entries", err)
	}
	var out []models.LedgerEntry
	for i, row := range dataRows(rows) {
		out = append(out, models.LedgerEntry{
			Date:        cellString(row, 0),
			Description: cellString(row, 1),
			Category:    cellString(row, 2),
			Amount:      parseMoneyCell(cellString(row, 3)),
			Kind:        models.EntryKind(cellString(row, 4)),
			Account:     cellString(row, 5),
			Note:        cellString(row, 6),
			ID:          cellString(row, 7),
			Row:         i + 2,
		})
	}
	return out, nil
}

// Recurring returns all persisted recurring entries.
func (l *SheetsLedger) Recurring(ctx context.Context) ([]models.RecurringEntry, error) {
	rows, err := l.read(ctx, recurringRange)
	if err != nil {
		return nil, persistence("list recurring", err)
	}
	var out []models.RecurringEntry
	for i, row := range dataRows(rows) {
		day, _ := strconv.Atoi(cellString(row, 5))
		out = append(out, models.RecurringEntry{
			Description: cellString(row, 0),
			Amount:      parseMoneyCell(cellString(row, 1)),
			Kind:        models.EntryKind(cellString(row, 2)),
			Category:    cellString(row, 3),
			Account:     cellString(row, 4),
			DayOfMonth:  day,
			Row:         i + 2,
		})
	}
	return out, nil
}

// DeleteRow removes one row from the entries sheet.
func (l *SheetsLedger) DeleteRow(ctx context.Context, row int) error {
	return l.deleteRow(ctx, entriesSheet, row)
}

// DeleteRecurringRow removes one row from the recurring sheet.
func (l *SheetsLedger) DeleteRecurringRow(ctx context.Context, row int) error {
	return l.deleteRow(ctx, recurringSheet, row)
}

func (l *SheetsLedger) deleteRow(ctx context.Context, sheetName string, row int) error {
	sheetID, err := l.sheetIDByTitle(ctx, sheetName)
	if err != nil {
		return persistence("delete row", err)
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{Requests: []*sheets.Request{{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: int64(row - 1),
				EndIndex:   int64(row),
			},
		},
	}}}
	_, err = l.svc.Spreadsheets.BatchUpdate(l.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return persistence("delete row", err)
	}
	slog.Debug("SheetsLedger deleted row", "sheet", sheetName, "row", row)
	return nil
}

// sheetIDByTitle resolves a tab's numeric sheet id from its title.
func (l *SheetsLedger) sheetIDByTitle(ctx context.Context, title string) (int64, error) {
	meta, err := l.svc.Spreadsheets.Get(l.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", title)
}

// Budgets returns the per-category monthly limits.
func (l *SheetsLedger) Budgets(ctx context.Context) (models.Budgets, error) {
	rows, err := l.read(ctx, budgetsRange)
	if err != nil {
		return nil, persistence("list budgets", err)
	}
	budgets := make(models.Budgets)
	for _, row := range dataRows(rows) {
		category := cellString(row, 0)
		limit := cellString(row, 1)
		if category == "" || limit == "" {
			continue
		}
		budgets[category] = parseMoneyCell(limit)
	}
	return budgets, nil
}
