// Package sheets mirrors the transaction table to a Google Sheets
// spreadsheet. The mirror is write-only and best-effort: the ledger never
// depends on it, only the worker pushes to it.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Mirror struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewMirror builds a Sheets client from a service-account credentials file.
func NewMirror(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*Mirror, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("missing spreadsheet ID")
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsFile(credentialsFile),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Mirror{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

var header = []any{"id", "data", "lançamento", "valor", "tipo", "categoria", "subcategoria", "parcela", "recorrente"}

// Push replaces the sheet's contents with the given transaction snapshot.
// The row layout matches the CSV export: day-first dates, decimal-comma
// amounts.
func (m *Mirror) Push(ctx context.Context, transactions []core.Transaction) error {
	values := make([][]any, 0, len(transactions)+1)
	values = append(values, header)
	for _, t := range transactions {
		values = append(values, []any{
			t.ID,
			t.Date.Format("02/01/2006"),
			t.Description,
			t.Amount.DecimalString(),
			string(t.Kind),
			t.Category,
			t.Subcategory,
			t.Installment,
			t.Recurring,
		})
	}

	clearRange := m.sheetName + "!A:Z"
	if _, err := m.svc.Spreadsheets.Values.Clear(m.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", m.sheetName, err)
	}

	body := &gsheet.ValueRange{Values: values}
	if _, err := m.svc.Spreadsheets.Values.Update(m.spreadsheetID, m.sheetName+"!A1", body).
		ValueInputOption("RAW").
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("update sheet %s: %w", m.sheetName, err)
	}

	slog.DebugContext(ctx, "Mirrored ledger to spreadsheet",
		"sheet", m.sheetName, "rows", len(transactions))
	return nil
}
