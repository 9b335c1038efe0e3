package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

// exportHeader lists every canonical transaction field. The column names line
// up with the statement import schema so an export can be re-imported.
var exportHeader = []string{
	"id", "data", "lançamento", "valor", "tipo",
	"categoria", "subcategoria", "parcela", "recorrente", "origem",
}

// WriteTable serializes the stored collection (templates as stored, nothing
// expanded or projected) to a semicolon-delimited table, one row per record.
func WriteTable(w io.Writer, transactions []core.Transaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, t := range transactions {
		row := []string{
			t.ID,
			t.Date.Format("02/01/2006"),
			t.Description,
			t.Amount.DecimalString(),
			string(t.Kind),
			t.Category,
			t.Subcategory,
			t.Installment,
			strconv.FormatBool(t.Recurring),
			t.OriginID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
