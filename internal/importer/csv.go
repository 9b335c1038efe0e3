// Package importer parses credit-card statement CSV files into raw ledger
// records and writes the store back out as a delimited table. Row-level
// failures never abort a batch; they are collected into a summary the caller
// reports to the user.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

// Required statement columns. Banks name the description column "lançamento";
// a few exports drop the cedilla or use "descricao", so aliases are accepted.
const (
	columnDate        = "data"
	columnDescription = "lançamento"
	columnAmount      = "valor"
	columnInstallment = "parcela"
	columnCategory    = "categoria"
	columnRecurring   = "recorrente"
	columnKind        = "tipo"
)

var descriptionAliases = []string{columnDescription, "lancamento", "descricao", "descrição"}

// maxRowErrors caps how many row-level messages a summary retains.
const maxRowErrors = 10

// ImportFormatError rejects a whole file before any row is processed, when
// required columns are missing from the header.
type ImportFormatError struct {
	Missing []string
	Found   []string
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("statement file missing required columns %v (found: %v)",
		e.Missing, e.Found)
}

// BatchSummary reports the outcome of one import batch.
type BatchSummary struct {
	Accepted int      `json:"accepted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

func (s *BatchSummary) addRowError(line int, err error) {
	s.Skipped++
	if len(s.Errors) < maxRowErrors {
		s.Errors = append(s.Errors, fmt.Sprintf("linha %d: %v", line, err))
	}
}

// ReadStatement parses a statement CSV into raw transaction records.
//
// The delimiter is auto-detected between ';' and ','; a UTF-8 BOM is
// tolerated. Rows default to credit-card expenses unless the optional
// categoria/tipo columns say otherwise. Each accepted record gets a fresh ID;
// installment markers are carried through untouched for later expansion.
// A malformed row is skipped and counted, never fatal to the batch.
func ReadStatement(r io.Reader) ([]core.Transaction, BatchSummary, error) {
	var summary BatchSummary

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, summary, fmt.Errorf("read statement: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, summary, fmt.Errorf("read statement header: %w", err)
	}
	headerMap := generateHeaderMap(header)

	if missing := missingColumns(headerMap); len(missing) > 0 {
		return nil, summary, &ImportFormatError{Missing: missing, Found: lowered(header)}
	}

	var out []core.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.addRowError(line, err)
			continue
		}

		t, err := parseRow(record, headerMap)
		if err != nil {
			summary.addRowError(line, err)
			continue
		}
		out = append(out, t)
		summary.Accepted++
	}
	return out, summary, nil
}

func parseRow(record []string, headerMap map[string]int) (core.Transaction, error) {
	get := func(column string) string {
		if i, ok := headerMap[column]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	date, err := core.ParseDate(get(columnDate))
	if err != nil {
		return core.Transaction{}, err
	}

	description := ""
	for _, alias := range descriptionAliases {
		if v := get(alias); v != "" {
			description = v
			break
		}
	}
	if description == "" {
		return core.Transaction{}, core.ErrEmptyDescription
	}

	cents, err := core.ParseDecimalToCents(get(columnAmount))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, get(columnAmount))
	}

	kind := core.Expense
	if strings.EqualFold(get(columnKind), string(core.Income)) {
		kind = core.Income
	}

	category := get(columnCategory)
	if category == "" {
		category = core.CategoryCreditCard
	}
	if kind == core.Income {
		category = core.CategoryNone
	}

	t := core.Transaction{
		ID:          core.NewID(),
		Date:        date,
		Description: description,
		Amount:      core.Money{Cents: cents},
		Kind:        kind,
		Category:    category,
		Installment: get(columnInstallment),
		Recurring:   kind == core.Expense && strings.EqualFold(get(columnRecurring), "true"),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func missingColumns(headerMap map[string]int) []string {
	var missing []string
	if _, ok := headerMap[columnDate]; !ok {
		missing = append(missing, columnDate)
	}
	hasDescription := false
	for _, alias := range descriptionAliases {
		if _, ok := headerMap[alias]; ok {
			hasDescription = true
			break
		}
	}
	if !hasDescription {
		missing = append(missing, columnDescription)
	}
	if _, ok := headerMap[columnAmount]; !ok {
		missing = append(missing, columnAmount)
	}
	return missing
}

// detectDelimiter sniffs the header line: semicolon wins when present,
// otherwise comma.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}

// generateHeaderMap maps lower-cased column names to their index.
func generateHeaderMap(record []string) map[string]int {
	m := make(map[string]int)
	for i, r := range record {
		m[strings.ToLower(strings.TrimSpace(r))] = i
	}
	return m
}

func lowered(record []string) []string {
	out := make([]string, len(record))
	for i, r := range record {
		out[i] = strings.ToLower(strings.TrimSpace(r))
	}
	return out
}
