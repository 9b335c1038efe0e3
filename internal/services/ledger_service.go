package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/amqp"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/importer"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/ledger"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/storage"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/store"
)

// EventPublisher announces ledger mutations to interested consumers.
// *amqp.Client satisfies it; a nil publisher disables publishing.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event string, version uint64, count int) error
}

// ImportMode selects how an imported statement meets the stored set.
type ImportMode string

const (
	// ImportAppend merges new rows against everything already stored.
	ImportAppend ImportMode = "append"
	// ImportReplace removes the target category first, then merges the batch
	// against an empty exclusion set.
	ImportReplace ImportMode = "replace"
)

// TransactionUpdate carries the editable fields of a transaction. Nil fields
// are left untouched; ID and kind are immutable.
type TransactionUpdate struct {
	Date        *core.Date
	Description *string
	AmountCents *int64
	Category    *string
	Subcategory *string
	Recurring   *bool
}

// ImportResult reports what happened to an imported statement: the row-level
// parse outcome plus how many records actually entered the store after
// expansion and deduplication.
type ImportResult struct {
	importer.BatchSummary
	Stored int `json:"stored"`
}

// LedgerService owns the in-memory store and coordinates every ledger
// operation: mutations persist the whole snapshot and announce themselves
// over AMQP; persistence and publish failures are logged but never fail the
// request, the in-memory state stays authoritative.
type LedgerService struct {
	mu        sync.Mutex
	store     *store.TransactionStore
	persister storage.Persister
	publisher EventPublisher
	rules     []ledger.Rule
	projector *ledger.Projector

	categories []string
}

func NewLedgerService(ctx context.Context, persister storage.Persister, rules []ledger.Rule, publisher EventPublisher) (*LedgerService, error) {
	transactions, err := persister.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	categories, err := persister.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if len(categories) == 0 {
		categories = []string{core.CategoryFixed, core.CategoryVariable, core.CategoryCreditCard}
	}

	return &LedgerService{
		store:      store.NewFromSnapshot(transactions),
		persister:  persister,
		publisher:  publisher,
		rules:      rules,
		projector:  ledger.NewProjector(),
		categories: categories,
	}, nil
}

// Projector exposes the memoized projector for cache-manager registration.
func (s *LedgerService) Projector() *ledger.Projector {
	return s.projector
}

// Categories returns the known category labels in their stored order.
func (s *LedgerService) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.categories...)
}

// AddIncome records an income transaction. Income always carries the neutral
// category.
func (s *LedgerService) AddIncome(ctx context.Context, date core.Date, description string, amount core.Money) (core.Transaction, error) {
	t, err := core.NewIncome(date, description, amount)
	if err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Insert(t); err != nil {
		return core.Transaction{}, fmt.Errorf("insert income: %w", err)
	}
	s.afterMutation(ctx, amqp.EventTransactionCreated, 1)
	return t, nil
}

// AddExpense records an expense. An installment marker expands the record
// into one stored transaction per installment month; a credit-card expense
// with no subcategory is classified from its description.
func (s *LedgerService) AddExpense(ctx context.Context, date core.Date, description string, amount core.Money, category string, recurring bool, installment string) ([]core.Transaction, error) {
	if category == "" {
		category = core.CategoryVariable
	}
	t, err := core.NewExpense(date, description, amount, category, recurring)
	if err != nil {
		return nil, err
	}
	t.Installment = installment
	if t.Category == core.CategoryCreditCard {
		t.Subcategory = ledger.Classify(t.Description, s.rules)
	}

	instances := ledger.ExpandInstallments(t)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inst := range instances {
		if err := s.store.Insert(inst); err != nil {
			return nil, fmt.Errorf("insert expense: %w", err)
		}
	}
	s.afterMutation(ctx, amqp.EventTransactionCreated, len(instances))
	return instances, nil
}

// UpdateTransaction edits a stored transaction in place. ID and kind never
// change; a validation failure leaves the record untouched.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Update(id, func(t *core.Transaction) {
		if upd.Date != nil {
			t.Date = *upd.Date
		}
		if upd.Description != nil {
			t.Description = strings.TrimSpace(*upd.Description)
		}
		if upd.AmountCents != nil {
			t.Amount = core.Money{Cents: *upd.AmountCents}
		}
		if upd.Category != nil {
			t.Category = *upd.Category
		}
		if upd.Subcategory != nil {
			t.Subcategory = *upd.Subcategory
		}
		if upd.Recurring != nil {
			t.Recurring = *upd.Recurring
		}
	})
	if err != nil {
		return core.Transaction{}, err
	}

	updated, err := s.store.Get(id)
	if err != nil {
		return core.Transaction{}, err
	}
	s.afterMutation(ctx, amqp.EventTransactionUpdated, 1)
	return updated, nil
}

// DeleteTransaction removes a transaction by ID. Deleting an absent ID is a
// no-op.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.store.Version()
	s.store.Delete(id)
	if s.store.Version() == before {
		return
	}
	s.afterMutation(ctx, amqp.EventTransactionDeleted, 1)
}

// ImportStatement parses a CSV statement and runs each accepted row through
// the normalization pipeline: classify, adjust the billing date, expand
// installments, then merge. In replace mode every stored record of the target
// category is superseded by the batch; in append mode the batch merges
// against the full stored set. A malformed row never aborts the batch.
func (s *LedgerService) ImportStatement(ctx context.Context, r io.Reader, mode ImportMode, category string) (ImportResult, error) {
	rows, summary, err := importer.ReadStatement(r)
	if err != nil {
		return ImportResult{BatchSummary: summary}, err
	}
	if category == "" {
		category = core.CategoryCreditCard
	}

	var candidates []core.Transaction
	for _, row := range rows {
		if mode == ImportReplace {
			row.Category = category
		}
		if row.Kind == core.Expense && row.Subcategory == "" {
			row.Subcategory = ledger.Classify(row.Description, s.rules)
		}
		row.Date = ledger.AdjustToBilling(row.Date)
		candidates = append(candidates, ledger.ExpandInstallments(row)...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var accepted []core.Transaction
	switch mode {
	case ImportReplace:
		s.store.DeleteByCategory(category)
		merged, n := ledger.Merge(nil, candidates)
		accepted = merged[len(merged)-n:]
	default:
		merged, n := ledger.Merge(s.store.List(), candidates)
		accepted = merged[len(merged)-n:]
	}

	for _, t := range accepted {
		if err := s.store.Insert(t); err != nil {
			slog.WarnContext(ctx, "Skipping unstorable imported record",
				"description", t.Description, "error", err)
		}
	}

	if len(accepted) > 0 || mode == ImportReplace {
		s.afterMutation(ctx, amqp.EventStatementImported, len(accepted))
	}

	slog.InfoContext(ctx, "Statement imported",
		"mode", string(mode),
		"category", category,
		"rows_accepted", summary.Accepted,
		"rows_skipped", summary.Skipped,
		"stored", len(accepted))

	return ImportResult{BatchSummary: summary, Stored: len(accepted)}, nil
}

// YearView returns every transaction visible in the given year: stored
// records dated in that year plus one ephemeral instance per month for each
// recurring template. Results are sorted by date, then description.
func (s *LedgerService) YearView(ctx context.Context, year int) []core.Transaction {
	s.mu.Lock()
	version := s.store.Version()
	snapshot := s.store.List()
	s.mu.Unlock()

	out := s.projector.Project(version, snapshot, year)
	sorted := append([]core.Transaction(nil), out...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date.Time)
		}
		return sorted[i].Description < sorted[j].Description
	})
	return sorted
}

// MonthSummary aggregates one month of the projected year: income and expense
// totals, the balance, expense subtotals per category and credit-card
// spending per classified subcategory.
func (s *LedgerService) MonthSummary(ctx context.Context, year, month int) core.MonthSummary {
	summary := core.MonthSummary{Year: year, Month: month}
	byCategory := make(map[string]int64)
	bySubcategory := make(map[string]int64)

	for _, t := range s.YearView(ctx, year) {
		if t.Date.Month() != month {
			continue
		}
		switch t.Kind {
		case core.Income:
			summary.TotalIncome.Cents += t.Amount.Cents
		case core.Expense:
			summary.TotalExpense.Cents += t.Amount.Cents
			byCategory[t.Category] += t.Amount.Cents
			if t.Category == core.CategoryCreditCard {
				sub := t.Subcategory
				if sub == "" {
					sub = ledger.DefaultSubcategory
				}
				bySubcategory[sub] += t.Amount.Cents
			}
		}
	}

	summary.BalanceCents = summary.TotalIncome.Cents - summary.TotalExpense.Cents
	summary.ByCategory = sortedAmounts(byCategory)
	summary.BySubcategory = sortedAmounts(bySubcategory)
	return summary
}

// Export writes the stored collection, templates unexpanded and unprojected,
// as a delimited table.
func (s *LedgerService) Export(ctx context.Context, w io.Writer) error {
	s.mu.Lock()
	snapshot := s.store.List()
	s.mu.Unlock()
	return importer.WriteTable(w, snapshot)
}

// List returns the stored collection as-is.
func (s *LedgerService) List(ctx context.Context) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// Version returns the store's mutation counter.
func (s *LedgerService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Version()
}

// afterMutation persists the snapshot and publishes a change event. Both are
// best-effort: the in-memory state is authoritative, failures are logged.
// Callers must hold s.mu.
func (s *LedgerService) afterMutation(ctx context.Context, event string, count int) {
	if err := s.persister.SaveTransactions(ctx, s.store.List()); err != nil {
		slog.WarnContext(ctx, "Failed to persist ledger snapshot",
			"event", event, "error", err)
	}
	if err := s.persister.SaveCategories(ctx, s.categories); err != nil {
		slog.WarnContext(ctx, "Failed to persist categories", "error", err)
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, event, s.store.Version(), count); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"event", event, "error", err)
	}
}

// Close releases the persistence backend.
func (s *LedgerService) Close() error {
	if s.persister != nil {
		if err := s.persister.Close(); err != nil {
			return fmt.Errorf("close persister: %w", err)
		}
	}
	return nil
}

func sortedAmounts(m map[string]int64) []core.CategoryAmount {
	if len(m) == 0 {
		return nil
	}
	out := make([]core.CategoryAmount, 0, len(m))
	for name, cents := range m {
		out = append(out, core.CategoryAmount{Name: name, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}
