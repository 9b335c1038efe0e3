package core

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	Income  Kind = "Receita"
	Expense Kind = "Despesa"
)

// Expense categories used by the ledger. Income always carries CategoryNone.
const (
	CategoryNone       = "N/A"
	CategoryFixed      = "Fixa"
	CategoryVariable   = "Variável"
	CategoryCreditCard = "Cartão de Crédito"
)

type (
	Kind string

	// Transaction is the canonical ledger record. Optional fields are empty
	// unless the record's kind/flags call for them: Subcategory is set only on
	// credit-card expenses, Installment only transiently on raw statement rows
	// before expansion, OriginID only on recurrence-projected instances.
	Transaction struct {
		ID          string `json:"id"`
		Date        Date   `json:"date"`
		Description string `json:"description"`
		Amount      Money  `json:"amount_cents"`
		Kind        Kind   `json:"kind"`
		Category    string `json:"category"`
		Subcategory string `json:"subcategory,omitempty"`
		Installment string `json:"installment,omitempty"`
		Recurring   bool   `json:"recurring,omitempty"`
		OriginID    string `json:"origin_id,omitempty"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrNotFound         = errors.New("transaction not found")
)

// NewID mints a fresh opaque transaction identifier. IDs are assigned at
// creation and never reused.
func NewID() string {
	return uuid.NewString()
}

// NewIncome builds a validated income transaction. Income has no category of
// its own and can never recur.
func NewIncome(date Date, description string, amount Money) (Transaction, error) {
	t := Transaction{
		ID:          NewID(),
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Kind:        Income,
		Category:    CategoryNone,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// NewExpense builds a validated expense transaction.
func NewExpense(date Date, description string, amount Money, category string, recurring bool) (Transaction, error) {
	t := Transaction{
		ID:          NewID(),
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Kind:        Expense,
		Category:    strings.TrimSpace(category),
		Recurring:   recurring,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Kind == Income && t.Recurring {
		return errors.New("income cannot be recurring")
	}
	return nil
}

// IsProjected reports whether the transaction is an ephemeral instance
// materialized from a recurring template. Projected instances are never
// persisted and never carry their own ID.
func (t Transaction) IsProjected() bool {
	return t.OriginID != ""
}
