package core

// CategoryAmount represents an amount aggregated by category or subcategory name.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount_cents"`
}

// MonthSummary is the compact overview the dashboard renders for one month:
// totals per kind, the resulting balance and per-category breakdowns.
// Balance is kept in raw cents because it may be negative.
type MonthSummary struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"` // 1-12
	TotalIncome  Money            `json:"total_income_cents"`
	TotalExpense Money            `json:"total_expense_cents"`
	BalanceCents int64            `json:"balance_cents"`
	ByCategory   []CategoryAmount `json:"by_category,omitempty"`
	// Credit-card spending broken down by classified subcategory.
	BySubcategory []CategoryAmount `json:"by_subcategory,omitempty"`
}
