package models

// BudgetStatus is the categorical health of a month's budget, derived from
// the spending percentage: <80 safe, 80-89 warning, >=90 danger.
type BudgetStatus string

const (
	BudgetStatusSafe    BudgetStatus = "safe"
	BudgetStatusWarning BudgetStatus = "warning"
	BudgetStatusDanger  BudgetStatus = "danger"
)

// Budget holds one user's limit and running spent total for a single calendar
// month. At most one row exists per (user, month); month is a "YYYY-MM" key.
// Spent is adjusted incrementally by expense mutations and is not clamped at
// the storage layer even though the derived remaining value clamps at zero.
type Budget struct {
	Base
	UserID uint    `gorm:"not null;uniqueIndex:idx_budgets_user_month" json:"user_id"`
	Month  string  `gorm:"size:7;not null;uniqueIndex:idx_budgets_user_month" json:"month"`
	Limit  float64 `gorm:"column:limit_amount;not null;default:0" json:"limit"`
	Spent  float64 `gorm:"not null;default:0" json:"spent"`
}
