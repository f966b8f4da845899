package services

import (
	"time"

	"centavo/internal/models"
	"centavo/internal/monthkey"
	"centavo/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category *models.Category
	Month    *monthkey.Key
}

// ExpenseUpdate holds the optional fields of a partial expense update.
// Nil fields are left untouched.
type ExpenseUpdate struct {
	Category    *models.Category
	Amount      *float64
	Date        *time.Time
	Description *string
}

// ExpenseServicer defines the contract for the expense ledger. Every
// amount-affecting mutation bumps the owning month's budget running total
// as a second, non-transactional write.
type ExpenseServicer interface {
	CreateExpense(userID uint, category models.Category, amount float64, date *time.Time, description string) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, update ExpenseUpdate) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// BudgetView is a budget row together with its derived read-side fields.
type BudgetView struct {
	models.Budget
	Remaining          float64             `json:"remaining"`
	SpendingPercentage int                 `json:"spending_percentage"`
	Status             models.BudgetStatus `json:"status"`
	MonthLabel         string              `json:"month_label"`
}

// BudgetAlert is a single threshold warning for the current month's budget.
type BudgetAlert struct {
	Level      string `json:"level"` // info, warning, or danger
	Message    string `json:"message"`
	Percentage int    `json:"percentage"`
}

// BudgetAlerts is the alert payload for the current month.
type BudgetAlerts struct {
	Alerts    []BudgetAlert `json:"alerts"`
	HasAlerts bool          `json:"has_alerts"`
	Budget    *BudgetView   `json:"budget,omitempty"`
}

// BudgetServicer defines the contract for per-month budget tracking.
// A zero-value month selects the current calendar month.
type BudgetServicer interface {
	SetBudget(userID uint, month monthkey.Key, limit float64) (*BudgetView, error)
	GetBudget(userID uint, month monthkey.Key) (*BudgetView, error)
	Increment(userID uint, month monthkey.Key, delta float64) error
	GetHistory(userID uint) ([]BudgetView, error)
	DeleteBudget(userID uint, month monthkey.Key) error
	GetAlerts(userID uint) (*BudgetAlerts, error)
}

// MonthlyPoint is one month's spending paired with its budget limit.
type MonthlyPoint struct {
	Month monthkey.Key `json:"month"`
	Label string       `json:"label"`
	Spent float64      `json:"spent"`
	Limit float64      `json:"limit"`
}

// MonthlySeries is a full calendar year of monthly spending.
type MonthlySeries struct {
	Year       int            `json:"year"`
	Months     []MonthlyPoint `json:"months"`
	TotalSpent float64        `json:"total_spent"`
	TotalLimit float64        `json:"total_limit"`
}

// CategoryStat is one category's share of spending within a window.
type CategoryStat struct {
	Category   models.Category `json:"category"`
	Total      float64         `json:"total"`
	Count      int64           `json:"count"`
	Percentage int             `json:"percentage"`
}

// CategoryBreakdown groups a window's expenses by category, largest first.
type CategoryBreakdown struct {
	Label      string         `json:"label"`
	GrandTotal float64        `json:"grand_total"`
	Categories []CategoryStat `json:"categories"`
}

// TrendPoint is one bucket of a spending trend series.
type TrendPoint struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	Total float64   `json:"total"`
}

// Trends is a rolling series of spending buckets, oldest first.
type Trends struct {
	Period  string       `json:"period"` // monthly or weekly
	Points  []TrendPoint `json:"points"`
	Average float64      `json:"average"`
}

// MonthComparison compares the current month's total spend to the previous
// month's. PercentChange is 0 when the previous month's total was 0.
type MonthComparison struct {
	Previous      float64 `json:"previous"`
	Current       float64 `json:"current"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	Trend         string  `json:"trend"` // increase, decrease, or stable
}

// Summary is the cross-cutting dashboard payload for the current month.
type Summary struct {
	Month            monthkey.Key    `json:"month"`
	Label            string          `json:"label"`
	Spent            float64         `json:"spent"`
	Limit            float64         `json:"limit"`
	Remaining        float64         `json:"remaining"`
	TransactionCount int64           `json:"transaction_count"`
	TopCategories    []CategoryStat  `json:"top_categories"`
	Comparison       MonthComparison `json:"comparison"`
}

// AnalyticsWindow selects the date range for a category breakdown: a single
// month, a full year, or (neither set) the current month.
type AnalyticsWindow struct {
	Month *monthkey.Key
	Year  *int
}

// AnalyticsServicer defines the read-only aggregation contract. Every call
// recomputes from the expense and budget rows; nothing is memoized.
type AnalyticsServicer interface {
	GetMonthlySeries(userID uint, year int) (*MonthlySeries, error)
	GetCategoryBreakdown(userID uint, window AnalyticsWindow) (*CategoryBreakdown, error)
	GetTrends(userID uint, period string, count int) (*Trends, error)
	GetSummary(userID uint) (*Summary, error)
}
