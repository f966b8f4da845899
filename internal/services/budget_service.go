package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/monthkey"
)

// budgetService tracks per-user, per-month budget limits and the running
// spent total the expense ledger maintains through Increment.
type budgetService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db, now: time.Now}
}

// resolveMonth substitutes the current calendar month for a zero-value key.
func (s *budgetService) resolveMonth(month monthkey.Key) monthkey.Key {
	if month == "" {
		return monthkey.FromTime(s.now())
	}
	return month
}

// newBudgetView computes the derived read-side fields for a budget row.
// Remaining clamps at zero; the stored spent total does not.
func newBudgetView(b models.Budget) BudgetView {
	pct := 0
	if b.Limit > 0 {
		pct = int(math.Round(b.Spent / b.Limit * 100))
	}

	status := models.BudgetStatusSafe
	switch {
	case pct >= 90:
		status = models.BudgetStatusDanger
	case pct >= 80:
		status = models.BudgetStatusWarning
	}

	remaining := b.Limit - b.Spent
	if remaining < 0 {
		remaining = 0
	}

	return BudgetView{
		Budget:             b,
		Remaining:          remaining,
		SpendingPercentage: pct,
		Status:             status,
		MonthLabel:         monthkey.Key(b.Month).Label(),
	}
}

// SetBudget sets the limit for (user, month), creating the row if needed.
// An existing row keeps its spent total; only the limit is overwritten.
func (s *budgetService) SetBudget(userID uint, month monthkey.Key, limit float64) (*BudgetView, error) {
	if limit < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must not be negative")
	}
	month = s.resolveMonth(month)

	var budget models.Budget
	err := s.db.Where("user_id = ? AND month = ?", userID, month.String()).First(&budget).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{UserID: userID, Month: month.String(), Limit: limit}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if err := s.db.Model(&budget).Update("limit_amount", limit).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Limit = limit
	}

	view := newBudgetView(budget)
	return &view, nil
}

// GetBudget returns the budget for (user, month). When no row exists one is
// created with limit 0 and spent 0, so this read writes on first access.
func (s *budgetService) GetBudget(userID uint, month monthkey.Key) (*BudgetView, error) {
	month = s.resolveMonth(month)

	var budget models.Budget
	err := s.db.Where("user_id = ? AND month = ?", userID, month.String()).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		budget = models.Budget{UserID: userID, Month: month.String()}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	} else if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	view := newBudgetView(budget)
	return &view, nil
}

// Increment atomically adds delta to the spent total for (user, month),
// creating the row with limit 0 when absent. Delta is signed: expense
// deletions and downward edits pass negative values. The single-row UPDATE
// expression makes concurrent increments on the same month commute.
func (s *budgetService) Increment(userID uint, month monthkey.Key, delta float64) error {
	month = s.resolveMonth(month)

	bump := func() (int64, error) {
		res := s.db.Model(&models.Budget{}).
			Where("user_id = ? AND month = ?", userID, month.String()).
			Update("spent", gorm.Expr("spent + ?", delta))
		return res.RowsAffected, res.Error
	}

	affected, err := bump()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if affected > 0 {
		return nil
	}

	// No row yet: create it with the delta as the initial running total.
	budget := &models.Budget{UserID: userID, Month: month.String(), Spent: delta}
	if err := s.db.Create(budget).Error; err == nil {
		return nil
	}

	// Create failed, so a concurrent request won the insert race.
	// The row exists now; apply the delta to it.
	affected, err = bump()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if affected == 0 {
		return apperrors.Wrap(apperrors.ErrInternalServer,
			fmt.Errorf("budget row for user %d month %s missing after insert race", userID, month))
	}
	return nil
}

// GetHistory returns the trailing 12 calendar months (current month last),
// synthesizing zero-valued entries for months without a stored row.
func (s *budgetService) GetHistory(userID uint) ([]BudgetView, error) {
	keys := monthkey.Trailing(monthkey.FromTime(s.now()), 12)

	months := make([]string, len(keys))
	for i, k := range keys {
		months[i] = k.String()
	}

	var rows []models.Budget
	if err := s.db.Where("user_id = ? AND month IN ?", userID, months).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byMonth := make(map[string]models.Budget, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}

	history := make([]BudgetView, 0, len(keys))
	for _, k := range keys {
		row, ok := byMonth[k.String()]
		if !ok {
			row = models.Budget{UserID: userID, Month: k.String()}
		}
		history = append(history, newBudgetView(row))
	}
	return history, nil
}

// DeleteBudget removes the budget row for (user, month).
func (s *budgetService) DeleteBudget(userID uint, month monthkey.Key) error {
	var budget models.Budget
	if err := s.db.Where("user_id = ? AND month = ?", userID, month.String()).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetAlerts evaluates the current month's budget against the alert tiers.
// A budget with no limit set produces no alerts. At most one alert fires:
// the highest tier the spending percentage reaches.
func (s *budgetService) GetAlerts(userID uint) (*BudgetAlerts, error) {
	view, err := s.GetBudget(userID, "")
	if err != nil {
		return nil, err
	}

	result := &BudgetAlerts{Alerts: []BudgetAlert{}, Budget: view}
	if view.Limit == 0 {
		return result, nil
	}

	pct := view.SpendingPercentage
	var alert *BudgetAlert
	switch {
	case pct >= 100:
		alert = &BudgetAlert{
			Level:      "danger",
			Message:    fmt.Sprintf("You have exceeded your %s budget by %.2f", view.MonthLabel, view.Spent-view.Limit),
			Percentage: pct,
		}
	case pct >= 90:
		alert = &BudgetAlert{
			Level:      "danger",
			Message:    fmt.Sprintf("Your %s budget is almost exceeded: %d%% used", view.MonthLabel, pct),
			Percentage: pct,
		}
	case pct >= 80:
		alert = &BudgetAlert{
			Level:      "warning",
			Message:    fmt.Sprintf("You have used %d%% of your %s budget", pct, view.MonthLabel),
			Percentage: pct,
		}
	case pct >= 70:
		alert = &BudgetAlert{
			Level:      "info",
			Message:    fmt.Sprintf("You have used %d%% of your %s budget", pct, view.MonthLabel),
			Percentage: pct,
		}
	}

	if alert != nil {
		result.Alerts = append(result.Alerts, *alert)
		result.HasAlerts = true
	}
	return result, nil
}
