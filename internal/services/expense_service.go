package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/monthkey"
	"centavo/internal/pagination"
)

// expenseService owns the expense ledger. Writes bump the budget running
// total for the expense's month through the budget service; the two writes
// are not wrapped in a transaction, so a crash between them leaves the
// budget total behind by one increment until a later write catches it up.
type expenseService struct {
	db      *gorm.DB
	budgets BudgetServicer
	now     func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, budgets BudgetServicer) ExpenseServicer {
	return &expenseService{db: db, budgets: budgets, now: time.Now}
}

// validateExpenseFields collects every violated constraint rather than
// stopping at the first, so the client sees the full list in one response.
func validateExpenseFields(category models.Category, amount float64, description string) map[string]string {
	fields := make(map[string]string)

	if category == "" {
		fields["category"] = "category is required"
	} else if !category.Valid() {
		fields["category"] = fmt.Sprintf("unknown category %q", category)
	}

	if amount <= 0 {
		fields["amount"] = "amount must be greater than zero"
	} else if amount > models.MaxExpenseAmount {
		fields["amount"] = fmt.Sprintf("amount must not exceed %d", models.MaxExpenseAmount)
	}

	if len(description) > models.MaxDescriptionLength {
		fields["description"] = fmt.Sprintf("description must be at most %d characters", models.MaxDescriptionLength)
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// CreateExpense records a new expense and bumps the budget for its month.
// A nil date defaults to now.
func (s *expenseService) CreateExpense(userID uint, category models.Category, amount float64, date *time.Time, description string) (*models.Expense, error) {
	description = strings.TrimSpace(description)
	if fields := validateExpenseFields(category, amount, description); fields != nil {
		return nil, apperrors.Validation(fields)
	}

	when := s.now()
	if date != nil {
		when = *date
	}

	expense := &models.Expense{
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        when,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.budgets.Increment(userID, monthkey.FromTime(when), amount); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetUserExpenses returns a page of the user's expenses, newest first,
// optionally filtered by category and/or month.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()
	query := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	if filter.Category != nil {
		if !filter.Category.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown category %q", *filter.Category))
		}
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.Month != nil {
		start, end := filter.Month.Start(), filter.Month.End()
		query = query.Where("date BETWEEN ? AND ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := query.
		Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	response := pagination.NewPageResponse(expenses, page.Page, page.PageSize, total)
	return &response, nil
}

// GetExpenseByID returns one expense scoped to its owner. Another user's
// expense is indistinguishable from a missing one.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense applies a partial update and adjusts the budget running
// total by the amount delta. The delta lands on the month of the expense's
// updated date; when an edit moves an expense across months the old month's
// total is not walked back.
func (s *expenseService) UpdateExpense(userID, expenseID uint, update ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	oldAmount := expense.Amount

	if update.Category != nil {
		expense.Category = *update.Category
	}
	if update.Amount != nil {
		expense.Amount = *update.Amount
	}
	if update.Date != nil {
		expense.Date = *update.Date
	}
	if update.Description != nil {
		expense.Description = strings.TrimSpace(*update.Description)
	}

	if fields := validateExpenseFields(expense.Category, expense.Amount, expense.Description); fields != nil {
		return nil, apperrors.Validation(fields)
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	delta := expense.Amount - oldAmount
	if err := s.budgets.Increment(userID, monthkey.FromTime(expense.Date), delta); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense removes an expense and subtracts its amount from the
// budget total for its month.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.budgets.Increment(userID, monthkey.FromTime(expense.Date), -expense.Amount)
}
