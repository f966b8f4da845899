// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"centavo/internal/models"
	"centavo/internal/monthkey"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("month_key", validateMonthKey)
		_ = v.RegisterValidation("trend_period", validateTrendPeriod)
	}
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

func validateMonthKey(fl validator.FieldLevel) bool {
	_, err := monthkey.Parse(fl.Field().String())
	return err == nil
}

func validateTrendPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "weekly":
		return true
	}
	return false
}
