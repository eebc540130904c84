// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fincontrol/internal/monthkey"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month_key", validateMonthKey)
		_ = v.RegisterValidation("date_br", validateDateBR)
	}
}

// validateMonthKey accepts MM/YYYY month keys.
func validateMonthKey(fl validator.FieldLevel) bool {
	return monthkey.IsValid(fl.Field().String())
}

// validateDateBR accepts DD/MM/YYYY calendar dates.
func validateDateBR(fl validator.FieldLevel) bool {
	return monthkey.IsValidDate(fl.Field().String())
}
