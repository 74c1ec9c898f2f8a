package validator

import (
	"ExpenseTracker/internal/api/category"
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/pkg/utils"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the project specific tags registered:
// isodate (YYYY-MM-DD), expense_ordering and category_ordering.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	_ = validate.RegisterValidation("isodate", isoDate)
	_ = validate.RegisterValidation("expense_ordering", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || expense.IsValidOrdering(value)
	})
	_ = validate.RegisterValidation("category_ordering", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || category.IsValidOrdering(value)
	})

	return validate
}

// isoDate accepts an empty value so that "?date_from=" reads as not supplied.
func isoDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := utils.ParseDate(value)
	return err == nil
}
