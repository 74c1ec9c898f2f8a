package expense

import (
	"ExpenseTracker/pkg/response"
	"net/http"
)

var (
	ErrExpenseNotFound        = response.NewError(http.StatusNotFound, "expense not found")
	ErrInvalidAmount          = response.NewError(http.StatusBadRequest, "amount must be greater than zero")
	ErrInvalidAmountPrecision = response.NewError(http.StatusBadRequest, "amount must have at most 8 integer digits and 2 decimal places")
	ErrInvalidDescription     = response.NewError(http.StatusBadRequest, "description is required")
	ErrInvalidCategory        = response.NewError(http.StatusBadRequest, "category does not exist")
	ErrInvalidDate            = response.NewError(http.StatusBadRequest, "date must be a valid YYYY-MM-DD date")
	ErrCreateExpense          = response.NewError(http.StatusInternalServerError, "failed to create expense")
	ErrUpdateExpense          = response.NewError(http.StatusInternalServerError, "failed to update expense")
	ErrDeleteExpense          = response.NewError(http.StatusInternalServerError, "failed to delete expense")
)
