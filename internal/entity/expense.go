package entity

import (
	"ExpenseTracker/internal/api/expense"
	"github.com/shopspring/decimal"
	"strings"
	"time"
)

// MaxAmount is the first value that no longer fits NUMERIC(10,2).
var MaxAmount = decimal.New(1, 8)

type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CategoryID  int64           `json:"category_id"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Validate enforces the write-time invariants of an expense.
func (e *Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return expense.ErrInvalidAmount
	}

	if !e.Amount.Equal(e.Amount.Round(2)) || e.Amount.GreaterThanOrEqual(MaxAmount) {
		return expense.ErrInvalidAmountPrecision
	}

	if strings.TrimSpace(e.Description) == "" {
		return expense.ErrInvalidDescription
	}

	if e.CategoryID <= 0 {
		return expense.ErrInvalidCategory
	}

	if e.Date.IsZero() {
		return expense.ErrInvalidDate
	}

	return nil
}
