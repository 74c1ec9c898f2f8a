package expense

import (
	"ExpenseTracker/internal/api/category"
	"ExpenseTracker/pkg/pagination"
	"time"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	Date        string          `json:"date" validate:"required,isodate"`
}

// UpdateExpenseRequest replaces every writable field (PUT).
type UpdateExpenseRequest = CreateExpenseRequest

// PatchExpenseRequest changes only the supplied fields (PATCH).
type PatchExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
	Date        *string          `json:"date" validate:"omitempty,isodate"`
}

// ListExpensesQuery carries the raw list query string. Values are validated before parsing.
type ListExpensesQuery struct {
	Category *string `query:"category"`
	DateFrom *string `query:"date_from" validate:"omitempty,isodate"`
	DateTo   *string `query:"date_to" validate:"omitempty,isodate"`
	Date     *string `query:"date" validate:"omitempty,isodate"`
	Search   *string `query:"search"`
	Ordering *string `query:"ordering" validate:"omitempty,expense_ordering"`
	Page     int     `query:"page" validate:"omitempty,gte=1"`
	PageSize int     `query:"page_size" validate:"omitempty,gte=1,lte=100"`
}

func (q ListExpensesQuery) Raw() RawFilter {
	return RawFilter{
		Category: q.Category,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Date:     q.Date,
		Search:   q.Search,
		Ordering: q.Ordering,
	}
}

func (q ListExpensesQuery) Pagination() pagination.Pagination {
	return pagination.New(q.Page, q.PageSize)
}

type ExpenseResponse struct {
	ID          string                    `json:"id"`
	Amount      string                    `json:"amount"`
	Description string                    `json:"description"`
	Category    category.CategoryResponse `json:"category"`
	Date        string                    `json:"date"`
	User        string                    `json:"user"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

type ExpenseListItem struct {
	ID           string    `json:"id"`
	Amount       string    `json:"amount"`
	Description  string    `json:"description"`
	CategoryName string    `json:"category_name"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

type ExpenseListResponse struct {
	Count    int               `json:"count"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Next     *int              `json:"next"`
	Previous *int              `json:"previous"`
	Results  []ExpenseListItem `json:"results"`
}

func NewExpenseListResponse(items []ExpenseListItem, count int, p pagination.Pagination) ExpenseListResponse {
	if items == nil {
		items = []ExpenseListItem{}
	}

	next, previous := p.Links(count)

	return ExpenseListResponse{
		Count:    count,
		Page:     p.Page,
		PageSize: p.PageSize,
		Next:     next,
		Previous: previous,
		Results:  items,
	}
}

// FormatAmount renders an amount with exactly two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
