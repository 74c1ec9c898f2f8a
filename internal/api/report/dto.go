package report

import "ExpenseTracker/internal/api/expense"

// SummaryQuery is the raw query string of the summary endpoint.
type SummaryQuery struct {
	Category    *string `query:"category"`
	DateFrom    *string `query:"date_from" validate:"omitempty,isodate"`
	DateTo      *string `query:"date_to" validate:"omitempty,isodate"`
	Description *string `query:"description"`
}

func (q SummaryQuery) Raw() expense.RawFilter {
	return expense.RawFilter{
		Category:    q.Category,
		DateFrom:    q.DateFrom,
		DateTo:      q.DateTo,
		Description: q.Description,
	}
}

// EchoedFilters repeats the raw parameters that produced a report. Absent parameters are null.
type EchoedFilters struct {
	Category    *string `json:"category"`
	DateFrom    *string `json:"date_from"`
	DateTo      *string `json:"date_to"`
	Description *string `json:"description"`
}

type CategoryTotalResponse struct {
	CategoryName string `json:"category__name"`
	CategoryID   int64  `json:"category__id"`
	Total        string `json:"total"`
	Count        int    `json:"count"`
}

type SummaryResponse struct {
	TotalAmount    string                  `json:"total_amount"`
	TotalCount     int                     `json:"total_count"`
	CategoryTotals []CategoryTotalResponse `json:"category_totals"`
	AverageDaily   *string                 `json:"average_daily"`
	Filters        EchoedFilters           `json:"filters"`
}
