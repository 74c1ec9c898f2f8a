package report

import (
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/internal/entity"
	"ExpenseTracker/pkg/utils"
	"sort"

	"github.com/shopspring/decimal"
)

type CategorySubtotal struct {
	CategoryID   int64
	CategoryName string
	Subtotal     decimal.Decimal
	Count        int
}

// Summary is the reduction of one owner's filtered expenses.
type Summary struct {
	TotalAmount  decimal.Decimal
	TotalCount   int
	Breakdown    []CategorySubtotal
	AverageDaily *decimal.Decimal
	Filters      EchoedFilters
}

// Summarize reduces expenses in a single pass. The caller is responsible for having applied the
// owner scope and the filter built from raw; raw is only used for the daily average and the echo.
func Summarize(expenses []entity.Expense, raw expense.RawFilter) Summary {
	total := decimal.Zero
	groups := make(map[int64]*CategorySubtotal)

	for _, e := range expenses {
		total = total.Add(e.Amount)

		group, ok := groups[e.CategoryID]
		if !ok {
			group = &CategorySubtotal{
				CategoryID:   e.CategoryID,
				CategoryName: e.Category.Name,
				Subtotal:     decimal.Zero,
			}
			groups[e.CategoryID] = group
		}
		group.Subtotal = group.Subtotal.Add(e.Amount)
		group.Count++
	}

	breakdown := make([]CategorySubtotal, 0, len(groups))
	for _, group := range groups {
		breakdown = append(breakdown, *group)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if cmp := breakdown[i].Subtotal.Cmp(breakdown[j].Subtotal); cmp != 0 {
			return cmp > 0
		}
		return breakdown[i].CategoryID < breakdown[j].CategoryID
	})

	return Summary{
		TotalAmount:  total,
		TotalCount:   len(expenses),
		Breakdown:    breakdown,
		AverageDaily: averageDaily(total, raw.DateFrom, raw.DateTo),
		Filters: EchoedFilters{
			Category:    raw.Category,
			DateFrom:    raw.DateFrom,
			DateTo:      raw.DateTo,
			Description: raw.Description,
		},
	}
}

// averageDaily spreads total over the inclusive day span of [from, to]. It is nil unless both
// bounds were supplied, and zero when the span is empty or a bound does not parse.
func averageDaily(total decimal.Decimal, from, to *string) *decimal.Decimal {
	if from == nil || to == nil || *from == "" || *to == "" {
		return nil
	}

	zero := decimal.Zero

	start, err := utils.ParseDate(*from)
	if err != nil {
		return &zero
	}
	end, err := utils.ParseDate(*to)
	if err != nil {
		return &zero
	}

	days := utils.DaysBetween(start, end) + 1
	if days <= 0 {
		return &zero
	}

	avg := total.Div(decimal.NewFromInt(int64(days)))
	return &avg
}

// Response renders amounts as fixed two place strings.
func (s Summary) Response() SummaryResponse {
	totals := make([]CategoryTotalResponse, 0, len(s.Breakdown))
	for _, b := range s.Breakdown {
		totals = append(totals, CategoryTotalResponse{
			CategoryName: b.CategoryName,
			CategoryID:   b.CategoryID,
			Total:        expense.FormatAmount(b.Subtotal),
			Count:        b.Count,
		})
	}

	var avg *string
	if s.AverageDaily != nil {
		formatted := expense.FormatAmount(*s.AverageDaily)
		avg = &formatted
	}

	return SummaryResponse{
		TotalAmount:    expense.FormatAmount(s.TotalAmount),
		TotalCount:     s.TotalCount,
		CategoryTotals: totals,
		AverageDaily:   avg,
		Filters:        s.Filters,
	}
}
