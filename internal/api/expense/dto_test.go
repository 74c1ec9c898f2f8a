package expense

import (
	"testing"

	"ExpenseTracker/pkg/pagination"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseListResponse(t *testing.T) {
	first := NewExpenseListResponse(nil, 120, pagination.New(1, 50))
	require.NotNil(t, first.Next)
	assert.Equal(t, 2, *first.Next)
	assert.Nil(t, first.Previous)
	assert.NotNil(t, first.Results)
	assert.Empty(t, first.Results)

	last := NewExpenseListResponse([]ExpenseListItem{{ID: "a"}}, 120, pagination.New(3, 50))
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, 2, *last.Previous)
	assert.Equal(t, 120, last.Count)
	assert.Equal(t, 50, last.PageSize)
}

func TestListExpensesQuery_Raw(t *testing.T) {
	q := ListExpensesQuery{Category: strPtr("1,2"), Search: strPtr("tea"), Page: 2}

	raw := q.Raw()
	assert.Equal(t, "1,2", *raw.Category)
	assert.Equal(t, "tea", *raw.Search)
	assert.Nil(t, raw.DateFrom)
	assert.Nil(t, raw.Description)
	assert.Equal(t, pagination.Pagination{Page: 2, PageSize: pagination.DefaultPageSize}, q.Pagination())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "75.00", FormatAmount(decimal.RequireFromString("75")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "33.33", FormatAmount(decimal.RequireFromString("33.333")))
	assert.Equal(t, "1234.50", FormatAmount(decimal.RequireFromString("1234.5")))
}
