package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestParseCategoryIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "3", want: []int64{3}},
		{name: "list with spaces", raw: " 1, 2 ,3", want: []int64{1, 2, 3}},
		{name: "invalid token dropped", raw: "1,abc,2", want: []int64{1, 2}},
		{name: "all invalid", raw: "abc,xyz", want: nil},
		{name: "blank tokens", raw: ",,", want: nil},
		{name: "duplicates collapsed", raw: "2,2,1", want: []int64{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategoryIDs(tt.raw))
		})
	}
}

func TestParseListFilter_InvalidCategoryTokensMatchCleanList(t *testing.T) {
	noisy := ParseListFilter(RawFilter{Category: strPtr("1,abc,2")})
	clean := ParseListFilter(RawFilter{Category: strPtr("1,2")})

	assert.Equal(t, clean, noisy)
	assert.True(t, noisy.HasCategoryConstraint())
}

func TestParseListFilter_NoCategoryConstraint(t *testing.T) {
	for _, raw := range []*string{nil, strPtr(""), strPtr("abc,xyz")} {
		f := ParseListFilter(RawFilter{Category: raw})
		assert.False(t, f.HasCategoryConstraint())
	}
}

func TestParseListFilter(t *testing.T) {
	f := ParseListFilter(RawFilter{
		Category: strPtr("4"),
		DateFrom: strPtr("2024-01-01"),
		DateTo:   strPtr("2024-01-31"),
		Date:     strPtr("2024-01-15"),
		Search:   strPtr("  coffee "),
		Ordering: strPtr("-amount"),
	})

	require.NotNil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	require.NotNil(t, f.Date)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *f.DateTo)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *f.Date)
	assert.Equal(t, []int64{4}, f.CategoryIDs)
	assert.Equal(t, "coffee", f.Text)
	assert.Equal(t, TextScopeDescriptionOrCategory, f.TextScope)
	assert.Equal(t, OrderAmountDesc, f.Ordering)
}

func TestParseListFilter_Defaults(t *testing.T) {
	f := ParseListFilter(RawFilter{})

	assert.Nil(t, f.DateFrom)
	assert.Nil(t, f.DateTo)
	assert.Nil(t, f.Date)
	assert.False(t, f.HasText())
	assert.Equal(t, OrderDefault, f.Ordering)
}

func TestParseListFilter_UnknownOrderingFallsBack(t *testing.T) {
	f := ParseListFilter(RawFilter{Ordering: strPtr("description")})
	assert.Equal(t, OrderDefault, f.Ordering)
}

func TestParseListFilter_UnparsableDateIgnored(t *testing.T) {
	f := ParseListFilter(RawFilter{DateFrom: strPtr("2024-13-01"), DateTo: strPtr("yesterday")})

	assert.Nil(t, f.DateFrom)
	assert.Nil(t, f.DateTo)
}

func TestParseListFilter_InvertedRangeKept(t *testing.T) {
	f := ParseListFilter(RawFilter{DateFrom: strPtr("2024-02-01"), DateTo: strPtr("2024-01-01")})

	require.NotNil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.True(t, f.DateFrom.After(*f.DateTo))
}

func TestParseSummaryFilter(t *testing.T) {
	f := ParseSummaryFilter(RawFilter{
		Category:    strPtr("1,2"),
		DateFrom:    strPtr("2024-01-01"),
		Date:        strPtr("2024-01-05"),
		Search:      strPtr("ignored"),
		Description: strPtr("Lunch"),
		Ordering:    strPtr("amount"),
	})

	assert.Equal(t, []int64{1, 2}, f.CategoryIDs)
	assert.NotNil(t, f.DateFrom)
	assert.Nil(t, f.DateTo)
	assert.Nil(t, f.Date)
	assert.Equal(t, "Lunch", f.Text)
	assert.Equal(t, TextScopeDescription, f.TextScope)
	assert.Equal(t, OrderDefault, f.Ordering)
}

func TestIsValidOrdering(t *testing.T) {
	for _, key := range []string{"date", "-date", "amount", "-amount", "created_at", "-created_at"} {
		assert.True(t, IsValidOrdering(key), key)
	}
	for _, key := range []string{"", "id", "-description", "DATE"} {
		assert.False(t, IsValidOrdering(key), key)
	}
}
