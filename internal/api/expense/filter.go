package expense

import (
	"ExpenseTracker/pkg/utils"
	"strconv"
	"strings"
	"time"
)

type Ordering string

const (
	OrderDateAsc       Ordering = "date"
	OrderDateDesc      Ordering = "-date"
	OrderAmountAsc     Ordering = "amount"
	OrderAmountDesc    Ordering = "-amount"
	OrderCreatedAtAsc  Ordering = "created_at"
	OrderCreatedAtDesc Ordering = "-created_at"

	// OrderDefault sorts by date then creation time, newest first.
	OrderDefault Ordering = ""
)

var validOrderings = map[Ordering]bool{
	OrderDateAsc:       true,
	OrderDateDesc:      true,
	OrderAmountAsc:     true,
	OrderAmountDesc:    true,
	OrderCreatedAtAsc:  true,
	OrderCreatedAtDesc: true,
}

func IsValidOrdering(value string) bool {
	return validOrderings[Ordering(value)]
}

// TextScope selects which fields a text query is matched against.
type TextScope int

const (
	// TextScopeDescriptionOrCategory matches the description or the category name (list endpoint).
	TextScopeDescriptionOrCategory TextScope = iota
	// TextScopeDescription matches the description only (summary endpoint).
	TextScopeDescription
)

// RawFilter holds query parameters exactly as received. A nil field was not supplied.
type RawFilter struct {
	Category    *string
	DateFrom    *string
	DateTo      *string
	Date        *string
	Search      *string
	Description *string
	Ordering    *string
}

// Filter is the typed form of RawFilter. Every constraint is optional and they combine with AND.
// Ownership is not part of the filter: store calls take the owner id explicitly.
type Filter struct {
	CategoryIDs []int64
	DateFrom    *time.Time
	DateTo      *time.Time
	Date        *time.Time
	Text        string
	TextScope   TextScope
	Ordering    Ordering
}

func (f Filter) HasCategoryConstraint() bool {
	return len(f.CategoryIDs) > 0
}

func (f Filter) HasText() bool {
	return f.Text != ""
}

// ParseListFilter builds the filter used by the expense list: text search spans description and
// category name, and the exact date and ordering parameters are honored.
func ParseListFilter(raw RawFilter) Filter {
	f := Filter{
		CategoryIDs: ParseCategoryIDs(deref(raw.Category)),
		DateFrom:    parseOptionalDate(raw.DateFrom),
		DateTo:      parseOptionalDate(raw.DateTo),
		Date:        parseOptionalDate(raw.Date),
		Text:        strings.TrimSpace(deref(raw.Search)),
		TextScope:   TextScopeDescriptionOrCategory,
		Ordering:    OrderDefault,
	}

	if raw.Ordering != nil && IsValidOrdering(*raw.Ordering) {
		f.Ordering = Ordering(*raw.Ordering)
	}

	return f
}

// ParseSummaryFilter builds the filter used by the summary report: text matches description only.
func ParseSummaryFilter(raw RawFilter) Filter {
	return Filter{
		CategoryIDs: ParseCategoryIDs(deref(raw.Category)),
		DateFrom:    parseOptionalDate(raw.DateFrom),
		DateTo:      parseOptionalDate(raw.DateTo),
		Text:        deref(raw.Description),
		TextScope:   TextScopeDescription,
		Ordering:    OrderDefault,
	}
}

// ParseCategoryIDs splits a comma separated id list. Blank and non-integer tokens are dropped, so
// "1,abc,2" yields [1 2] and "abc,xyz" yields an empty set, which means no category constraint.
func ParseCategoryIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}

	var ids []int64
	seen := make(map[int64]bool)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			continue
		}

		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids
}

func parseOptionalDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}

	d, err := utils.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return nil
	}
	return &d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
