package expenseRepository

import (
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/pkg/utils"
	"strings"
)

var orderClauses = map[expense.Ordering]string{
	expense.OrderDefault:       "e.date DESC, e.created_at DESC",
	expense.OrderDateAsc:       "e.date ASC",
	expense.OrderDateDesc:      "e.date DESC",
	expense.OrderAmountAsc:     "e.amount ASC",
	expense.OrderAmountDesc:    "e.amount DESC",
	expense.OrderCreatedAtAsc:  "e.created_at ASC",
	expense.OrderCreatedAtDesc: "e.created_at DESC",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere turns a filter into a named-parameter WHERE body. The owner predicate is always first.
func buildWhere(ownerID string, f expense.Filter) (string, map[string]interface{}) {
	conditions := []string{"e.user_id = :user_id"}
	argsKV := map[string]interface{}{
		"user_id": ownerID,
	}

	if f.HasCategoryConstraint() {
		conditions = append(conditions, "e.category_id IN (:category_ids)")
		argsKV["category_ids"] = f.CategoryIDs
	}

	if f.DateFrom != nil {
		conditions = append(conditions, "e.date >= :date_from")
		argsKV["date_from"] = utils.FormatDate(*f.DateFrom)
	}

	if f.DateTo != nil {
		conditions = append(conditions, "e.date <= :date_to")
		argsKV["date_to"] = utils.FormatDate(*f.DateTo)
	}

	if f.Date != nil {
		conditions = append(conditions, "e.date = :date")
		argsKV["date"] = utils.FormatDate(*f.Date)
	}

	if f.HasText() {
		argsKV["text"] = "%" + likeEscaper.Replace(strings.ToLower(f.Text)) + "%"
		switch f.TextScope {
		case expense.TextScopeDescription:
			conditions = append(conditions, "LOWER(e.description) LIKE :text")
		default:
			conditions = append(conditions, "(LOWER(e.description) LIKE :text OR LOWER(c.name) LIKE :text)")
		}
	}

	return strings.Join(conditions, " AND "), argsKV
}

// buildOrderBy always ends with e.id so equal sort keys come back in a stable order.
func buildOrderBy(ordering expense.Ordering) string {
	clause, ok := orderClauses[ordering]
	if !ok {
		clause = orderClauses[expense.OrderDefault]
	}
	return clause + ", e.id ASC"
}
