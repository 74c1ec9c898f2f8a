package expenseRepository

const (
	queryCreateExpense = `
		INSERT INTO expenses (
			id,
			user_id,
			amount,
			description,
			category_id,
			date,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:amount,
			:description,
			:category_id,
			:date,
			:created_at,
			:updated_at
		)
	`

	selectExpenseColumns = `
		SELECT
			e.id,
			e.user_id,
			e.amount,
			e.description,
			e.category_id,
			e.date,
			e.created_at,
			e.updated_at,
			c.name AS category_name,
			c.description AS category_description,
			c.created_at AS category_created_at,
			c.updated_at AS category_updated_at
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
	`

	queryGetExpenseByID = selectExpenseColumns + `
		WHERE e.id = :id AND e.user_id = :user_id
	`

	// queryFindExpenses expects the WHERE and ORDER BY bodies to be filled in.
	queryFindExpenses = selectExpenseColumns + `
		WHERE %s
		ORDER BY %s
	`

	queryListExpenses = queryFindExpenses + `
		LIMIT :limit OFFSET :offset
	`

	queryCountExpenses = `
		SELECT COUNT(*)
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE %s
	`

	queryUpdateExpense = `
		UPDATE expenses
		SET
			amount = :amount,
			description = :description,
			category_id = :category_id,
			date = :date,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	queryDeleteExpense = `
		DELETE FROM expenses
		WHERE id = :id AND user_id = :user_id
	`
)
