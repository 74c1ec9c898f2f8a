package categoryRepository

const (
	queryCreateCategory = `
		INSERT INTO categories (
			name,
			description,
			created_at,
			updated_at
		) VALUES (
			:name,
			:description,
			:created_at,
			:updated_at
		)
		RETURNING id
	`

	queryGetCategoryByID = `
		SELECT
			id,
			name,
			description,
			created_at,
			updated_at
		FROM categories
		WHERE id = :id
	`

	queryListCategories = `
		SELECT
			id,
			name,
			description,
			created_at,
			updated_at
		FROM categories
		WHERE %s
		ORDER BY %s
		LIMIT :limit OFFSET :offset
	`

	queryCountCategories = `
		SELECT COUNT(*)
		FROM categories
		WHERE %s
	`

	queryUpdateCategory = `
		UPDATE categories
		SET
			name = :name,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteCategory = `
		DELETE FROM categories
		WHERE id = :id
	`

	queryCategoryExists = `
		SELECT EXISTS (
			SELECT 1 FROM categories WHERE id = :id
		)
	`
)
