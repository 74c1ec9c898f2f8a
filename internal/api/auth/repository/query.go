package authRepository

const (
	queryCreateUser = `
INSERT INTO users (id, username, email, password, created_at, updated_at)
VALUES (:id, :username, :email, :password, :created_at, :updated_at)`

	queryGetByID = `
SELECT id, username, email, password, created_at, updated_at
FROM users
    WHERE id = :id`

	queryGetByUsername = `
SELECT id, username, email, password, created_at, updated_at
FROM users
    WHERE username = :username`
)
