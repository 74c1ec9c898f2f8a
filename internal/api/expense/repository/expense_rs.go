package expenseRepository

import (
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	"ExpenseTracker/pkg/utils"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

const pqForeignKeyViolation = "23503"

type ExpenseDB struct {
	ID                  sql.NullString  `db:"id"`
	UserID              sql.NullString  `db:"user_id"`
	Amount              decimal.Decimal `db:"amount"`
	Description         sql.NullString  `db:"description"`
	CategoryID          sql.NullInt64   `db:"category_id"`
	Date                time.Time       `db:"date"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
	CategoryName        sql.NullString  `db:"category_name"`
	CategoryDescription sql.NullString  `db:"category_description"`
	CategoryCreatedAt   sql.NullTime    `db:"category_created_at"`
	CategoryUpdatedAt   sql.NullTime    `db:"category_updated_at"`
}

func (r *expensesRepository) CreateExpense(ctx context.Context, e entity.Expense) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          e.ID,
		"user_id":     e.UserID,
		"amount":      e.Amount,
		"description": e.Description,
		"category_id": e.CategoryID,
		"date":        utils.FormatDate(e.Date),
		"created_at":  e.CreatedAt,
		"updated_at":  e.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExpense")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": e.CategoryID,
			}).Warn("CreateExpense category does not exist")
			return expense.ErrInvalidCategory
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")
		return err
	}

	return nil
}

func (r *expensesRepository) GetExpenseByID(ctx context.Context, ownerID, id string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row ExpenseDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": ownerID,
	}

	query, args, err := sqlx.Named(queryGetExpenseByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID named query preparation err")
		return entity.Expense{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetExpenseByID no rows found")
			return entity.Expense{}, expense.ErrExpenseNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID execution err")
		return entity.Expense{}, err
	}

	return r.makeExpense(row), nil
}

func (r *expensesRepository) ListExpenses(ctx context.Context, ownerID string, filter expense.Filter, limit, offset int) ([]entity.Expense, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ExpenseDB
	var total int

	where, argsKV := buildWhere(ownerID, filter)

	countQuery, countArgs, err := r.prepare(fmt.Sprintf(queryCountExpenses, where), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountExpenses named query preparation err")
		return nil, 0, err
	}

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountExpenses execution err")
		return nil, 0, err
	}

	argsKV["limit"] = limit
	argsKV["offset"] = offset

	query, args, err := r.prepare(fmt.Sprintf(queryListExpenses, where, buildOrderBy(filter.Ordering)), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListExpenses named query preparation err")
		return nil, 0, err
	}

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListExpenses execution err")
		return nil, 0, err
	}

	return r.makeExpenses(rows), total, nil
}

func (r *expensesRepository) FindExpenses(ctx context.Context, ownerID string, filter expense.Filter) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ExpenseDB

	where, argsKV := buildWhere(ownerID, filter)

	query, args, err := r.prepare(fmt.Sprintf(queryFindExpenses, where, buildOrderBy(filter.Ordering)), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("FindExpenses named query preparation err")
		return nil, err
	}

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("FindExpenses execution err")
		return nil, err
	}

	return r.makeExpenses(rows), nil
}

func (r *expensesRepository) UpdateExpense(ctx context.Context, ownerID string, e entity.Expense) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          e.ID,
		"user_id":     ownerID,
		"amount":      e.Amount,
		"description": e.Description,
		"category_id": e.CategoryID,
		"date":        utils.FormatDate(e.Date),
		"updated_at":  e.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": e.CategoryID,
			}).Warn("UpdateExpense category does not exist")
			return expense.ErrInvalidCategory
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         e.ID,
		}).Warn("UpdateExpense no rows affected")
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expensesRepository) DeleteExpense(ctx context.Context, ownerID, id string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": ownerID,
	}

	query, args, err := sqlx.Named(queryDeleteExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("DeleteExpense no rows affected")
		return expense.ErrExpenseNotFound
	}

	return nil
}

// prepare expands named parameters and IN lists, then rebinds for the driver.
func (r *expensesRepository) prepare(query string, argsKV map[string]interface{}) (string, []interface{}, error) {
	query, args, err := sqlx.Named(query, argsKV)
	if err != nil {
		return "", nil, err
	}

	query, args, err = sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}

	return r.q.Rebind(query), args, nil
}

func (r *expensesRepository) makeExpenses(rows []ExpenseDB) []entity.Expense {
	expenses := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, r.makeExpense(row))
	}
	return expenses
}

func (r *expensesRepository) makeExpense(row ExpenseDB) entity.Expense {
	category := entity.Category{
		ID:        row.CategoryID.Int64,
		Name:      row.CategoryName.String,
		CreatedAt: row.CategoryCreatedAt.Time,
		UpdatedAt: row.CategoryUpdatedAt.Time,
	}
	if row.CategoryDescription.Valid {
		description := row.CategoryDescription.String
		category.Description = &description
	}

	return entity.Expense{
		ID:          row.ID.String,
		UserID:      row.UserID.String,
		Amount:      row.Amount,
		Description: row.Description.String,
		CategoryID:  row.CategoryID.Int64,
		Category:    category,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}
