package expenseRepository

import (
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Expenses: &expensesRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

// Client exposes the expense store. Every method is scoped to ownerID; a record owned by someone
// else behaves exactly like a missing one.
type Client struct {
	Expenses interface {
		CreateExpense(ctx context.Context, e entity.Expense) error
		GetExpenseByID(ctx context.Context, ownerID, id string) (entity.Expense, error)
		ListExpenses(ctx context.Context, ownerID string, filter expense.Filter, limit, offset int) ([]entity.Expense, int, error)
		FindExpenses(ctx context.Context, ownerID string, filter expense.Filter) ([]entity.Expense, error)
		UpdateExpense(ctx context.Context, ownerID string, e entity.Expense) error
		DeleteExpense(ctx context.Context, ownerID, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type expensesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
