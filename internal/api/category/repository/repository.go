package categoryRepository

import (
	"ExpenseTracker/internal/api/category"
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
		Categories: &categoriesRepository{q: sqlExecutor, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Categories interface {
		CreateCategory(ctx context.Context, c entity.Category) (int64, error)
		GetCategoryByID(ctx context.Context, id int64) (entity.Category, error)
		ListCategories(ctx context.Context, search string, ordering category.Ordering, limit, offset int) ([]entity.Category, int, error)
		UpdateCategory(ctx context.Context, c entity.Category) error
		DeleteCategory(ctx context.Context, id int64) error
		Exists(ctx context.Context, id int64) (bool, error)
	}

	Commit   func() error
	Rollback func() error
}

type categoriesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
