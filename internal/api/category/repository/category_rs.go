package categoryRepository

import (
	"ExpenseTracker/internal/api/category"
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

var orderClauses = map[category.Ordering]string{
	category.OrderNameAsc:       "name ASC",
	category.OrderNameDesc:      "name DESC",
	category.OrderCreatedAtAsc:  "created_at ASC",
	category.OrderCreatedAtDesc: "created_at DESC",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type CategoryDB struct {
	ID          sql.NullInt64  `db:"id"`
	Name        sql.NullString `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *categoriesRepository) CreateCategory(ctx context.Context, c entity.Category) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var id int64

	argsKV := map[string]interface{}{
		"name":        c.Name,
		"description": nullableString(c.Description),
		"created_at":  c.CreatedAt,
		"updated_at":  c.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCategory")
		return 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"name":       c.Name,
			}).Warn("CreateCategory duplicate name")
			return 0, category.ErrCategoryNameTaken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating category")
		return 0, err
	}

	return id, nil
}

func (r *categoriesRepository) GetCategoryByID(ctx context.Context, id int64) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row CategoryDB

	query, args, err := sqlx.Named(queryGetCategoryByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryByID named query preparation err")
		return entity.Category{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetCategoryByID no rows found")
			return entity.Category{}, category.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryByID execution err")
		return entity.Category{}, err
	}

	return r.makeCategory(row), nil
}

func (r *categoriesRepository) ListCategories(ctx context.Context, search string, ordering category.Ordering, limit, offset int) ([]entity.Category, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []CategoryDB
	var total int

	where := "TRUE"
	argsKV := map[string]interface{}{}

	search = strings.TrimSpace(search)
	if search != "" {
		where = "(LOWER(name) LIKE :search OR LOWER(description) LIKE :search)"
		argsKV["search"] = "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
	}

	countQuery, countArgs, err := sqlx.Named(fmt.Sprintf(queryCountCategories, where), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountCategories named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountCategories execution err")
		return nil, 0, err
	}

	orderBy, ok := orderClauses[ordering]
	if !ok {
		orderBy = orderClauses[category.OrderNameAsc]
	}

	argsKV["limit"] = limit
	argsKV["offset"] = offset

	query, args, err := sqlx.Named(fmt.Sprintf(queryListCategories, where, orderBy+", id ASC"), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListCategories named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListCategories execution err")
		return nil, 0, err
	}

	categories := make([]entity.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, r.makeCategory(row))
	}

	return categories, total, nil
}

func (r *categoriesRepository) UpdateCategory(ctx context.Context, c entity.Category) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          c.ID,
		"name":        c.Name,
		"description": nullableString(c.Description),
		"updated_at":  c.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCategory named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"name":       c.Name,
			}).Warn("UpdateCategory duplicate name")
			return category.ErrCategoryNameTaken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCategory execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCategory rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         c.ID,
		}).Warn("UpdateCategory no rows affected")
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *categoriesRepository) DeleteCategory(ctx context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteCategory, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteCategory named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if hasPQCode(err, pqForeignKeyViolation) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("DeleteCategory category still referenced by expenses")
			return category.ErrCategoryInUse
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteCategory execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteCategory rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("DeleteCategory no rows affected")
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *categoriesRepository) Exists(ctx context.Context, id int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var exists bool

	query, args, err := sqlx.Named(queryCategoryExists, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CategoryExists named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CategoryExists execution err")
		return false, err
	}

	return exists, nil
}

func (r *categoriesRepository) makeCategory(row CategoryDB) entity.Category {
	c := entity.Category{
		ID:        row.ID.Int64,
		Name:      row.Name.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Description.Valid {
		description := row.Description.String
		c.Description = &description
	}
	return c
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func hasPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
