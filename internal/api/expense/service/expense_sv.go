package expenseService

import (
	"ExpenseTracker/internal/api/category"
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	"ExpenseTracker/pkg/utils"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

func (s *expenseService) CreateExpense(ctx context.Context, owner entity.UserLoginData, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return expense.ExpenseResponse{}, expense.ErrInvalidDate
	}

	now := s.utils.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return expense.ExpenseResponse{}, expense.ErrCreateExpense
	}

	e := entity.Expense{
		ID:          id,
		UserID:      owner.ID,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		CategoryID:  req.CategoryID,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	if err := s.ensureCategoryExists(ctx, e.CategoryID); err != nil {
		return expense.ExpenseResponse{}, err
	}

	repo, err := s.expenseRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return expense.ExpenseResponse{}, err
	}

	if err := repo.Expenses.CreateExpense(ctx, e); err != nil {
		if errors.Is(err, expense.ErrInvalidCategory) {
			return expense.ExpenseResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    owner.ID,
			"error":      err.Error(),
		}).Error("Failed to create expense")
		return expense.ExpenseResponse{}, expense.ErrCreateExpense
	}

	created, err := repo.Expenses.GetExpenseByID(ctx, owner.ID, e.ID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	return toResponse(created, owner), nil
}

func (s *expenseService) GetExpense(ctx context.Context, owner entity.UserLoginData, id string) (expense.ExpenseResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return expense.ExpenseResponse{}, err
	}

	e, err := repo.Expenses.GetExpenseByID(ctx, owner.ID, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	return toResponse(e, owner), nil
}

// ListExpenses runs the query engine: raw parameters are parsed into a filter and the owner's
// matching records are returned one page at a time.
func (s *expenseService) ListExpenses(ctx context.Context, owner entity.UserLoginData, query expense.ListExpensesQuery) (*expense.ExpenseListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	filter := expense.ParseListFilter(query.Raw())
	page := query.Pagination()

	expenses, total, err := repo.Expenses.ListExpenses(ctx, owner.ID, filter, page.PageSize, page.Offset())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    owner.ID,
			"page":       page.Page,
			"error":      err.Error(),
		}).Error("Failed to list expenses")
		return nil, err
	}

	items := make([]expense.ExpenseListItem, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, toListItem(e))
	}

	response := expense.NewExpenseListResponse(items, total, page)
	return &response, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, owner entity.UserLoginData, id string, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return expense.ExpenseResponse{}, expense.ErrInvalidDate
	}

	return s.update(ctx, owner, id, func(e *entity.Expense) {
		e.Amount = req.Amount
		e.Description = strings.TrimSpace(req.Description)
		e.CategoryID = req.CategoryID
		e.Date = date
	})
}

func (s *expenseService) PatchExpense(ctx context.Context, owner entity.UserLoginData, id string, req expense.PatchExpenseRequest) (expense.ExpenseResponse, error) {
	var date *time.Time
	if req.Date != nil {
		parsed, err := utils.ParseDate(*req.Date)
		if err != nil {
			return expense.ExpenseResponse{}, expense.ErrInvalidDate
		}
		date = &parsed
	}

	return s.update(ctx, owner, id, func(e *entity.Expense) {
		if req.Amount != nil {
			e.Amount = *req.Amount
		}
		if req.Description != nil {
			e.Description = strings.TrimSpace(*req.Description)
		}
		if req.CategoryID != nil {
			e.CategoryID = *req.CategoryID
		}
		if date != nil {
			e.Date = *date
		}
	})
}

func (s *expenseService) update(ctx context.Context, owner entity.UserLoginData, id string, apply func(e *entity.Expense)) (expense.ExpenseResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return expense.ExpenseResponse{}, err
	}
	defer repo.Rollback()

	e, err := repo.Expenses.GetExpenseByID(ctx, owner.ID, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	previousCategory := e.CategoryID
	apply(&e)
	e.UserID = owner.ID
	e.UpdatedAt = s.utils.Now()

	if err := e.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	if e.CategoryID != previousCategory {
		if err := s.ensureCategoryExists(ctx, e.CategoryID); err != nil {
			return expense.ExpenseResponse{}, err
		}
	}

	if err := repo.Expenses.UpdateExpense(ctx, owner.ID, e); err != nil {
		if errors.Is(err, expense.ErrInvalidCategory) || errors.Is(err, expense.ErrExpenseNotFound) {
			return expense.ExpenseResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to update expense")
		return expense.ExpenseResponse{}, expense.ErrUpdateExpense
	}

	updated, err := repo.Expenses.GetExpenseByID(ctx, owner.ID, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return expense.ExpenseResponse{}, expense.ErrUpdateExpense
	}

	return toResponse(updated, owner), nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, owner entity.UserLoginData, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Expenses.DeleteExpense(ctx, owner.ID, id); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			return err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete expense")
		return expense.ErrDeleteExpense
	}

	return nil
}

func (s *expenseService) ensureCategoryExists(ctx context.Context, id int64) error {
	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		return err
	}

	exists, err := repo.Categories.Exists(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  contextPkg.GetRequestID(ctx),
			"category_id": id,
			"error":       err.Error(),
		}).Error("Failed to check category")
		return err
	}
	if !exists {
		return expense.ErrInvalidCategory
	}

	return nil
}

func toResponse(e entity.Expense, owner entity.UserLoginData) expense.ExpenseResponse {
	return expense.ExpenseResponse{
		ID:          e.ID,
		Amount:      expense.FormatAmount(e.Amount),
		Description: e.Description,
		Category: category.CategoryResponse{
			ID:          e.Category.ID,
			Name:        e.Category.Name,
			Description: e.Category.Description,
			CreatedAt:   e.Category.CreatedAt,
			UpdatedAt:   e.Category.UpdatedAt,
		},
		Date:      utils.FormatDate(e.Date),
		User:      owner.Username,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toListItem(e entity.Expense) expense.ExpenseListItem {
	return expense.ExpenseListItem{
		ID:           e.ID,
		Amount:       expense.FormatAmount(e.Amount),
		Description:  e.Description,
		CategoryName: e.Category.Name,
		Date:         utils.FormatDate(e.Date),
		CreatedAt:    e.CreatedAt,
	}
}
