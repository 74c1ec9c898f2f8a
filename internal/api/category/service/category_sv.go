package categoryService

import (
	"ExpenseTracker/internal/api/category"
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
)

func (s *categoryService) CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (category.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return category.CategoryResponse{}, err
	}

	now := s.utils.Now()
	c := entity.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.Validate(); err != nil {
		return category.CategoryResponse{}, err
	}

	id, err := repo.Categories.CreateCategory(ctx, c)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNameTaken) {
			return category.CategoryResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create category")
		return category.CategoryResponse{}, category.ErrCreateCategory
	}
	c.ID = id

	return toResponse(c), nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (category.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return category.CategoryResponse{}, err
	}

	c, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return category.CategoryResponse{}, err
	}

	return toResponse(c), nil
}

func (s *categoryService) ListCategories(ctx context.Context, query category.ListCategoriesQuery) (*category.CategoryListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	page := query.Pagination()

	categories, total, err := repo.Categories.ListCategories(ctx, query.Search, query.OrderingOrDefault(), page.PageSize, page.Offset())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"page":       page.Page,
			"page_size":  page.PageSize,
			"error":      err.Error(),
		}).Error("Failed to list categories")
		return nil, err
	}

	items := make([]category.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, toResponse(c))
	}

	response := category.NewCategoryListResponse(items, total, page)
	return &response, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, req category.UpdateCategoryRequest) (category.CategoryResponse, error) {
	return s.update(ctx, id, func(c *entity.Category) {
		c.Name = strings.TrimSpace(req.Name)
		c.Description = req.Description
	})
}

func (s *categoryService) PatchCategory(ctx context.Context, id int64, req category.PatchCategoryRequest) (category.CategoryResponse, error) {
	return s.update(ctx, id, func(c *entity.Category) {
		if req.Name != nil {
			c.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			c.Description = req.Description
		}
	})
}

func (s *categoryService) update(ctx context.Context, id int64, apply func(c *entity.Category)) (category.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return category.CategoryResponse{}, err
	}
	defer repo.Rollback()

	c, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return category.CategoryResponse{}, err
	}

	apply(&c)
	c.UpdatedAt = s.utils.Now()

	if err := c.Validate(); err != nil {
		return category.CategoryResponse{}, err
	}

	if err := repo.Categories.UpdateCategory(ctx, c); err != nil {
		if errors.Is(err, category.ErrCategoryNameTaken) || errors.Is(err, category.ErrCategoryNotFound) {
			return category.CategoryResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to update category")
		return category.CategoryResponse{}, category.ErrUpdateCategory
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return category.CategoryResponse{}, category.ErrUpdateCategory
	}

	return toResponse(c), nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Categories.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, category.ErrCategoryInUse) || errors.Is(err, category.ErrCategoryNotFound) {
			return err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete category")
		return category.ErrDeleteCategory
	}

	return nil
}

func toResponse(c entity.Category) category.CategoryResponse {
	return category.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
