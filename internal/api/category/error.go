package category

import (
	"ExpenseTracker/pkg/response"
	"net/http"
)

var (
	ErrCategoryNotFound    = response.NewError(http.StatusNotFound, "category not found")
	ErrCategoryNameTaken   = response.NewError(http.StatusConflict, "category with this name already exists")
	ErrCategoryInUse       = response.NewError(http.StatusConflict, "category is referenced by expenses and cannot be deleted")
	ErrInvalidCategoryName = response.NewError(http.StatusBadRequest, "category name is required and must be at most 100 characters")
	ErrCreateCategory      = response.NewError(http.StatusInternalServerError, "failed to create category")
	ErrUpdateCategory      = response.NewError(http.StatusInternalServerError, "failed to update category")
	ErrDeleteCategory      = response.NewError(http.StatusInternalServerError, "failed to delete category")
)
