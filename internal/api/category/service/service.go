package categoryService

import (
	"ExpenseTracker/internal/api/category"
	categoryRepository "ExpenseTracker/internal/api/category/repository"
	"ExpenseTracker/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ICategoryService interface {
	CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (category.CategoryResponse, error)
	GetCategory(ctx context.Context, id int64) (category.CategoryResponse, error)
	ListCategories(ctx context.Context, query category.ListCategoriesQuery) (*category.CategoryListResponse, error)
	UpdateCategory(ctx context.Context, id int64, req category.UpdateCategoryRequest) (category.CategoryResponse, error)
	PatchCategory(ctx context.Context, id int64, req category.PatchCategoryRequest) (category.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryService struct {
	log          *logrus.Logger
	categoryRepo categoryRepository.Repository
	utils        utils.IUtils
}

func NewCategoryService(
	log *logrus.Logger,
	categoryRepo categoryRepository.Repository,
	utils utils.IUtils,
) ICategoryService {
	return &categoryService{
		log:          log,
		categoryRepo: categoryRepo,
		utils:        utils,
	}
}
