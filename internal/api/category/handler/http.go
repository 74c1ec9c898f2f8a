package categoryHandler

import (
	categoryService "ExpenseTracker/internal/api/category/service"
	"ExpenseTracker/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	categoryService categoryService.ICategoryService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs categoryService.ICategoryService) *CategoryHandler {
	return &CategoryHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		categoryService: cs,
	}
}

func (h *CategoryHandler) Start(srv fiber.Router) {
	categories := srv.Group("/categories", h.middleware.NewTokenMiddleware)
	categories.Get("", h.HandleListCategories)
	categories.Post("", h.HandleCreateCategory)
	categories.Get("/:id", h.HandleGetCategory)
	categories.Put("/:id", h.HandleUpdateCategory)
	categories.Patch("/:id", h.HandlePatchCategory)
	categories.Delete("/:id", h.HandleDeleteCategory)
}
