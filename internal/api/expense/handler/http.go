package expenseHandler

import (
	expenseService "ExpenseTracker/internal/api/expense/service"
	"ExpenseTracker/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExpenseHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	expenseService expenseService.IExpenseService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	es expenseService.IExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		expenseService: es,
	}
}

func (h *ExpenseHandler) Start(srv fiber.Router) {
	expenses := srv.Group("/expenses", h.middleware.NewTokenMiddleware)
	expenses.Get("", h.HandleListExpenses)
	expenses.Post("", h.HandleCreateExpense)
	expenses.Get("/:id", h.HandleGetExpense)
	expenses.Put("/:id", h.HandleUpdateExpense)
	expenses.Patch("/:id", h.HandlePatchExpense)
	expenses.Delete("/:id", h.HandleDeleteExpense)
}
