package expenseService

import (
	categoryRepository "ExpenseTracker/internal/api/category/repository"
	"ExpenseTracker/internal/api/expense"
	expenseRepository "ExpenseTracker/internal/api/expense/repository"
	"ExpenseTracker/internal/entity"
	"ExpenseTracker/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// IExpenseService manages the expenses of one principal at a time. The principal is always passed
// explicitly and every lookup is restricted to its records.
type IExpenseService interface {
	CreateExpense(ctx context.Context, owner entity.UserLoginData, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error)
	GetExpense(ctx context.Context, owner entity.UserLoginData, id string) (expense.ExpenseResponse, error)
	ListExpenses(ctx context.Context, owner entity.UserLoginData, query expense.ListExpensesQuery) (*expense.ExpenseListResponse, error)
	UpdateExpense(ctx context.Context, owner entity.UserLoginData, id string, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error)
	PatchExpense(ctx context.Context, owner entity.UserLoginData, id string, req expense.PatchExpenseRequest) (expense.ExpenseResponse, error)
	DeleteExpense(ctx context.Context, owner entity.UserLoginData, id string) error
}

type expenseService struct {
	log          *logrus.Logger
	expenseRepo  expenseRepository.Repository
	categoryRepo categoryRepository.Repository
	utils        utils.IUtils
}

func NewExpenseService(
	log *logrus.Logger,
	expenseRepo expenseRepository.Repository,
	categoryRepo categoryRepository.Repository,
	utils utils.IUtils,
) IExpenseService {
	return &expenseService{
		log:          log,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		utils:        utils,
	}
}
