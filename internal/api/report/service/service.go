package reportService

import (
	expenseRepository "ExpenseTracker/internal/api/expense/repository"
	"ExpenseTracker/internal/api/report"
	"ExpenseTracker/internal/entity"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IReportService interface {
	Summary(ctx context.Context, owner entity.UserLoginData, query report.SummaryQuery) (report.SummaryResponse, error)
}

type reportService struct {
	log         *logrus.Logger
	expenseRepo expenseRepository.Repository
}

func NewReportService(log *logrus.Logger, expenseRepo expenseRepository.Repository) IReportService {
	return &reportService{
		log:         log,
		expenseRepo: expenseRepo,
	}
}
