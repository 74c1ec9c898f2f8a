package reportService

import (
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/internal/api/report"
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Summary aggregates the owner's expenses matching the summary filter. Text matches the
// description only, unlike the list endpoint.
func (s *reportService) Summary(ctx context.Context, owner entity.UserLoginData, query report.SummaryQuery) (report.SummaryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return report.SummaryResponse{}, err
	}

	raw := query.Raw()
	expenses, err := repo.Expenses.FindExpenses(ctx, owner.ID, expense.ParseSummaryFilter(raw))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    owner.ID,
			"error":      err.Error(),
		}).Error("Failed to load expenses for summary")
		return report.SummaryResponse{}, err
	}

	summary := report.Summarize(expenses, raw)

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"user_id":     owner.ID,
		"total_count": summary.TotalCount,
	}).Debug("Summary computed")

	return summary.Response(), nil
}
