package reportService

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"ExpenseTracker/internal/api/expense"
	expenseRepository "ExpenseTracker/internal/api/expense/repository"
	"ExpenseTracker/internal/api/report"
	"ExpenseTracker/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpenses struct {
	rows       []entity.Expense
	lastOwner  string
	lastFilter expense.Filter
	err        error
}

func (f *fakeExpenses) CreateExpense(context.Context, entity.Expense) error {
	return errors.New("not used")
}

func (f *fakeExpenses) GetExpenseByID(context.Context, string, string) (entity.Expense, error) {
	return entity.Expense{}, expense.ErrExpenseNotFound
}

func (f *fakeExpenses) ListExpenses(context.Context, string, expense.Filter, int, int) ([]entity.Expense, int, error) {
	return nil, 0, errors.New("not used")
}

func (f *fakeExpenses) FindExpenses(_ context.Context, ownerID string, filter expense.Filter) ([]entity.Expense, error) {
	f.lastOwner, f.lastFilter = ownerID, filter
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Expense
	for _, e := range f.rows {
		if e.UserID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenses) UpdateExpense(context.Context, string, entity.Expense) error {
	return errors.New("not used")
}

func (f *fakeExpenses) DeleteExpense(context.Context, string, string) error {
	return errors.New("not used")
}

type fakeRepository struct {
	store *fakeExpenses
}

func (r *fakeRepository) NewClient(bool) (expenseRepository.Client, error) {
	return expenseRepository.Client{
		Expenses: r.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func ptr(s string) *string {
	return &s
}

func seeded() *fakeExpenses {
	food := entity.Category{ID: 1, Name: "Food"}
	transport := entity.Category{ID: 2, Name: "Transport"}
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	return &fakeExpenses{rows: []entity.Expense{
		{ID: "a1", UserID: "owner-a", Amount: decimal.RequireFromString("100"), CategoryID: 1, Category: food, Date: today},
		{ID: "a2", UserID: "owner-a", Amount: decimal.RequireFromString("50"), CategoryID: 2, Category: transport, Date: today.AddDate(0, 0, -1)},
		{ID: "b1", UserID: "owner-b", Amount: decimal.RequireFromString("200"), CategoryID: 1, Category: food, Date: today},
	}}
}

func newService(store *fakeExpenses) IReportService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewReportService(logger, &fakeRepository{store: store})
}

func TestSummaryIsScopedToOwner(t *testing.T) {
	store := seeded()
	svc := newService(store)

	res, err := svc.Summary(context.Background(), entity.UserLoginData{ID: "owner-a"}, report.SummaryQuery{})
	require.NoError(t, err)

	assert.Equal(t, "owner-a", store.lastOwner)
	assert.Equal(t, "150.00", res.TotalAmount)
	assert.Equal(t, 2, res.TotalCount)
	require.Len(t, res.CategoryTotals, 2)
	assert.Equal(t, "Food", res.CategoryTotals[0].CategoryName)
	assert.Equal(t, "100.00", res.CategoryTotals[0].Total)
	assert.Equal(t, "Transport", res.CategoryTotals[1].CategoryName)
	assert.Nil(t, res.AverageDaily)
}

func TestSummaryUsesDescriptionOnlyFilter(t *testing.T) {
	store := seeded()
	svc := newService(store)

	_, err := svc.Summary(context.Background(), entity.UserLoginData{ID: "owner-a"}, report.SummaryQuery{
		Category:    ptr("2,x"),
		DateFrom:    ptr("2024-03-09"),
		DateTo:      ptr("2024-03-10"),
		Description: ptr("taxi"),
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{2}, store.lastFilter.CategoryIDs)
	assert.Equal(t, "taxi", store.lastFilter.Text)
	assert.Equal(t, expense.TextScopeDescription, store.lastFilter.TextScope)
	require.NotNil(t, store.lastFilter.DateFrom)
	assert.Equal(t, 9, store.lastFilter.DateFrom.Day())
}

func TestSummaryStoreFailure(t *testing.T) {
	store := seeded()
	store.err = errors.New("connection refused")

	_, err := newService(store).Summary(context.Background(), entity.UserLoginData{ID: "owner-a"}, report.SummaryQuery{})
	assert.Error(t, err)
}
