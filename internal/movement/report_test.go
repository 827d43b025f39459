package movement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/danielrv/finmov/internal/movement"
)

func mustDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return t
}

func income(amount, date string) *movement.Movement {
	return &movement.Movement{
		ID:       uuid.New(),
		Amount:   decimal.RequireFromString(amount),
		Category: movement.CategoryIncome,
		Date:     mustDate(date),
	}
}

func expense(amount, date string) *movement.Movement {
	return &movement.Movement{
		ID:       uuid.New(),
		Amount:   decimal.RequireFromString(amount),
		Category: movement.CategoryExpense,
		Date:     mustDate(date),
	}
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	from := mustDate("2024-01-01")
	to := mustDate("2024-01-31")

	repo := movement.NewMockRepository(ctrl)
	repo.EXPECT().
		ListMovements(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter movement.ListFilter) ([]*movement.Movement, error) {
			assert.Equal(t, ownerID, filter.OwnerID)
			require.NotNil(t, filter.DateFrom)
			require.NotNil(t, filter.DateTo)
			assert.Equal(t, from, *filter.DateFrom)
			assert.Equal(t, to, *filter.DateTo)

			return []*movement.Movement{
				income("3000.00", "2024-01-15"),
				expense("150.50", "2024-01-16"),
				income("10.25", "2024-01-20"),
			}, nil
		})

	svc := movement.NewService(repo)

	sum, err := svc.Summary(context.Background(), ownerID, &from, &to)
	require.NoError(t, err)

	assert.Equal(t, "3010.25", sum.TotalIncome.StringFixed(2))
	assert.Equal(t, "150.50", sum.TotalExpense.StringFixed(2))
	assert.Equal(t, "2859.75", sum.Balance.StringFixed(2))
	assert.Equal(t, 3, sum.TotalCount)
	assert.Equal(t, 2, sum.IncomeCount)
	assert.Equal(t, 1, sum.ExpenseCount)
	require.NotNil(t, sum.DateFrom)
	require.NotNil(t, sum.DateTo)
	assert.Equal(t, from, *sum.DateFrom)
	assert.Equal(t, to, *sum.DateTo)
}

func TestService_Summary_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := movement.NewMockRepository(ctrl)
	repo.EXPECT().
		ListMovements(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	svc := movement.NewService(repo)

	sum, err := svc.Summary(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "0.00", sum.TotalIncome.StringFixed(2))
	assert.Equal(t, "0.00", sum.TotalExpense.StringFixed(2))
	assert.Equal(t, "0.00", sum.Balance.StringFixed(2))
	assert.Equal(t, 0, sum.TotalCount)
	assert.Nil(t, sum.DateFrom)
	assert.Nil(t, sum.DateTo)
}

func TestService_MonthlyReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()

	// Two movements share an amount; the earlier one in listing order must
	// come first among the top movements.
	first := income("500.00", "2024-01-03")
	second := expense("500.00", "2024-01-04")

	repo := movement.NewMockRepository(ctrl)
	repo.EXPECT().
		ListMovements(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter movement.ListFilter) ([]*movement.Movement, error) {
			require.NotNil(t, filter.DateFrom)
			require.NotNil(t, filter.DateTo)
			assert.Equal(t, mustDate("2024-01-01"), *filter.DateFrom)
			assert.Equal(t, mustDate("2024-01-31"), *filter.DateTo)

			return []*movement.Movement{
				income("3000.00", "2024-01-01"),
				expense("42.10", "2024-01-02"),
				first,
				second,
				expense("12.00", "2024-01-05"),
				income("800.00", "2024-01-06"),
				expense("9.99", "2024-01-07"),
			}, nil
		})

	svc := movement.NewService(repo)

	report, err := svc.MonthlyReport(context.Background(), ownerID, 2024, 1)
	require.NoError(t, err)

	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 1, report.Month)
	assert.Equal(t, "4300.00", report.TotalIncome.StringFixed(2))
	assert.Equal(t, "564.09", report.TotalExpense.StringFixed(2))
	assert.Equal(t, "3735.91", report.Balance.StringFixed(2))
	assert.Equal(t, 7, report.TotalCount)

	require.Len(t, report.TopMovements, 5)

	amounts := make([]string, len(report.TopMovements))
	for i, m := range report.TopMovements {
		amounts[i] = m.Amount.StringFixed(2)
	}

	assert.Equal(t, []string{"3000.00", "800.00", "500.00", "500.00", "42.10"}, amounts)
	assert.Equal(t, first.ID, report.TopMovements[2].ID)
	assert.Equal(t, second.ID, report.TopMovements[3].ID)
}

func TestService_MonthlyReport_FewerThanFive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := movement.NewMockRepository(ctrl)
	repo.EXPECT().
		ListMovements(gomock.Any(), gomock.Any()).
		Return([]*movement.Movement{
			income("100.00", "2024-02-01"),
			expense("20.00", "2024-02-02"),
		}, nil)

	svc := movement.NewService(repo)

	report, err := svc.MonthlyReport(context.Background(), uuid.New(), 2024, 2)
	require.NoError(t, err)

	assert.Len(t, report.TopMovements, 2)
	assert.Equal(t, "80.00", report.Balance.StringFixed(2))
}

func TestService_MonthlyReport_MonthOutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No ListMovements expectation: the repository must not be queried.
	repo := movement.NewMockRepository(ctrl)
	svc := movement.NewService(repo)

	report, err := svc.MonthlyReport(context.Background(), uuid.New(), 2024, 13)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalCount)
	assert.Equal(t, "0.00", report.Balance.StringFixed(2))
	assert.Empty(t, report.TopMovements)
}

func TestService_MonthlyReport_DecemberWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := movement.NewMockRepository(ctrl)
	repo.EXPECT().
		ListMovements(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter movement.ListFilter) ([]*movement.Movement, error) {
			assert.Equal(t, mustDate("2023-12-01"), *filter.DateFrom)
			assert.Equal(t, mustDate("2023-12-31"), *filter.DateTo)
			return nil, nil
		})

	svc := movement.NewService(repo)

	_, err := svc.MonthlyReport(context.Background(), uuid.New(), 2023, 12)
	require.NoError(t, err)
}
