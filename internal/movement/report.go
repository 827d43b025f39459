package movement

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// topMovementsLimit caps the highest-amount rows returned in a monthly report.
const topMovementsLimit = 5

// Summary aggregates an owner's movements over an optional inclusive date
// range. DateFrom/DateTo echo the effective bounds back to the caller.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	TotalCount   int
	IncomeCount  int
	ExpenseCount int
	DateFrom     *time.Time
	DateTo       *time.Time
}

func (s *Service) Summary(ctx context.Context, ownerID uuid.UUID, dateFrom, dateTo *time.Time) (*Summary, error) {
	movements, err := s.repo.ListMovements(ctx, ListFilter{
		OwnerID:  ownerID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		DateFrom:     dateFrom,
		DateTo:       dateTo,
	}

	for _, m := range movements {
		switch m.Category {
		case CategoryIncome:
			sum.TotalIncome = sum.TotalIncome.Add(m.Amount)
			sum.IncomeCount++
		case CategoryExpense:
			sum.TotalExpense = sum.TotalExpense.Add(m.Amount)
			sum.ExpenseCount++
		}
	}

	sum.TotalCount = len(movements)
	sum.Balance = sum.TotalIncome.Sub(sum.TotalExpense)

	return sum, nil
}

// MonthlyReport restricts the summary figures to one calendar month and adds
// the top movements by amount.
type MonthlyReport struct {
	Year         int
	Month        int
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	TotalCount   int
	TopMovements []*Movement
}

func (s *Service) MonthlyReport(ctx context.Context, ownerID uuid.UUID, year, month int) (*MonthlyReport, error) {
	report := &MonthlyReport{
		Year:         year,
		Month:        month,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Balance:      decimal.Zero,
	}

	// A month outside 1..12 can never match a stored date. time.Date would
	// normalize it into a neighboring year, so bail out before building the
	// window.
	if month < 1 || month > 12 {
		return report, nil
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	movements, err := s.repo.ListMovements(ctx, ListFilter{
		OwnerID:  ownerID,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, err
	}

	for _, m := range movements {
		switch m.Category {
		case CategoryIncome:
			report.TotalIncome = report.TotalIncome.Add(m.Amount)
		case CategoryExpense:
			report.TotalExpense = report.TotalExpense.Add(m.Amount)
		}
	}

	report.TotalCount = len(movements)
	report.Balance = report.TotalIncome.Sub(report.TotalExpense)

	top := make([]*Movement, len(movements))
	copy(top, movements)

	// Stable, so equal amounts keep their listing order.
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Amount.GreaterThan(top[j].Amount)
	})

	if len(top) > topMovementsLimit {
		top = top[:topMovementsLimit]
	}

	report.TopMovements = top

	return report, nil
}
