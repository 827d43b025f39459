package movement

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danielrv/finmov/internal/movement"
)

// jsonAmount serializes a decimal as a bare JSON number with exactly two
// decimal places. Decimal stays the internal representation everywhere else.
type jsonAmount decimal.Decimal

func (a jsonAmount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

type movementResponse struct {
	ID          uuid.UUID         `json:"id"`
	Description string            `json:"description"`
	Amount      jsonAmount        `json:"amount"`
	Category    movement.Category `json:"category"`
	Date        string            `json:"date"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toResponse(m *movement.Movement) movementResponse {
	return movementResponse{
		ID:          m.ID,
		Description: m.Description,
		Amount:      jsonAmount(m.Amount),
		Category:    m.Category,
		Date:        m.Date.Format(time.DateOnly),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toResponseList(movements []*movement.Movement) []movementResponse {
	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = toResponse(m)
	}

	return resp
}

type listResponse struct {
	Count    int                `json:"count"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Results  []movementResponse `json:"results"`
}

type summaryResponse struct {
	TotalIncome      jsonAmount `json:"total_income"`
	TotalExpense     jsonAmount `json:"total_expense"`
	Balance          jsonAmount `json:"balance"`
	TotalMovements   int        `json:"total_movements"`
	IncomeMovements  int        `json:"income_movements"`
	ExpenseMovements int        `json:"expense_movements"`
	DateFrom         *string    `json:"date_from"`
	DateTo           *string    `json:"date_to"`
}

func toSummaryResponse(sum *movement.Summary) summaryResponse {
	return summaryResponse{
		TotalIncome:      jsonAmount(sum.TotalIncome),
		TotalExpense:     jsonAmount(sum.TotalExpense),
		Balance:          jsonAmount(sum.Balance),
		TotalMovements:   sum.TotalCount,
		IncomeMovements:  sum.IncomeCount,
		ExpenseMovements: sum.ExpenseCount,
		DateFrom:         formatDate(sum.DateFrom),
		DateTo:           formatDate(sum.DateTo),
	}
}

type monthlyReportResponse struct {
	Year           int                `json:"year"`
	Month          int                `json:"month"`
	TotalIncome    jsonAmount         `json:"total_income"`
	TotalExpense   jsonAmount         `json:"total_expense"`
	Balance        jsonAmount         `json:"balance"`
	TotalMovements int                `json:"total_movements"`
	TopMovements   []movementResponse `json:"top_movements"`
}

func toMonthlyReportResponse(report *movement.MonthlyReport) monthlyReportResponse {
	return monthlyReportResponse{
		Year:           report.Year,
		Month:          report.Month,
		TotalIncome:    jsonAmount(report.TotalIncome),
		TotalExpense:   jsonAmount(report.TotalExpense),
		Balance:        jsonAmount(report.Balance),
		TotalMovements: report.TotalCount,
		TopMovements:   toResponseList(report.TopMovements),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format(time.DateOnly)

	return &s
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func respondFieldErrors(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
}
