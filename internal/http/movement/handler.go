package movement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danielrv/finmov/internal/http/middleware"
	"github.com/danielrv/finmov/internal/movement"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Handler struct {
	svc *movement.Service
}

func NewHandler(svc *movement.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/summary", h.summary)
	r.Get("/monthly_report", h.monthlyReport)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.replace)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createMovementRequest struct {
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Category    movement.Category `json:"category"`
	Date        string            `json:"date"`
	Notes       string            `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		respondFieldErrors(w, map[string]string{"date": "must be a valid YYYY-MM-DD date"})
		return
	}

	m, err := h.svc.Create(r.Context(), middleware.OwnerID(r.Context()), movement.CreateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Notes:       req.Notes,
	})
	if err != nil {
		var vErr *movement.ValidationError
		if errors.As(err, &vErr) {
			respondFieldErrors(w, vErr.Fields)
			return
		}

		respondError(w, http.StatusInternalServerError, "internal error")

		return
	}

	respondJSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := movement.ListFilter{OwnerID: middleware.OwnerID(r.Context())}

	if s := r.URL.Query().Get("category"); s != "" {
		c := movement.Category(s)
		filter.Category = &c
	}

	// Malformed date bounds are dropped, not rejected.
	if s := r.URL.Query().Get("date_from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.DateFrom = &t
		}
	}

	if s := r.URL.Query().Get("date_to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.DateTo = &t
		}
	}

	filter.Sort, filter.Order = movement.ParseSort(
		r.URL.Query().Get("sort_field"),
		r.URL.Query().Get("sort_direction"),
	)

	movements, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	page, pageSize := parsePagination(r)
	paged := paginate(movements, page, pageSize)

	respondJSON(w, http.StatusOK, listResponse{
		Count:    len(movements),
		Page:     page,
		PageSize: pageSize,
		Results:  toResponseList(paged),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	m, err := h.svc.Get(r.Context(), middleware.OwnerID(r.Context()), id)
	if err != nil {
		if errors.Is(err, movement.ErrNotFound) {
			respondError(w, http.StatusNotFound, "movement not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "internal error")

		return
	}

	respondJSON(w, http.StatusOK, toResponse(m))
}

type updateMovementRequest struct {
	Description *string            `json:"description,omitempty"`
	Amount      *decimal.Decimal   `json:"amount,omitempty"`
	Category    *movement.Category `json:"category,omitempty"`
	Date        *string            `json:"date,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
}

// replace handles PUT: every writable field is taken from the request body,
// absent ones included, so a partial body fails validation.
func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		respondFieldErrors(w, map[string]string{"date": "must be a valid YYYY-MM-DD date"})
		return
	}

	h.applyUpdate(w, r, movement.UpdateParams{
		Description: &req.Description,
		Amount:      &req.Amount,
		Category:    &req.Category,
		Date:        &date,
		Notes:       &req.Notes,
	})
}

// update handles PATCH: only fields present in the body are touched.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := movement.UpdateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Notes:       req.Notes,
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			respondFieldErrors(w, map[string]string{"date": "must be a valid YYYY-MM-DD date"})
			return
		}

		params.Date = &date
	}

	h.applyUpdate(w, r, params)
}

func (h *Handler) applyUpdate(w http.ResponseWriter, r *http.Request, params movement.UpdateParams) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	m, err := h.svc.Update(r.Context(), middleware.OwnerID(r.Context()), id, params)
	if err != nil {
		if errors.Is(err, movement.ErrNotFound) {
			respondError(w, http.StatusNotFound, "movement not found")
			return
		}

		var vErr *movement.ValidationError
		if errors.As(err, &vErr) {
			respondFieldErrors(w, vErr.Fields)
			return
		}

		respondError(w, http.StatusInternalServerError, "internal error")

		return
	}

	respondJSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), middleware.OwnerID(r.Context()), id); err != nil {
		if errors.Is(err, movement.ErrNotFound) {
			respondError(w, http.StatusNotFound, "movement not found")
			return
		}

		respondError(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	var dateFrom, dateTo *time.Time

	if s := r.URL.Query().Get("date_from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			dateFrom = &t
		}
	}

	if s := r.URL.Query().Get("date_to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			dateTo = &t
		}
	}

	sum, err := h.svc.Summary(r.Context(), middleware.OwnerID(r.Context()), dateFrom, dateTo)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, toSummaryResponse(sum))
}

// monthlyReport is strict about its parameters, unlike the permissive range
// filters on list and summary.
func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	year := now.Year()
	month := int(now.Month())

	var err error

	if s := r.URL.Query().Get("year"); s != "" {
		if year, err = strconv.Atoi(s); err != nil {
			respondError(w, http.StatusBadRequest, "year and month must be valid integers")
			return
		}
	}

	if s := r.URL.Query().Get("month"); s != "" {
		if month, err = strconv.Atoi(s); err != nil {
			respondError(w, http.StatusBadRequest, "year and month must be valid integers")
			return
		}
	}

	report, err := h.svc.MonthlyReport(r.Context(), middleware.OwnerID(r.Context()), year, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, toMonthlyReportResponse(report))
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize

	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		page = n
	}

	if n, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && n > 0 {
		pageSize = min(n, maxPageSize)
	}

	return page, pageSize
}

func paginate(movements []*movement.Movement, page, pageSize int) []*movement.Movement {
	start := (page - 1) * pageSize
	if start >= len(movements) {
		return nil
	}

	return movements[start:min(start+pageSize, len(movements))]
}
