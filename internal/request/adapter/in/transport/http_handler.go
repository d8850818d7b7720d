package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"wastehub/internal/model"
	"wastehub/internal/request/application/ports/in"
	"wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/transport"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler обрабатывает HTTP запросы для Request Service
type HTTPHandler struct {
	createUC      in.CreateRequestUseCase
	getUC         in.GetRequestUseCase
	listUC        in.ListRequestsUseCase
	updateUC      in.UpdateRequestUseCase
	statusUC      in.UpdateStatusUseCase
	cancelUC      in.CancelRequestUseCase
	deleteUC      in.DeleteRequestUseCase
	getRecUC      in.GetRecurrenceUseCase
	listRecUC     in.ListRecurrencesUseCase
	toggleRecUC   in.ToggleRecurrenceUseCase
	upcomingRecUC in.UpcomingCollectionsUseCase
	log           *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	createUC in.CreateRequestUseCase,
	getUC in.GetRequestUseCase,
	listUC in.ListRequestsUseCase,
	updateUC in.UpdateRequestUseCase,
	statusUC in.UpdateStatusUseCase,
	cancelUC in.CancelRequestUseCase,
	deleteUC in.DeleteRequestUseCase,
	getRecUC in.GetRecurrenceUseCase,
	listRecUC in.ListRecurrencesUseCase,
	toggleRecUC in.ToggleRecurrenceUseCase,
	upcomingRecUC in.UpcomingCollectionsUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		createUC:      createUC,
		getUC:         getUC,
		listUC:        listUC,
		updateUC:      updateUC,
		statusUC:      statusUC,
		cancelUC:      cancelUC,
		deleteUC:      deleteUC,
		getRecUC:      getRecUC,
		listRecUC:     listRecUC,
		toggleRecUC:   toggleRecUC,
		upcomingRecUC: upcomingRecUC,
		log:           log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	clientOnly := transport.RequireRole(model.RoleClient)
	collectorOnly := transport.RequireRole(model.RoleCollector)

	// liveness
	mux.HandleFunc("GET /health", h.handleHealth)

	// collection requests
	mux.HandleFunc("POST /requests", authMiddleware(clientOnly(h.handleCreate)))
	mux.HandleFunc("GET /requests", authMiddleware(h.handleList))
	mux.HandleFunc("GET /requests/{id}", authMiddleware(h.handleGet))
	mux.HandleFunc("PATCH /requests/{id}", authMiddleware(clientOnly(h.handleUpdate)))
	mux.HandleFunc("PUT /requests/{id}/status", authMiddleware(collectorOnly(h.handleUpdateStatus)))
	mux.HandleFunc("PUT /requests/{id}/cancel", authMiddleware(clientOnly(h.handleCancel)))
	mux.HandleFunc("DELETE /requests/{id}", authMiddleware(h.handleDelete))

	// recurring collections
	mux.HandleFunc("GET /recurrences", authMiddleware(clientOnly(h.handleListRecurrences)))
	mux.HandleFunc("GET /recurrences/upcoming", authMiddleware(clientOnly(h.handleUpcoming)))
	mux.HandleFunc("GET /recurrences/{id}", authMiddleware(clientOnly(h.handleGetRecurrence)))
	mux.HandleFunc("PUT /recurrences/{id}/toggle", authMiddleware(clientOnly(h.handleToggleRecurrence)))
}

// handleHealth обрабатывает health check
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// CreateRequestHTTPRequest — HTTP DTO для создания заявки
type CreateRequestHTTPRequest struct {
	WasteTypeID    int64               `json:"waste_type_id"`
	DistrictID     int64               `json:"district_id,omitempty"`
	TimeSlotID     int64               `json:"time_slot_id"`
	CollectionType string              `json:"collection_type"`
	Notes          string              `json:"notes,omitempty"`
	Dates          []string            `json:"dates,omitempty"` // YYYY-MM-DD
	Recurrence     *RecurrenceHTTPBody `json:"recurrence,omitempty"`
}

// RecurrenceHTTPBody — HTTP DTO правила повторения
type RecurrenceHTTPBody struct {
	Frequency  string  `json:"frequency"`
	DayOfWeek  *int    `json:"day_of_week,omitempty"`
	DayOfMonth *int    `json:"day_of_month,omitempty"`
	StartDate  string  `json:"start_date"`         // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"` // YYYY-MM-DD
}

// handleCreate обрабатывает POST /requests
func (h *HTTPHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req CreateRequestHTTPRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			transport.RespondError(w, http.StatusBadRequest, "empty request body")
			return
		}
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		transport.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := in.CreateRequestInput{
		UserID:         transport.UserID(ctx),
		WasteTypeID:    req.WasteTypeID,
		DistrictID:     req.DistrictID,
		TimeSlotID:     req.TimeSlotID,
		CollectionType: req.CollectionType,
		Notes:          req.Notes,
		Dates:          dates,
	}

	if req.Recurrence != nil {
		rec, err := parseRecurrence(req.Recurrence)
		if err != nil {
			transport.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		input.Recurrence = rec
	}

	output, err := h.createUC.Execute(ctx, input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusCreated, output)
}

// handleList обрабатывает GET /requests
func (h *HTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	districtID, _ := strconv.ParseInt(q.Get("district_id"), 10, 64)
	cityID, _ := strconv.ParseInt(q.Get("city_id"), 10, 64)
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	var date time.Time
	if raw := q.Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			transport.RespondError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	input := in.ListRequestsInput{
		UserID:     transport.UserID(ctx),
		Role:       transport.UserRole(ctx),
		Status:     q.Get("status"),
		Type:       q.Get("type"),
		DistrictID: districtID,
		CityID:     cityID,
		Date:       date,
		Limit:      limit,
		Offset:     offset,
	}

	output, err := h.listUC.Execute(ctx, input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// handleGet обрабатывает GET /requests/{id}
func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.getUC.Execute(ctx, in.GetRequestInput{
		UserID:    transport.UserID(ctx),
		Role:      transport.UserRole(ctx),
		RequestID: r.PathValue("id"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, view)
}

// UpdateRequestHTTPRequest — HTTP DTO для редактирования заявки
type UpdateRequestHTTPRequest struct {
	WasteTypeID int64  `json:"waste_type_id,omitempty"`
	DistrictID  int64  `json:"district_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// handleUpdate обрабатывает PATCH /requests/{id}
func (h *HTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req UpdateRequestHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	view, err := h.updateUC.Execute(ctx, in.UpdateRequestInput{
		UserID:      transport.UserID(ctx),
		RequestID:   r.PathValue("id"),
		WasteTypeID: req.WasteTypeID,
		DistrictID:  req.DistrictID,
		Notes:       req.Notes,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, view)
}

// UpdateStatusHTTPRequest — HTTP DTO для перехода статуса
type UpdateStatusHTTPRequest struct {
	Status string `json:"status"`
}

// handleUpdateStatus обрабатывает PUT /requests/{id}/status
func (h *HTTPHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req UpdateStatusHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	if req.Status == "" {
		transport.RespondError(w, http.StatusBadRequest, "status is required")
		return
	}

	output, err := h.statusUC.Execute(ctx, in.UpdateStatusInput{
		UserID:    transport.UserID(ctx),
		RequestID: r.PathValue("id"),
		NewStatus: req.Status,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// handleCancel обрабатывает PUT /requests/{id}/cancel
func (h *HTTPHandler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	output, err := h.cancelUC.Execute(ctx, in.CancelRequestInput{
		UserID:    transport.UserID(ctx),
		RequestID: r.PathValue("id"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// handleDelete обрабатывает DELETE /requests/{id}
func (h *HTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.deleteUC.Execute(ctx, in.DeleteRequestInput{
		UserID:    transport.UserID(ctx),
		Role:      transport.UserRole(ctx),
		RequestID: r.PathValue("id"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListRecurrences обрабатывает GET /recurrences
func (h *HTTPHandler) handleListRecurrences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := h.listRecUC.Execute(ctx, in.ListRecurrencesInput{UserID: transport.UserID(ctx)})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, map[string]any{"recurrences": views})
}

// handleGetRecurrence обрабатывает GET /recurrences/{id}
// {id} — идентификатор заявки, правило с ней 1:1
func (h *HTTPHandler) handleGetRecurrence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.getRecUC.Execute(ctx, in.GetRecurrenceInput{
		UserID:    transport.UserID(ctx),
		RequestID: r.PathValue("id"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, view)
}

// ToggleRecurrenceHTTPRequest — HTTP DTO переключения правила
type ToggleRecurrenceHTTPRequest struct {
	Active bool `json:"active"`
}

// handleToggleRecurrence обрабатывает PUT /recurrences/{id}/toggle
func (h *HTTPHandler) handleToggleRecurrence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req ToggleRecurrenceHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	view, err := h.toggleRecUC.Execute(ctx, in.ToggleRecurrenceInput{
		UserID:    transport.UserID(ctx),
		RequestID: r.PathValue("id"),
		Active:    req.Active,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, view)
}

// handleUpcoming обрабатывает GET /recurrences/upcoming
func (h *HTTPHandler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	upcoming, err := h.upcomingRecUC.Execute(ctx, in.UpcomingCollectionsInput{
		UserID: transport.UserID(ctx),
		Days:   days,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, map[string]any{"upcoming": upcoming})
}

// handleUseCaseError маппит доменные ошибки в HTTP коды
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		transport.RespondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, domain.ErrValidation):
		transport.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrProfileNotFound):
		transport.RespondError(w, http.StatusBadRequest, "profile not found")
	case errors.Is(err, domain.ErrForbidden):
		transport.RespondError(w, http.StatusForbidden, "operation forbidden")
	case errors.Is(err, domain.ErrInvalidTransition):
		transport.RespondError(w, http.StatusConflict, "invalid status transition")
	case errors.Is(err, domain.ErrCollectorUnavailable):
		transport.RespondError(w, http.StatusConflict, "collector is not available")
	case errors.Is(err, domain.ErrConflict):
		transport.RespondError(w, http.StatusConflict, "request state conflict")
	case errors.Is(err, domain.ErrRequestNotFound):
		transport.RespondError(w, http.StatusNotFound, "request not found")
	default:
		h.log.Error(logger.Entry{
			Action:  "usecase_error",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseDates разбирает даты формата YYYY-MM-DD
func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		date, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, errors.New("dates must be in YYYY-MM-DD format")
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// parseRecurrence разбирает правило повторения
func parseRecurrence(body *RecurrenceHTTPBody) (*in.RecurrenceInput, error) {
	start, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		return nil, errors.New("recurrence.start_date must be in YYYY-MM-DD format")
	}

	rec := &in.RecurrenceInput{
		Frequency:  body.Frequency,
		DayOfWeek:  body.DayOfWeek,
		DayOfMonth: body.DayOfMonth,
		StartDate:  start,
	}

	if body.EndDate != nil {
		end, err := time.Parse("2006-01-02", *body.EndDate)
		if err != nil {
			return nil, errors.New("recurrence.end_date must be in YYYY-MM-DD format")
		}
		rec.EndDate = &end
	}

	return rec, nil
}
