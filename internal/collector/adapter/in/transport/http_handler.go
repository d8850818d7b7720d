// Package transport — HTTP адаптер collector service.
package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"wastehub/internal/collector/application/ports/in"
	"wastehub/internal/collector/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/transport"
	"wastehub/internal/shared/user"
)

const maxBodySize = 1 << 20 // 1 MB

// HTTPHandler — HTTP обработчики collector service
type HTTPHandler struct {
	registerUC     in.RegisterCollectorUseCase
	getUC          in.GetCollectorUseCase
	listUC         in.ListCollectorsUseCase
	updateUC       in.UpdateProfileUseCase
	availabilityUC in.SetAvailabilityUseCase
	byDistrictUC   in.AvailableByDistrictUseCase
	requestsUC     in.CollectorRequestsUseCase
	log            *logger.Logger
}

func NewHTTPHandler(
	registerUC in.RegisterCollectorUseCase,
	getUC in.GetCollectorUseCase,
	listUC in.ListCollectorsUseCase,
	updateUC in.UpdateProfileUseCase,
	availabilityUC in.SetAvailabilityUseCase,
	byDistrictUC in.AvailableByDistrictUseCase,
	requestsUC in.CollectorRequestsUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		registerUC:     registerUC,
		getUC:          getUC,
		listUC:         listUC,
		updateUC:       updateUC,
		availabilityUC: availabilityUC,
		byDistrictUC:   byDistrictUC,
		requestsUC:     requestsUC,
		log:            log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	collectorOrAdmin := transport.RequireRole(model.RoleCollector, model.RoleAdmin)

	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /collectors/register", h.handleRegister)
	mux.HandleFunc("GET /collectors", authMiddleware(h.handleList))
	mux.HandleFunc("GET /collectors/{id}", authMiddleware(h.handleGet))
	mux.HandleFunc("PATCH /collectors/{id}", authMiddleware(collectorOrAdmin(h.handleUpdateProfile)))
	mux.HandleFunc("PUT /collectors/{id}/availability", authMiddleware(collectorOrAdmin(h.handleSetAvailability)))
	mux.HandleFunc("GET /collectors/{id}/requests", authMiddleware(collectorOrAdmin(h.handleRequests)))

	mux.HandleFunc("GET /districts/{id}/collectors/available", authMiddleware(h.handleAvailableByDistrict))
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// RegisterCollectorHTTPRequest — HTTP DTO регистрации сборщика
type RegisterCollectorHTTPRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	DistrictID int64  `json:"district_id"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

// handleRegister обрабатывает POST /collectors/register
func (h *HTTPHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RegisterCollectorHTTPRequest
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

	output, err := h.registerUC.Execute(r.Context(), in.RegisterCollectorInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		DistrictID: req.DistrictID,
		PhotoURL:   req.PhotoURL,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusCreated, output)
}

// handleGet обрабатывает GET /collectors/{id}
func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	collector, err := h.getUC.Execute(r.Context(), in.GetCollectorInput{
		CollectorID: r.PathValue("id"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, collector)
}

// handleList обрабатывает GET /collectors
func (h *HTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := in.ListCollectorsInput{
		AvailableOnly: q.Get("available") == "true",
	}
	if v := q.Get("district_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			transport.RespondError(w, http.StatusBadRequest, "invalid district_id")
			return
		}
		input.DistrictID = id
	}
	if v := q.Get("limit"); v != "" {
		input.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		input.Offset, _ = strconv.Atoi(v)
	}

	output, err := h.listUC.Execute(r.Context(), input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// UpdateProfileHTTPRequest — HTTP DTO частичного обновления профиля
type UpdateProfileHTTPRequest struct {
	DistrictID *int64  `json:"district_id,omitempty"`
	PhotoURL   *string `json:"photo_url,omitempty"`
}

// handleUpdateProfile обрабатывает PATCH /collectors/{id}
func (h *HTTPHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req UpdateProfileHTTPRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	collector, err := h.updateUC.Execute(ctx, in.UpdateProfileInput{
		UserID:      transport.UserID(ctx),
		Role:        transport.UserRole(ctx),
		CollectorID: r.PathValue("id"),
		DistrictID:  req.DistrictID,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, collector)
}

// SetAvailabilityHTTPRequest — HTTP DTO переключения доступности
type SetAvailabilityHTTPRequest struct {
	Available bool `json:"available"`
}

// handleSetAvailability обрабатывает PUT /collectors/{id}/availability
func (h *HTTPHandler) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req SetAvailabilityHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	output, err := h.availabilityUC.Execute(ctx, in.SetAvailabilityInput{
		UserID:      transport.UserID(ctx),
		Role:        transport.UserRole(ctx),
		CollectorID: r.PathValue("id"),
		Available:   req.Available,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// handleRequests обрабатывает GET /collectors/{id}/requests
func (h *HTTPHandler) handleRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	output, err := h.requestsUC.Execute(ctx, in.CollectorRequestsInput{
		UserID:      transport.UserID(ctx),
		Role:        transport.UserRole(ctx),
		CollectorID: r.PathValue("id"),
		Status:      r.URL.Query().Get("status"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// handleAvailableByDistrict обрабатывает GET /districts/{id}/collectors/available
func (h *HTTPHandler) handleAvailableByDistrict(w http.ResponseWriter, r *http.Request) {
	districtID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid district id")
		return
	}

	output, err := h.byDistrictUC.Execute(r.Context(), in.AvailableByDistrictInput{
		DistrictID: districtID,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// handleUseCaseError переводит доменные ошибки в HTTP статусы
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		transport.RespondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, user.ErrEmailTaken):
		transport.RespondError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, domain.ErrForbidden):
		transport.RespondError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrCollectorNotFound):
		transport.RespondError(w, http.StatusNotFound, "collector not found")
	case errors.Is(err, domain.ErrDistrictNotFound):
		transport.RespondError(w, http.StatusNotFound, "district not found")
	case errors.Is(err, domain.ErrValidation):
		transport.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Error(logger.Entry{
			Action:  "collector_handler_error",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
