// Package transport — HTTP адаптер admin service.
package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"wastehub/internal/admin/application/ports/in"
	"wastehub/internal/admin/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/transport"
	"wastehub/internal/shared/user"
)

const maxBodySize = 1 << 20 // 1 MB

// HTTPHandler — HTTP обработчики admin service
type HTTPHandler struct {
	createUserUC   in.CreateUserUseCase
	listUsersUC    in.ListUsersUseCase
	updateStatusUC in.UpdateUserStatusUseCase
	overviewUC     in.GetOverviewUseCase
	log            *logger.Logger
}

func NewHTTPHandler(
	createUserUC in.CreateUserUseCase,
	listUsersUC in.ListUsersUseCase,
	updateStatusUC in.UpdateUserStatusUseCase,
	overviewUC in.GetOverviewUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		createUserUC:   createUserUC,
		listUsersUC:    listUsersUC,
		updateStatusUC: updateStatusUC,
		overviewUC:     overviewUC,
		log:            log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты; все операции только
// для роли ADMIN
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	adminOnly := transport.RequireRole(model.RoleAdmin)

	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /admin/users", authMiddleware(adminOnly(h.handleCreateUser)))
	mux.HandleFunc("GET /admin/users", authMiddleware(adminOnly(h.handleListUsers)))
	mux.HandleFunc("PATCH /admin/users/{id}/status", authMiddleware(adminOnly(h.handleUpdateUserStatus)))
	mux.HandleFunc("GET /admin/overview", authMiddleware(adminOnly(h.handleOverview)))
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// CreateUserHTTPRequest — HTTP DTO создания пользователя
type CreateUserHTTPRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status,omitempty"`
	DistrictID int64  `json:"district_id,omitempty"`
}

// handleCreateUser обрабатывает POST /admin/users
func (h *HTTPHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req CreateUserHTTPRequest
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

	output, err := h.createUserUC.Execute(r.Context(), in.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Role:       req.Role,
		Status:     req.Status,
		DistrictID: req.DistrictID,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusCreated, output)
}

// handleListUsers обрабатывает GET /admin/users
func (h *HTTPHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := in.ListUsersInput{
		Role:   q.Get("role"),
		Status: q.Get("status"),
	}
	if v := q.Get("limit"); v != "" {
		input.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		input.Offset, _ = strconv.Atoi(v)
	}

	output, err := h.listUsersUC.Execute(r.Context(), input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// UpdateUserStatusHTTPRequest — HTTP DTO смены статуса
type UpdateUserStatusHTTPRequest struct {
	Status string `json:"status"`
}

// handleUpdateUserStatus обрабатывает PATCH /admin/users/{id}/status
func (h *HTTPHandler) handleUpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req UpdateUserStatusHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	summary, err := h.updateStatusUC.Execute(r.Context(), in.UpdateUserStatusInput{
		UserID: r.PathValue("id"),
		Status: req.Status,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, summary)
}

// handleOverview обрабатывает GET /admin/overview
func (h *HTTPHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	output, err := h.overviewUC.Execute(r.Context(), in.GetOverviewInput{})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, output)
}

// handleUseCaseError переводит доменные ошибки в HTTP статусы
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrDistrictRequired):
		transport.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		transport.RespondError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, domain.ErrUserNotFound):
		transport.RespondError(w, http.StatusNotFound, "user not found")
	default:
		h.log.Error(logger.Entry{
			Action:  "admin_handler_error",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
