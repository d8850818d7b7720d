package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/transport"
)

// HTTPHandler отдает справочные данные, доступен без аутентификации
type HTTPHandler struct {
	repo Repository
	log  *logger.Logger
}

// NewHTTPHandler создает новый handler справочников
func NewHTTPHandler(repo Repository, log *logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		repo: repo,
		log:  log,
	}
}

// RegisterRoutes регистрирует маршруты справочников
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /cities", h.handleCities)
	mux.HandleFunc("GET /cities/{id}/districts", h.handleDistricts)
	mux.HandleFunc("GET /waste-types", h.handleWasteTypes)
	mux.HandleFunc("GET /time-slots", h.handleTimeSlots)
}

func (h *HTTPHandler) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.repo.ListCities(r.Context())
	if err != nil {
		h.respondInternal(w, err)
		return
	}
	transport.RespondJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

func (h *HTTPHandler) handleDistricts(w http.ResponseWriter, r *http.Request) {
	cityID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid city id")
		return
	}

	districts, err := h.repo.ListDistricts(r.Context(), cityID)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			transport.RespondError(w, http.StatusNotFound, "city not found")
			return
		}
		h.respondInternal(w, err)
		return
	}
	transport.RespondJSON(w, http.StatusOK, map[string]any{"districts": districts})
}

func (h *HTTPHandler) handleWasteTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.ListWasteTypes(r.Context())
	if err != nil {
		h.respondInternal(w, err)
		return
	}
	transport.RespondJSON(w, http.StatusOK, map[string]any{"waste_types": types})
}

func (h *HTTPHandler) handleTimeSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.repo.ListTimeSlots(r.Context())
	if err != nil {
		h.respondInternal(w, err)
		return
	}
	transport.RespondJSON(w, http.StatusOK, map[string]any{"time_slots": slots})
}

func (h *HTTPHandler) respondInternal(w http.ResponseWriter, err error) {
	h.log.Error(logger.Entry{
		Action:  "catalog_query_failed",
		Message: err.Error(),
		Error:   &logger.ErrObj{Msg: err.Error()},
	})
	transport.RespondError(w, http.StatusInternalServerError, "internal server error")
}
