package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"wastehub/internal/model"
	"wastehub/internal/rating/application/ports/in"
	"wastehub/internal/rating/domain"
	reqdomain "wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/transport"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler обрабатывает HTTP запросы для оценок
type HTTPHandler struct {
	submitUC in.SubmitRatingUseCase
	updateUC in.UpdateRatingUseCase
	deleteUC in.DeleteRatingUseCase
	listUC   in.ListRatingsUseCase
	statsUC  in.CollectorStatsUseCase
	log      *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler оценок
func NewHTTPHandler(
	submitUC in.SubmitRatingUseCase,
	updateUC in.UpdateRatingUseCase,
	deleteUC in.DeleteRatingUseCase,
	listUC in.ListRatingsUseCase,
	statsUC in.CollectorStatsUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		submitUC: submitUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
		statsUC:  statsUC,
		log:      log,
	}
}

// RegisterRoutes регистрирует маршруты оценок
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	clientOnly := transport.RequireRole(model.RoleClient)

	mux.HandleFunc("POST /ratings", authMiddleware(clientOnly(h.handleSubmit)))
	mux.HandleFunc("PUT /ratings/{id}", authMiddleware(clientOnly(h.handleUpdate)))
	mux.HandleFunc("DELETE /ratings/{id}", authMiddleware(clientOnly(h.handleDelete)))
	mux.HandleFunc("GET /ratings", authMiddleware(h.handleList))
	mux.HandleFunc("GET /collectors/{id}/ratings", authMiddleware(h.handleCollectorRatings))
	mux.HandleFunc("GET /collectors/{id}/stats", authMiddleware(h.handleCollectorStats))
	mux.HandleFunc("GET /clients/{id}/ratings", authMiddleware(h.handleClientRatings))
}

// SubmitRatingHTTPRequest — HTTP DTO для создания оценки
type SubmitRatingHTTPRequest struct {
	RequestID string `json:"request_id"`
	Score     int    `json:"score"`
	Comment   string `json:"comment,omitempty"`
}

// handleSubmit обрабатывает POST /ratings
func (h *HTTPHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req SubmitRatingHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	if req.RequestID == "" {
		transport.RespondError(w, http.StatusBadRequest, "request_id is required")
		return
	}

	rating, err := h.submitUC.Execute(ctx, in.SubmitRatingInput{
		UserID:    transport.UserID(ctx),
		RequestID: req.RequestID,
		Score:     req.Score,
		Comment:   req.Comment,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusCreated, rating)
}

// UpdateRatingHTTPRequest — HTTP DTO для изменения оценки
type UpdateRatingHTTPRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// handleUpdate обрабатывает PUT /ratings/{id}
func (h *HTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req UpdateRatingHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	rating, err := h.updateUC.Execute(ctx, in.UpdateRatingInput{
		UserID:   transport.UserID(ctx),
		RatingID: r.PathValue("id"),
		Score:    req.Score,
		Comment:  req.Comment,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, rating)
}

// handleDelete обрабатывает DELETE /ratings/{id}
func (h *HTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.deleteUC.Execute(ctx, in.DeleteRatingInput{
		UserID:   transport.UserID(ctx),
		RatingID: r.PathValue("id"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleList обрабатывает GET /ratings с фильтрами collector_id / client_id
func (h *HTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	input := in.ListRatingsInput{
		CollectorID: q.Get("collector_id"),
		ClientID:    q.Get("client_id"),
	}
	if input.CollectorID == "" && input.ClientID == "" {
		transport.RespondError(w, http.StatusBadRequest, "collector_id or client_id is required")
		return
	}

	ratings, err := h.listUC.Execute(ctx, input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	transport.RespondJSON(w, http.StatusOK, map[string]any{"ratings": ratings})
}

// handleCollectorRatings обрабатывает GET /collectors/{id}/ratings
func (h *HTTPHandler) handleCollectorRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.listUC.Execute(r.Context(), in.ListRatingsInput{CollectorID: r.PathValue("id")})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	transport.RespondJSON(w, http.StatusOK, map[string]any{"ratings": ratings})
}

// handleClientRatings обрабатывает GET /clients/{id}/ratings
func (h *HTTPHandler) handleClientRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.listUC.Execute(r.Context(), in.ListRatingsInput{ClientID: r.PathValue("id")})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	transport.RespondJSON(w, http.StatusOK, map[string]any{"ratings": ratings})
}

// handleCollectorStats обрабатывает GET /collectors/{id}/stats
func (h *HTTPHandler) handleCollectorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUC.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}
	transport.RespondJSON(w, http.StatusOK, stats)
}

// handleUseCaseError маппит доменные ошибки оценок в HTTP коды
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidScore):
		transport.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		transport.RespondError(w, http.StatusForbidden, "operation forbidden")
	case errors.Is(err, domain.ErrRequestNotCompleted):
		transport.RespondError(w, http.StatusConflict, "request is not completed")
	case errors.Is(err, domain.ErrDuplicateRating):
		transport.RespondError(w, http.StatusConflict, "rating already exists for this request")
	case errors.Is(err, domain.ErrRatingNotFound):
		transport.RespondError(w, http.StatusNotFound, "rating not found")
	case errors.Is(err, reqdomain.ErrRequestNotFound):
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
