package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"wastehub/internal/shared/auth"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/transport"
	"wastehub/internal/shared/utils"

	"golang.org/x/crypto/bcrypt"
)

const maxBodySize = 1 << 20 // 1MB

// AuthHandler обрабатывает регистрацию и вход пользователей
type AuthHandler struct {
	repo Repository
	jwt  *auth.JWTService
	log  *logger.Logger
}

// NewAuthHandler создает новый auth handler
func NewAuthHandler(repo Repository, jwt *auth.JWTService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		repo: repo,
		jwt:  jwt,
		log:  log,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("GET /auth/me", authMiddleware(h.handleMe))
}

// RegisterHTTPRequest — HTTP DTO для регистрации клиента
type RegisterHTTPRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	DistrictID int64  `json:"district_id"`
}

// handleRegister обрабатывает POST /auth/register
// Регистрирует клиента; сборщиков создает collector-service, админов — admin-service
func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RegisterHTTPRequest
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

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		transport.RespondError(w, http.StatusBadRequest, "valid email is required")
		return
	}
	if len(req.Password) < 8 {
		transport.RespondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		transport.RespondError(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}
	if req.DistrictID <= 0 {
		transport.RespondError(w, http.StatusBadRequest, "district_id is required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "hash_password_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	u := &User{
		ID:           utils.NewUUID(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
	}

	if err := h.repo.CreateClient(ctx, u, req.DistrictID); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			transport.RespondError(w, http.StatusConflict, "email already registered")
			return
		}
		h.log.Error(logger.Entry{
			Action:  "register_client_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.log.Info(logger.Entry{
		Action:  "client_registered",
		Message: u.ID,
		Additional: map[string]any{
			"email": u.Email,
		},
	})

	token, err := h.jwt.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	transport.RespondJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  toUserResponse(u),
	})
}

// LoginHTTPRequest — HTTP DTO для входа
type LoginHTTPRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin обрабатывает POST /auth/login
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req LoginHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.RespondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	u, err := h.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			transport.RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error(logger.Entry{
			Action:  "login_lookup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		transport.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !u.IsActive() {
		transport.RespondError(w, http.StatusForbidden, "account is not active")
		return
	}

	token, err := h.jwt.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	transport.RespondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserResponse(u),
	})
}

// handleMe обрабатывает GET /auth/me
func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := transport.UserID(ctx)

	u, err := h.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			transport.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		transport.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	transport.RespondJSON(w, http.StatusOK, toUserResponse(u))
}

func toUserResponse(u *User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"phone":      u.Phone,
		"address":    u.Address,
		"role":       u.Role,
		"status":     u.Status,
		"created_at": u.CreatedAt,
	}
}
