// Package usecase реализует сценарии admin service.
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wastehub/internal/admin/application/ports/in"
	"wastehub/internal/admin/application/ports/out"
	"wastehub/internal/admin/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/user"
	"wastehub/internal/shared/utils"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// CreateUserService создает пользователей от имени администратора.
// Для ролей CLIENT и COLLECTOR вместе с пользователем создается профиль.
type CreateUserService struct {
	repo out.AdminRepository
	log  *logger.Logger
}

func NewCreateUserService(repo out.AdminRepository, log *logger.Logger) *CreateUserService {
	return &CreateUserService{repo: repo, log: log}
}

func (s *CreateUserService) Execute(ctx context.Context, input in.CreateUserInput) (*in.CreateUserOutput, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrPasswordTooShort
	}

	switch input.Role {
	case model.RoleClient, model.RoleCollector, model.RoleAdmin:
	default:
		return nil, domain.ErrInvalidRole
	}

	// профильным ролям нужен район
	if input.Role != model.RoleAdmin && input.DistrictID <= 0 {
		return nil, domain.ErrDistrictRequired
	}
	if input.DistrictID > 0 {
		exists, err := s.repo.DistrictExists(ctx, input.DistrictID)
		if err != nil {
			return nil, fmt.Errorf("check district: %w", err)
		}
		if !exists {
			return nil, domain.ErrDistrictRequired
		}
	}

	status := input.Status
	if status == "" {
		status = model.UserStatusActive
	}
	switch status {
	case model.UserStatusActive, model.UserStatusInactive, model.UserStatusBanned:
	default:
		return nil, domain.ErrInvalidStatus
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           utils.NewUUID(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         input.Role,
		Status:       status,
	}

	if err := s.repo.CreateUser(ctx, u, input.DistrictID); err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "admin_user_created",
		Message: fmt.Sprintf("user %s created with role %s", u.Email, u.Role),
		Additional: map[string]any{
			"user_id": u.ID,
			"role":    u.Role,
		},
	})

	return &in.CreateUserOutput{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}, nil
}
