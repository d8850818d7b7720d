// Package usecase реализует сценарии collector service.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"wastehub/internal/collector/application/ports/in"
	"wastehub/internal/collector/application/ports/out"
	"wastehub/internal/collector/domain"
	"wastehub/internal/shared/auth"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/user"
	"wastehub/internal/shared/utils"
)

// RegisterCollectorService регистрирует сборщика: пользователь с ролью
// COLLECTOR и профиль создаются одной транзакцией, возвращается JWT.
type RegisterCollectorService struct {
	repo out.CollectorRepository
	jwt  *auth.JWTService
	log  *logger.Logger
}

func NewRegisterCollectorService(repo out.CollectorRepository, jwt *auth.JWTService, log *logger.Logger) *RegisterCollectorService {
	return &RegisterCollectorService{repo: repo, jwt: jwt, log: log}
}

func (s *RegisterCollectorService) Execute(ctx context.Context, input in.RegisterCollectorInput) (*in.RegisterCollectorOutput, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		ID:           utils.NewUUID(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
	}

	collectorID, err := s.repo.Create(ctx, u, input.DistrictID, input.PhotoURL)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	collector, err := s.repo.FindByID(ctx, collectorID)
	if err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "collector_registered",
		Message: fmt.Sprintf("collector %s registered in district %d", collectorID, input.DistrictID),
		Additional: map[string]any{
			"collector_id": collectorID,
			"user_id":      u.ID,
			"district_id":  input.DistrictID,
		},
	})

	return &in.RegisterCollectorOutput{Token: token, Collector: collector}, nil
}

func (s *RegisterCollectorService) validate(ctx context.Context, input in.RegisterCollectorInput) error {
	verr := domain.NewValidationError()

	if !strings.Contains(input.Email, "@") {
		verr.Add("email", "invalid email address")
	}
	if len(input.Password) < 8 {
		verr.Add("password", "password must be at least 8 characters")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		verr.Add("first_name", "first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		verr.Add("last_name", "last name is required")
	}
	if input.DistrictID <= 0 {
		verr.Add("district_id", "district is required")
	}

	if verr.HasErrors() {
		return verr
	}

	exists, err := s.repo.DistrictExists(ctx, input.DistrictID)
	if err != nil {
		return fmt.Errorf("failed to check district: %w", err)
	}
	if !exists {
		verr.Add("district_id", "district does not exist")
		return verr
	}

	return nil
}
