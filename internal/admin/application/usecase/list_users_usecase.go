package usecase

import (
	"context"

	"wastehub/internal/admin/application/ports/in"
	"wastehub/internal/admin/application/ports/out"
	"wastehub/internal/admin/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListUsersService — постраничный список пользователей с фильтрами
type ListUsersService struct {
	repo out.AdminRepository
	log  *logger.Logger
}

func NewListUsersService(repo out.AdminRepository, log *logger.Logger) *ListUsersService {
	return &ListUsersService{repo: repo, log: log}
}

func (s *ListUsersService) Execute(ctx context.Context, input in.ListUsersInput) (*in.ListUsersOutput, error) {
	if input.Role != "" {
		switch input.Role {
		case model.RoleClient, model.RoleCollector, model.RoleAdmin:
		default:
			return nil, domain.ErrInvalidRole
		}
	}
	if input.Status != "" {
		switch input.Status {
		case model.UserStatusActive, model.UserStatusInactive, model.UserStatusBanned:
		default:
			return nil, domain.ErrInvalidStatus
		}
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	users, total, err := s.repo.ListUsers(ctx, out.ListUsersFilters{
		Role:   input.Role,
		Status: input.Status,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &in.ListUsersOutput{Users: users, Total: total}, nil
}

// UpdateUserStatusService — активация, деактивация или бан пользователя
type UpdateUserStatusService struct {
	repo out.AdminRepository
	log  *logger.Logger
}

func NewUpdateUserStatusService(repo out.AdminRepository, log *logger.Logger) *UpdateUserStatusService {
	return &UpdateUserStatusService{repo: repo, log: log}
}

func (s *UpdateUserStatusService) Execute(ctx context.Context, input in.UpdateUserStatusInput) (*domain.UserSummary, error) {
	switch input.Status {
	case model.UserStatusActive, model.UserStatusInactive, model.UserStatusBanned:
	default:
		return nil, domain.ErrInvalidStatus
	}

	rows, err := s.repo.UpdateUserStatus(ctx, input.UserID, input.Status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrUserNotFound
	}

	s.log.Info(logger.Entry{
		Action:  "user_status_updated",
		Message: input.UserID + " -> " + input.Status,
	})

	return s.repo.FindUserByID(ctx, input.UserID)
}
