package usecase

import (
	"context"
	"errors"
	"fmt"

	"wastehub/internal/model"
	"wastehub/internal/request/application/ports/in"
	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
)

// DeleteRequestService реализует DeleteRequestUseCase
type DeleteRequestService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	log         *logger.Logger
}

// NewDeleteRequestService создает новый сервис удаления заявки
func NewDeleteRequestService(requestRepo out.RequestRepository, profileRepo out.ProfileRepository, log *logger.Logger) *DeleteRequestService {
	return &DeleteRequestService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute удаляет заявку вместе с расписанием. Активную заявку
// (ACCEPTED, IN_PROGRESS, COMPLETED) удалить нельзя.
func (s *DeleteRequestService) Execute(ctx context.Context, input in.DeleteRequestInput) error {
	req, err := s.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return err
	}

	if input.Role != model.RoleAdmin {
		profile, err := s.profileRepo.FindClientByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return domain.ErrForbidden
			}
			return fmt.Errorf("find client profile: %w", err)
		}
		if !req.IsOwnedBy(profile.ClientID) {
			return domain.ErrForbidden
		}
	}

	if req.Status != model.RequestStatusPending && req.Status != model.RequestStatusCancelled {
		return domain.ErrConflict
	}

	rows, err := s.requestRepo.Delete(ctx, input.RequestID)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if rows == 0 {
		// Заявка успела перейти в активный статус
		return domain.ErrConflict
	}

	s.log.Info(logger.Entry{
		Action:    "request_deleted",
		RequestID: input.RequestID,
	})
	return nil
}
