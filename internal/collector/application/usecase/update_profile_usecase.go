package usecase

import (
	"context"
	"fmt"

	"wastehub/internal/collector/application/ports/in"
	"wastehub/internal/collector/application/ports/out"
	"wastehub/internal/collector/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
)

// UpdateProfileService редактирует профиль сборщика (район, фото).
// Сборщик меняет только свой профиль, админ — любой.
type UpdateProfileService struct {
	repo out.CollectorRepository
	log  *logger.Logger
}

func NewUpdateProfileService(repo out.CollectorRepository, log *logger.Logger) *UpdateProfileService {
	return &UpdateProfileService{repo: repo, log: log}
}

func (s *UpdateProfileService) Execute(ctx context.Context, input in.UpdateProfileInput) (*domain.Collector, error) {
	if input.Role != model.RoleAdmin {
		own, err := s.repo.FindByUserID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if own.CollectorID != input.CollectorID {
			return nil, domain.ErrForbidden
		}
	}

	if input.DistrictID == nil && input.PhotoURL == nil {
		verr := domain.NewValidationError()
		verr.Add("body", "nothing to update")
		return nil, verr
	}

	if input.DistrictID != nil {
		exists, err := s.repo.DistrictExists(ctx, *input.DistrictID)
		if err != nil {
			return nil, fmt.Errorf("failed to check district: %w", err)
		}
		if !exists {
			return nil, domain.ErrDistrictNotFound
		}
	}

	rows, err := s.repo.UpdateProfile(ctx, input.CollectorID, out.ProfileUpdate{
		DistrictID: input.DistrictID,
		PhotoURL:   input.PhotoURL,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrCollectorNotFound
	}

	s.log.Info(logger.Entry{
		Action:  "collector_profile_updated",
		Message: fmt.Sprintf("collector %s profile updated", input.CollectorID),
	})

	return s.repo.FindByID(ctx, input.CollectorID)
}
