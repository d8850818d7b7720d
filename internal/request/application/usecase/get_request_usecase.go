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

// GetRequestService реализует GetRequestUseCase
type GetRequestService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	log         *logger.Logger
}

// NewGetRequestService создает новый сервис получения заявки
func NewGetRequestService(requestRepo out.RequestRepository, profileRepo out.ProfileRepository, log *logger.Logger) *GetRequestService {
	return &GetRequestService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute возвращает заявку со справочными данными.
// Доступ: клиент-владелец, назначенный сборщик, любой сборщик для
// свободной PENDING заявки, админ.
func (s *GetRequestService) Execute(ctx context.Context, input in.GetRequestInput) (*domain.RequestView, error) {
	view, err := s.requestRepo.FindView(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request view: %w", err)
	}

	if err := s.authorize(ctx, input, view); err != nil {
		return nil, err
	}

	return view, nil
}

func (s *GetRequestService) authorize(ctx context.Context, input in.GetRequestInput, view *domain.RequestView) error {
	switch input.Role {
	case model.RoleAdmin:
		return nil

	case model.RoleClient:
		profile, err := s.profileRepo.FindClientByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return domain.ErrForbidden
			}
			return fmt.Errorf("find client profile: %w", err)
		}
		if view.ClientID != profile.ClientID {
			return domain.ErrForbidden
		}
		return nil

	case model.RoleCollector:
		profile, err := s.profileRepo.FindCollectorByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return domain.ErrForbidden
			}
			return fmt.Errorf("find collector profile: %w", err)
		}
		// назначенный сборщик или свободная заявка
		if view.CollectorID != nil && *view.CollectorID == profile.CollectorID {
			return nil
		}
		if view.CollectorID == nil && view.Status == model.RequestStatusPending {
			return nil
		}
		return domain.ErrForbidden
	}

	return domain.ErrForbidden
}
