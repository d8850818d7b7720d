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

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListRequestsService реализует ListRequestsUseCase
type ListRequestsService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	log         *logger.Logger
}

// NewListRequestsService создает новый сервис списка заявок
func NewListRequestsService(requestRepo out.RequestRepository, profileRepo out.ProfileRepository, log *logger.Logger) *ListRequestsService {
	return &ListRequestsService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute возвращает заявки, видимые пользователю, с учетом фильтров
func (s *ListRequestsService) Execute(ctx context.Context, input in.ListRequestsInput) (*in.ListRequestsOutput, error) {
	if input.Status != "" && !domain.ValidStatus(input.Status) {
		verr := domain.NewValidationError()
		verr.Add("status", "unknown status")
		return nil, verr
	}
	if input.Type != "" && input.Type != model.CollectionTypeOneTime && input.Type != model.CollectionTypeRecurring {
		verr := domain.NewValidationError()
		verr.Add("type", "unknown collection type")
		return nil, verr
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	filter := out.RequestFilter{
		Status:     input.Status,
		Type:       input.Type,
		DistrictID: input.DistrictID,
		CityID:     input.CityID,
		Date:       input.Date,
		Limit:      limit,
		Offset:     offset,
	}

	switch input.Role {
	case model.RoleAdmin:
		// без ограничений

	case model.RoleClient:
		profile, err := s.profileRepo.FindClientByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return nil, domain.ErrProfileNotFound
			}
			return nil, fmt.Errorf("find client profile: %w", err)
		}
		filter.ClientID = profile.ClientID

	case model.RoleCollector:
		profile, err := s.profileRepo.FindCollectorByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return nil, domain.ErrProfileNotFound
			}
			return nil, fmt.Errorf("find collector profile: %w", err)
		}
		// сборщик видит назначенные ему заявки; свободные PENDING
		// запрашивает отдельным фильтром status=PENDING
		if input.Status == model.RequestStatusPending {
			if filter.DistrictID == 0 {
				filter.DistrictID = profile.DistrictID
			}
		} else {
			filter.CollectorID = profile.CollectorID
		}

	default:
		return nil, domain.ErrForbidden
	}

	views, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	return &in.ListRequestsOutput{
		Requests: views,
		Count:    len(views),
	}, nil
}
