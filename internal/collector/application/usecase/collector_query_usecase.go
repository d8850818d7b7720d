package usecase

import (
	"context"

	"wastehub/internal/collector/application/ports/in"
	"wastehub/internal/collector/application/ports/out"
	"wastehub/internal/collector/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// GetCollectorService возвращает публичный профиль сборщика
type GetCollectorService struct {
	repo out.CollectorRepository
	log  *logger.Logger
}

func NewGetCollectorService(repo out.CollectorRepository, log *logger.Logger) *GetCollectorService {
	return &GetCollectorService{repo: repo, log: log}
}

func (s *GetCollectorService) Execute(ctx context.Context, input in.GetCollectorInput) (*domain.Collector, error) {
	return s.repo.FindByID(ctx, input.CollectorID)
}

// ListCollectorsService — список сборщиков с фильтрами по району и доступности
type ListCollectorsService struct {
	repo out.CollectorRepository
	log  *logger.Logger
}

func NewListCollectorsService(repo out.CollectorRepository, log *logger.Logger) *ListCollectorsService {
	return &ListCollectorsService{repo: repo, log: log}
}

func (s *ListCollectorsService) Execute(ctx context.Context, input in.ListCollectorsInput) (*in.ListCollectorsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	collectors, err := s.repo.List(ctx, out.CollectorFilter{
		DistrictID:    input.DistrictID,
		AvailableOnly: input.AvailableOnly,
		Limit:         limit,
		Offset:        input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &in.ListCollectorsOutput{Collectors: collectors, Count: len(collectors)}, nil
}

// AvailableByDistrictService — доступные сборщики конкретного района
type AvailableByDistrictService struct {
	repo out.CollectorRepository
	log  *logger.Logger
}

func NewAvailableByDistrictService(repo out.CollectorRepository, log *logger.Logger) *AvailableByDistrictService {
	return &AvailableByDistrictService{repo: repo, log: log}
}

func (s *AvailableByDistrictService) Execute(ctx context.Context, input in.AvailableByDistrictInput) (*in.ListCollectorsOutput, error) {
	exists, err := s.repo.DistrictExists(ctx, input.DistrictID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrDistrictNotFound
	}

	collectors, err := s.repo.ListAvailableByDistrict(ctx, input.DistrictID)
	if err != nil {
		return nil, err
	}

	return &in.ListCollectorsOutput{Collectors: collectors, Count: len(collectors)}, nil
}

// CollectorRequestsService — заявки сборщика. Сборщик видит только свои,
// админ — любого.
type CollectorRequestsService struct {
	repo out.CollectorRepository
	log  *logger.Logger
}

func NewCollectorRequestsService(repo out.CollectorRepository, log *logger.Logger) *CollectorRequestsService {
	return &CollectorRequestsService{repo: repo, log: log}
}

func (s *CollectorRequestsService) Execute(ctx context.Context, input in.CollectorRequestsInput) (*in.CollectorRequestsOutput, error) {
	if input.Role != model.RoleAdmin {
		own, err := s.repo.FindByUserID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if own.CollectorID != input.CollectorID {
			return nil, domain.ErrForbidden
		}
	}

	if input.Status != "" {
		switch input.Status {
		case model.RequestStatusPending, model.RequestStatusAccepted,
			model.RequestStatusInProgress, model.RequestStatusCompleted,
			model.RequestStatusCancelled:
		default:
			verr := domain.NewValidationError()
			verr.Add("status", "unknown status")
			return nil, verr
		}
	}

	requests, err := s.repo.ListRequests(ctx, input.CollectorID, input.Status)
	if err != nil {
		return nil, err
	}

	return &in.CollectorRequestsOutput{Requests: requests, Count: len(requests)}, nil
}
