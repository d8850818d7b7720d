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

// UpdateRequestService реализует UpdateRequestUseCase
type UpdateRequestService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	catalogRepo out.CatalogRepository
	log         *logger.Logger
}

// NewUpdateRequestService создает новый сервис редактирования заявки
func NewUpdateRequestService(
	requestRepo out.RequestRepository,
	profileRepo out.ProfileRepository,
	catalogRepo out.CatalogRepository,
	log *logger.Logger,
) *UpdateRequestService {
	return &UpdateRequestService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		catalogRepo: catalogRepo,
		log:         log,
	}
}

// Execute редактирует заявку клиента, пока она PENDING
func (s *UpdateRequestService) Execute(ctx context.Context, input in.UpdateRequestInput) (*domain.RequestView, error) {
	profile, err := s.profileRepo.FindClientByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("find client profile: %w", err)
	}

	req, err := s.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if !req.IsOwnedBy(profile.ClientID) {
		return nil, domain.ErrForbidden
	}
	if req.Status != model.RequestStatusPending {
		return nil, domain.ErrConflict
	}

	wasteTypeID := input.WasteTypeID
	if wasteTypeID == 0 {
		wasteTypeID = req.WasteTypeID
	}
	districtID := input.DistrictID
	if districtID == 0 {
		districtID = req.DistrictID
	}

	verr := domain.NewValidationError()
	if ok, err := s.catalogRepo.WasteTypeExists(ctx, wasteTypeID); err != nil {
		return nil, fmt.Errorf("check waste type: %w", err)
	} else if !ok {
		verr.Add("waste_type_id", "unknown waste type")
	}
	if ok, err := s.catalogRepo.DistrictExists(ctx, districtID); err != nil {
		return nil, fmt.Errorf("check district: %w", err)
	} else if !ok {
		verr.Add("district_id", "unknown district")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	rows, err := s.requestRepo.UpdateDetails(ctx, input.RequestID, wasteTypeID, districtID, input.Notes)
	if err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	if rows == 0 {
		// Статус изменился между чтением и записью
		return nil, domain.ErrConflict
	}

	s.log.Info(logger.Entry{
		Action:    "request_updated",
		RequestID: input.RequestID,
	})

	return s.requestRepo.FindView(ctx, input.RequestID)
}
