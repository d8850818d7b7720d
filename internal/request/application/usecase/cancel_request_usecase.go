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

// CancelRequestService реализует CancelRequestUseCase
type CancelRequestService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	publisher   out.EventPublisher
	log         *logger.Logger
}

// NewCancelRequestService создает новый сервис отмены заявки
func NewCancelRequestService(
	requestRepo out.RequestRepository,
	profileRepo out.ProfileRepository,
	publisher out.EventPublisher,
	log *logger.Logger,
) *CancelRequestService {
	return &CancelRequestService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		publisher:   publisher,
		log:         log,
	}
}

// Execute отменяет заявку клиента. Отменить можно только PENDING:
// после принятия сборщиком отмена клиентом недоступна.
func (s *CancelRequestService) Execute(ctx context.Context, input in.CancelRequestInput) (*in.CancelRequestOutput, error) {
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
	if !domain.CanTransition(req.Status, model.RequestStatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	rows, err := s.requestRepo.UpdateStatus(ctx, out.StatusChange{
		RequestID:  input.RequestID,
		FromStatus: model.RequestStatusPending,
		ToStatus:   model.RequestStatusCancelled,
	})
	if err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrConflict
	}

	s.log.Info(logger.Entry{
		Action:    "request_cancelled",
		RequestID: input.RequestID,
		Additional: map[string]any{
			"client_id": profile.ClientID,
		},
	})

	data := out.RequestEventData{
		RequestID:      req.ID,
		ClientID:       req.ClientID,
		DistrictID:     req.DistrictID,
		WasteTypeID:    req.WasteTypeID,
		Status:         model.RequestStatusCancelled,
		CollectionType: req.CollectionType,
	}
	if err := s.publisher.PublishRequestEvent(ctx, model.EventRequestCancelled, data); err != nil {
		s.log.Error(logger.Entry{
			Action:    "publish_request_cancelled_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
	}

	return &in.CancelRequestOutput{
		RequestID: input.RequestID,
		Status:    model.RequestStatusCancelled,
	}, nil
}
