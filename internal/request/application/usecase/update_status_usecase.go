package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wastehub/internal/model"
	"wastehub/internal/request/application/ports/in"
	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
)

// UpdateStatusService реализует UpdateStatusUseCase.
// Переход применяется одним UPDATE с проверкой исходного статуса,
// поэтому параллельный каскад отмены не может "перезаписать" принятие.
type UpdateStatusService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	publisher   out.EventPublisher
	notifier    out.RequestNotifier
	log         *logger.Logger
}

// NewUpdateStatusService создает новый сервис переходов статуса
func NewUpdateStatusService(
	requestRepo out.RequestRepository,
	profileRepo out.ProfileRepository,
	publisher out.EventPublisher,
	notifier out.RequestNotifier,
	log *logger.Logger,
) *UpdateStatusService {
	return &UpdateStatusService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		publisher:   publisher,
		notifier:    notifier,
		log:         log,
	}
}

// Execute выполняет переход статуса заявки сборщиком
func (s *UpdateStatusService) Execute(ctx context.Context, input in.UpdateStatusInput) (*in.UpdateStatusOutput, error) {
	if !domain.ValidStatus(input.NewStatus) {
		verr := domain.NewValidationError()
		verr.Add("status", "unknown status")
		return nil, verr
	}

	profile, err := s.profileRepo.FindCollectorByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("find collector profile: %w", err)
	}

	req, err := s.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(req.Status, input.NewStatus) {
		return nil, domain.ErrInvalidTransition
	}

	change := out.StatusChange{
		RequestID:  input.RequestID,
		FromStatus: req.Status,
		ToStatus:   input.NewStatus,
	}

	switch input.NewStatus {
	case model.RequestStatusAccepted:
		// Принять может только доступный сборщик, заявка становится его
		if !profile.IsAvailable {
			return nil, domain.ErrCollectorUnavailable
		}
		collectorID := profile.CollectorID
		change.CollectorID = &collectorID

	case model.RequestStatusInProgress, model.RequestStatusCompleted:
		// Продолжить может только назначенный сборщик
		if !req.IsAssignedTo(profile.CollectorID) {
			return nil, domain.ErrForbidden
		}
		if input.NewStatus == model.RequestStatusCompleted {
			now := time.Now().UTC()
			change.CompletedDate = &now
		}

	default:
		// CANCELLED и PENDING не достигаются сборщиком
		return nil, domain.ErrInvalidTransition
	}

	rows, err := s.requestRepo.UpdateStatus(ctx, change)
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	if rows == 0 {
		// Статус изменился параллельно (например, каскад отмены)
		return nil, domain.ErrConflict
	}

	s.log.Info(logger.Entry{
		Action:    "request_status_changed",
		Message:   fmt.Sprintf("%s -> %s", req.Status, input.NewStatus),
		RequestID: input.RequestID,
		Additional: map[string]any{
			"collector_id": profile.CollectorID,
		},
	})

	s.publishAndNotify(ctx, req, profile, input.NewStatus)

	return &in.UpdateStatusOutput{
		RequestID: input.RequestID,
		Status:    input.NewStatus,
	}, nil
}

// publishAndNotify отправляет событие в RabbitMQ и уведомляет клиента по WS.
// Ошибки здесь не прерывают операцию: переход уже зафиксирован.
func (s *UpdateStatusService) publishAndNotify(ctx context.Context, req *domain.CollectionRequest, profile *out.CollectorProfile, newStatus string) {
	eventType := statusEventType(newStatus)
	collectorID := profile.CollectorID

	data := out.RequestEventData{
		RequestID:      req.ID,
		ClientID:       req.ClientID,
		CollectorID:    &collectorID,
		DistrictID:     req.DistrictID,
		WasteTypeID:    req.WasteTypeID,
		Status:         newStatus,
		CollectionType: req.CollectionType,
	}
	if err := s.publisher.PublishRequestEvent(ctx, eventType, data); err != nil {
		s.log.Error(logger.Entry{
			Action:    "publish_status_event_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
	}

	clientUserID, err := s.profileRepo.FindClientUserID(ctx, req.ClientID)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:    "resolve_client_user_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	notification := out.RequestNotification{
		Type:      statusNotificationType(newStatus),
		RequestID: req.ID,
		Message:   fmt.Sprintf("request is now %s", newStatus),
		Data: map[string]interface{}{
			"status":       newStatus,
			"collector_id": collectorID,
		},
	}
	if err := s.notifier.NotifyUser(ctx, clientUserID, notification); err != nil {
		s.log.Warn(logger.Entry{
			Action:    "notify_client_failed",
			Message:   err.Error(),
			RequestID: req.ID,
		})
	}
}

func statusEventType(status string) string {
	switch status {
	case model.RequestStatusAccepted:
		return model.EventRequestAccepted
	case model.RequestStatusInProgress:
		return model.EventRequestStarted
	case model.RequestStatusCompleted:
		return model.EventRequestCompleted
	case model.RequestStatusCancelled:
		return model.EventRequestCancelled
	default:
		return model.EventRequestCreated
	}
}

func statusNotificationType(status string) string {
	switch status {
	case model.RequestStatusAccepted:
		return "request_accepted"
	case model.RequestStatusInProgress:
		return "request_started"
	case model.RequestStatusCompleted:
		return "request_completed"
	case model.RequestStatusCancelled:
		return "request_cancelled"
	default:
		return "request_updated"
	}
}
