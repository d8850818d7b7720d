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

// SetAvailabilityService переключает доступность сборщика. Уход в офлайн
// каскадно отменяет все PENDING заявки этого сборщика в той же транзакции,
// после чего публикуются события для брокера.
type SetAvailabilityService struct {
	repo      out.CollectorRepository
	publisher out.EventPublisher
	log       *logger.Logger
}

func NewSetAvailabilityService(repo out.CollectorRepository, publisher out.EventPublisher, log *logger.Logger) *SetAvailabilityService {
	return &SetAvailabilityService{repo: repo, publisher: publisher, log: log}
}

func (s *SetAvailabilityService) Execute(ctx context.Context, input in.SetAvailabilityInput) (*in.SetAvailabilityOutput, error) {
	if err := s.authorize(ctx, input.UserID, input.Role, input.CollectorID); err != nil {
		return nil, err
	}

	cancelled, err := s.repo.SetAvailability(ctx, input.CollectorID, input.Available)
	if err != nil {
		return nil, err
	}

	cancelledIDs := make([]string, 0, len(cancelled))
	for _, c := range cancelled {
		cancelledIDs = append(cancelledIDs, c.RequestID)
	}

	s.log.Info(logger.Entry{
		Action:  "availability_changed",
		Message: fmt.Sprintf("collector %s available=%t, cancelled %d requests", input.CollectorID, input.Available, len(cancelled)),
		Additional: map[string]any{
			"collector_id":       input.CollectorID,
			"is_available":       input.Available,
			"cancelled_requests": cancelledIDs,
		},
	})

	s.publishEvents(ctx, input.CollectorID, input.Available, cancelled)

	return &in.SetAvailabilityOutput{
		CollectorID:       input.CollectorID,
		IsAvailable:       input.Available,
		CancelledRequests: cancelledIDs,
	}, nil
}

func (s *SetAvailabilityService) authorize(ctx context.Context, userID, role, collectorID string) error {
	if role == model.RoleAdmin {
		return nil
	}

	own, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if own.CollectorID != collectorID {
		return domain.ErrForbidden
	}
	return nil
}

// publishEvents отправляет события в брокер; сбои публикации не откатывают
// уже зафиксированное изменение и только логируются
func (s *SetAvailabilityService) publishEvents(ctx context.Context, collectorID string, available bool, cancelled []domain.CancelledRequest) {
	cancelledIDs := make([]string, 0, len(cancelled))
	for _, c := range cancelled {
		cancelledIDs = append(cancelledIDs, c.RequestID)
	}

	event := out.AvailabilityChangedEvent{
		CollectorID:       collectorID,
		IsAvailable:       available,
		CancelledRequests: cancelledIDs,
	}
	if err := s.publisher.PublishAvailabilityChanged(ctx, event); err != nil {
		s.log.Error(logger.Entry{
			Action:  "publish_availability_changed_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	for _, c := range cancelled {
		cancelEvent := out.RequestCancelledEvent{
			RequestID:   c.RequestID,
			ClientID:    c.ClientID,
			CollectorID: collectorID,
			Reason:      "collector became unavailable",
		}
		if err := s.publisher.PublishRequestCancelled(ctx, cancelEvent); err != nil {
			s.log.Error(logger.Entry{
				Action:  "publish_request_cancelled_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
				Additional: map[string]any{
					"request_id": c.RequestID,
				},
			})
		}
	}
}
