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
	"wastehub/internal/shared/utils"
)

// CreateRequestService реализует CreateRequestUseCase
type CreateRequestService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	catalogRepo out.CatalogRepository
	publisher   out.EventPublisher
	notifier    out.RequestNotifier
	log         *logger.Logger
}

// NewCreateRequestService создает новый сервис создания заявки
func NewCreateRequestService(
	requestRepo out.RequestRepository,
	profileRepo out.ProfileRepository,
	catalogRepo out.CatalogRepository,
	publisher out.EventPublisher,
	notifier out.RequestNotifier,
	log *logger.Logger,
) *CreateRequestService {
	return &CreateRequestService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		catalogRepo: catalogRepo,
		publisher:   publisher,
		notifier:    notifier,
		log:         log,
	}
}

// Execute выполняет создание новой заявки на вывоз
func (s *CreateRequestService) Execute(ctx context.Context, input in.CreateRequestInput) (*in.CreateRequestOutput, error) {
	// Профиль клиента обязателен
	profile, err := s.profileRepo.FindClientByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find client profile: %w", err)
	}

	// Район по умолчанию — из профиля клиента
	districtID := input.DistrictID
	if districtID == 0 {
		districtID = profile.DistrictID
	}

	if err := s.validate(ctx, input, districtID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.CollectionRequest{
		ID:             utils.NewUUID(),
		ClientID:       profile.ClientID,
		WasteTypeID:    input.WasteTypeID,
		DistrictID:     districtID,
		CollectionType: input.CollectionType,
		Status:         model.RequestStatusPending,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	days, rec, err := s.buildSchedule(req.ID, input, now)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, req, days, rec); err != nil {
		s.log.Error(logger.Entry{
			Action:    "create_request_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("create collection request: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:    "request_created",
		Message:   fmt.Sprintf("%s request with %d collection days", req.CollectionType, len(days)),
		RequestID: req.ID,
		Additional: map[string]any{
			"client_id":   req.ClientID,
			"district_id": req.DistrictID,
		},
	})

	// Событие для collector-service: уведомить сборщиков района
	eventData := out.RequestEventData{
		RequestID:      req.ID,
		ClientID:       req.ClientID,
		DistrictID:     req.DistrictID,
		WasteTypeID:    req.WasteTypeID,
		Status:         req.Status,
		CollectionType: req.CollectionType,
	}
	if err := s.publisher.PublishRequestEvent(ctx, model.EventRequestCreated, eventData); err != nil {
		// Заявка уже создана, ошибку публикации не возвращаем клиенту
		s.log.Error(logger.Entry{
			Action:    "publish_request_created_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
	}

	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.CollectionDate)
	}

	return &in.CreateRequestOutput{
		RequestID:      req.ID,
		Status:         req.Status,
		CollectionType: req.CollectionType,
		Dates:          dates,
	}, nil
}

// validate проверяет входные данные и справочные ссылки
func (s *CreateRequestService) validate(ctx context.Context, input in.CreateRequestInput, districtID int64) error {
	verr := domain.NewValidationError()

	if input.CollectionType != model.CollectionTypeOneTime && input.CollectionType != model.CollectionTypeRecurring {
		verr.Add("collection_type", "must be ONE_TIME or RECURRING")
	}
	if input.WasteTypeID <= 0 {
		verr.Add("waste_type_id", "is required")
	}
	if input.TimeSlotID <= 0 {
		verr.Add("time_slot_id", "is required")
	}
	if districtID <= 0 {
		verr.Add("district_id", "is required")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	switch input.CollectionType {
	case model.CollectionTypeOneTime:
		if len(input.Dates) != 1 {
			verr.Add("dates", "one-time request requires exactly one date")
		} else if !input.Dates[0].UTC().Truncate(24 * time.Hour).After(today) {
			verr.Add("dates", "collection date must be in the future")
		}
		if input.Recurrence != nil {
			verr.Add("recurrence", "not allowed for one-time request")
		}
	case model.CollectionTypeRecurring:
		// Регулярная заявка задается либо явным списком дат,
		// либо правилом повторения
		if input.Recurrence == nil && len(input.Dates) == 0 {
			verr.Add("recurrence", "recurring request requires dates or a recurrence rule")
		}
		if input.Recurrence != nil && len(input.Dates) > 0 {
			verr.Add("recurrence", "provide either dates or a recurrence rule, not both")
		}
		if input.Recurrence != nil {
			rec := &domain.RecurringCollection{
				Frequency:  input.Recurrence.Frequency,
				DayOfWeek:  input.Recurrence.DayOfWeek,
				DayOfMonth: input.Recurrence.DayOfMonth,
				StartDate:  input.Recurrence.StartDate,
				EndDate:    input.Recurrence.EndDate,
			}
			if recErr := domain.ValidateRecurrence(rec); recErr != nil {
				for field, msg := range recErr.Fields {
					verr.Add(field, msg)
				}
			}
			if !input.Recurrence.StartDate.UTC().Truncate(24 * time.Hour).After(today) {
				verr.Add("start_date", "must be in the future")
			}
		}
		if len(input.Dates) > 0 {
			seen := make(map[time.Time]struct{}, len(input.Dates))
			for _, raw := range input.Dates {
				date := raw.UTC().Truncate(24 * time.Hour)
				if !date.After(today) {
					verr.Add("dates", "collection dates must be in the future")
					break
				}
				if _, dup := seen[date]; dup {
					verr.Add("dates", "duplicate collection dates are not allowed")
					break
				}
				seen[date] = struct{}{}
			}
		}
	}

	if verr.HasErrors() {
		return verr
	}

	// Проверка справочников
	if ok, err := s.catalogRepo.WasteTypeExists(ctx, input.WasteTypeID); err != nil {
		return fmt.Errorf("check waste type: %w", err)
	} else if !ok {
		verr.Add("waste_type_id", "unknown waste type")
	}
	if ok, err := s.catalogRepo.DistrictExists(ctx, districtID); err != nil {
		return fmt.Errorf("check district: %w", err)
	} else if !ok {
		verr.Add("district_id", "unknown district")
	}
	if ok, err := s.catalogRepo.TimeSlotExists(ctx, input.TimeSlotID); err != nil {
		return fmt.Errorf("check time slot: %w", err)
	} else if !ok {
		verr.Add("time_slot_id", "unknown time slot")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// buildSchedule собирает даты вывоза и правило повторения
func (s *CreateRequestService) buildSchedule(requestID string, input in.CreateRequestInput, now time.Time) ([]domain.CollectionDay, *domain.RecurringCollection, error) {
	// Явный список дат: одна дата для ONE_TIME либо несколько для RECURRING
	if input.Recurrence == nil {
		days := make([]domain.CollectionDay, 0, len(input.Dates))
		for _, raw := range input.Dates {
			days = append(days, domain.CollectionDay{
				ID:             utils.NewUUID(),
				RequestID:      requestID,
				TimeSlotID:     input.TimeSlotID,
				CollectionDate: raw.UTC().Truncate(24 * time.Hour),
				CreatedAt:      now,
			})
		}
		return days, nil, nil
	}

	rec := &domain.RecurringCollection{
		ID:         utils.NewUUID(),
		RequestID:  requestID,
		Frequency:  input.Recurrence.Frequency,
		DayOfWeek:  input.Recurrence.DayOfWeek,
		DayOfMonth: input.Recurrence.DayOfMonth,
		TimeSlotID: input.TimeSlotID,
		StartDate:  input.Recurrence.StartDate,
		EndDate:    input.Recurrence.EndDate,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	occurrences := domain.ExpandOccurrences(rec, now)
	if len(occurrences) == 0 {
		verr := domain.NewValidationError()
		verr.Add("recurrence", "rule produces no collection dates")
		return nil, nil, verr
	}

	days := make([]domain.CollectionDay, 0, len(occurrences))
	for _, date := range occurrences {
		days = append(days, domain.CollectionDay{
			ID:             utils.NewUUID(),
			RequestID:      requestID,
			TimeSlotID:     input.TimeSlotID,
			CollectionDate: date,
			CreatedAt:      now,
		})
	}
	return days, rec, nil
}
