package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wastehub/internal/request/application/ports/in"
	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/utils"
)

// ToggleRecurrenceService реализует ToggleRecurrenceUseCase
type ToggleRecurrenceService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	log         *logger.Logger
}

// NewToggleRecurrenceService создает новый сервис переключения правила
func NewToggleRecurrenceService(requestRepo out.RequestRepository, profileRepo out.ProfileRepository, log *logger.Logger) *ToggleRecurrenceService {
	return &ToggleRecurrenceService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute включает или выключает правило повторения заявки.
// При выключении будущие даты удаляются, при включении — материализуются заново.
func (s *ToggleRecurrenceService) Execute(ctx context.Context, input in.ToggleRecurrenceInput) (*domain.RecurrenceView, error) {
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

	rec, err := s.requestRepo.FindRecurrence(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	var futureDays []domain.CollectionDay
	if input.Active && !rec.IsActive {
		now := time.Now().UTC()
		for _, date := range domain.ExpandOccurrences(rec, now) {
			futureDays = append(futureDays, domain.CollectionDay{
				ID:             utils.NewUUID(),
				RequestID:      input.RequestID,
				TimeSlotID:     rec.TimeSlotID,
				CollectionDate: date,
				CreatedAt:      now,
			})
		}
	}

	if err := s.requestRepo.SetRecurrenceActive(ctx, input.RequestID, input.Active, futureDays); err != nil {
		return nil, fmt.Errorf("toggle recurrence: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:    "recurrence_toggled",
		Message:   fmt.Sprintf("active=%t", input.Active),
		RequestID: input.RequestID,
	})

	rec.IsActive = input.Active
	return &domain.RecurrenceView{
		ID:         rec.ID,
		Frequency:  rec.Frequency,
		DayOfWeek:  rec.DayOfWeek,
		DayOfMonth: rec.DayOfMonth,
		StartDate:  rec.StartDate,
		EndDate:    rec.EndDate,
		IsActive:   rec.IsActive,
	}, nil
}

// GetRecurrenceService реализует GetRecurrenceUseCase
type GetRecurrenceService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	log         *logger.Logger
}

// NewGetRecurrenceService создает новый сервис получения правила
func NewGetRecurrenceService(requestRepo out.RequestRepository, profileRepo out.ProfileRepository, log *logger.Logger) *GetRecurrenceService {
	return &GetRecurrenceService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute возвращает правило повторения заявки клиента
func (s *GetRecurrenceService) Execute(ctx context.Context, input in.GetRecurrenceInput) (*domain.RecurrenceView, error) {
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

	rec, err := s.requestRepo.FindRecurrence(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	return &domain.RecurrenceView{
		ID:         rec.ID,
		Frequency:  rec.Frequency,
		DayOfWeek:  rec.DayOfWeek,
		DayOfMonth: rec.DayOfMonth,
		StartDate:  rec.StartDate,
		EndDate:    rec.EndDate,
		IsActive:   rec.IsActive,
	}, nil
}

// ListRecurrencesService реализует ListRecurrencesUseCase
type ListRecurrencesService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	log         *logger.Logger
}

// NewListRecurrencesService создает новый сервис списка правил
func NewListRecurrencesService(requestRepo out.RequestRepository, profileRepo out.ProfileRepository, log *logger.Logger) *ListRecurrencesService {
	return &ListRecurrencesService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute возвращает правила повторения всех заявок клиента
func (s *ListRecurrencesService) Execute(ctx context.Context, input in.ListRecurrencesInput) ([]domain.RecurrenceView, error) {
	profile, err := s.profileRepo.FindClientByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find client profile: %w", err)
	}

	recs, err := s.requestRepo.ListRecurrences(ctx, profile.ClientID)
	if err != nil {
		return nil, fmt.Errorf("list recurrences: %w", err)
	}

	views := make([]domain.RecurrenceView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, domain.RecurrenceView{
			ID:         rec.ID,
			Frequency:  rec.Frequency,
			DayOfWeek:  rec.DayOfWeek,
			DayOfMonth: rec.DayOfMonth,
			StartDate:  rec.StartDate,
			EndDate:    rec.EndDate,
			IsActive:   rec.IsActive,
		})
	}
	return views, nil
}

// UpcomingCollectionsService реализует UpcomingCollectionsUseCase
type UpcomingCollectionsService struct {
	requestRepo out.RequestRepository
	profileRepo out.ProfileRepository
	log         *logger.Logger
}

// NewUpcomingCollectionsService создает новый сервис предстоящих вывозов
func NewUpcomingCollectionsService(requestRepo out.RequestRepository, profileRepo out.ProfileRepository, log *logger.Logger) *UpcomingCollectionsService {
	return &UpcomingCollectionsService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute возвращает предстоящие вывозы клиента на указанном горизонте
func (s *UpcomingCollectionsService) Execute(ctx context.Context, input in.UpcomingCollectionsInput) ([]domain.UpcomingCollection, error) {
	profile, err := s.profileRepo.FindClientByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find client profile: %w", err)
	}

	days := input.Days
	if days <= 0 {
		days = 30
	}
	if days > domain.MaterializationHorizonDays {
		days = domain.MaterializationHorizonDays
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, days)

	upcoming, err := s.requestRepo.ListUpcomingDays(ctx, profile.ClientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list upcoming collections: %w", err)
	}
	return upcoming, nil
}
