package usecase

import (
	"context"
	"errors"
	"fmt"

	"wastehub/internal/rating/application/ports/in"
	"wastehub/internal/rating/application/ports/out"
	"wastehub/internal/rating/domain"
	reqout "wastehub/internal/request/application/ports/out"
	reqdomain "wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
)

// UpdateRatingService реализует UpdateRatingUseCase
type UpdateRatingService struct {
	ratingRepo  out.RatingRepository
	profileRepo reqout.ProfileRepository
	log         *logger.Logger
}

// NewUpdateRatingService создает новый сервис изменения оценки
func NewUpdateRatingService(ratingRepo out.RatingRepository, profileRepo reqout.ProfileRepository, log *logger.Logger) *UpdateRatingService {
	return &UpdateRatingService{
		ratingRepo:  ratingRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute меняет свою оценку, рейтинг сборщика пересчитывается в той же транзакции
func (s *UpdateRatingService) Execute(ctx context.Context, input in.UpdateRatingInput) (*domain.Rating, error) {
	if err := domain.ValidateScore(input.Score); err != nil {
		return nil, err
	}

	rating, err := s.ownRating(ctx, input.UserID, input.RatingID)
	if err != nil {
		return nil, err
	}

	if err := s.ratingRepo.UpdateAndRecompute(ctx, input.RatingID, input.Score, input.Comment); err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:    "rating_updated",
		Message:   fmt.Sprintf("score=%d", input.Score),
		RequestID: rating.RequestID,
	})

	rating.Score = input.Score
	rating.Comment = input.Comment
	return rating, nil
}

func (s *UpdateRatingService) ownRating(ctx context.Context, userID, ratingID string) (*domain.Rating, error) {
	return ownRating(ctx, s.ratingRepo, s.profileRepo, userID, ratingID)
}

// DeleteRatingService реализует DeleteRatingUseCase
type DeleteRatingService struct {
	ratingRepo  out.RatingRepository
	profileRepo reqout.ProfileRepository
	log         *logger.Logger
}

// NewDeleteRatingService создает новый сервис удаления оценки
func NewDeleteRatingService(ratingRepo out.RatingRepository, profileRepo reqout.ProfileRepository, log *logger.Logger) *DeleteRatingService {
	return &DeleteRatingService{
		ratingRepo:  ratingRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Execute удаляет свою оценку, рейтинг сборщика пересчитывается в той же транзакции
func (s *DeleteRatingService) Execute(ctx context.Context, input in.DeleteRatingInput) error {
	rating, err := ownRating(ctx, s.ratingRepo, s.profileRepo, input.UserID, input.RatingID)
	if err != nil {
		return err
	}

	if err := s.ratingRepo.DeleteAndRecompute(ctx, input.RatingID); err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:    "rating_deleted",
		RequestID: rating.RequestID,
	})
	return nil
}

// ownRating находит оценку и проверяет, что она принадлежит пользователю
func ownRating(ctx context.Context, ratingRepo out.RatingRepository, profileRepo reqout.ProfileRepository, userID, ratingID string) (*domain.Rating, error) {
	profile, err := profileRepo.FindClientByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, reqdomain.ErrProfileNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("find client profile: %w", err)
	}

	rating, err := ratingRepo.FindByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if rating.ClientID != profile.ClientID {
		return nil, domain.ErrForbidden
	}
	return rating, nil
}

// ListRatingsService реализует ListRatingsUseCase
type ListRatingsService struct {
	ratingRepo out.RatingRepository
	log        *logger.Logger
}

// NewListRatingsService создает новый сервис списков оценок
func NewListRatingsService(ratingRepo out.RatingRepository, log *logger.Logger) *ListRatingsService {
	return &ListRatingsService{
		ratingRepo: ratingRepo,
		log:        log,
	}
}

// Execute возвращает оценки сборщика либо клиента
func (s *ListRatingsService) Execute(ctx context.Context, input in.ListRatingsInput) ([]domain.Rating, error) {
	switch {
	case input.CollectorID != "":
		return s.ratingRepo.ListByCollector(ctx, input.CollectorID)
	case input.ClientID != "":
		return s.ratingRepo.ListByClient(ctx, input.ClientID)
	default:
		return nil, domain.ErrRatingNotFound
	}
}

// CollectorStatsService реализует CollectorStatsUseCase
type CollectorStatsService struct {
	ratingRepo out.RatingRepository
	log        *logger.Logger
}

// NewCollectorStatsService создает новый сервис статистики сборщика
func NewCollectorStatsService(ratingRepo out.RatingRepository, log *logger.Logger) *CollectorStatsService {
	return &CollectorStatsService{
		ratingRepo: ratingRepo,
		log:        log,
	}
}

// Execute возвращает агрегированную статистику оценок сборщика
func (s *CollectorStatsService) Execute(ctx context.Context, collectorID string) (*domain.CollectorStats, error) {
	return s.ratingRepo.CollectorStats(ctx, collectorID)
}
