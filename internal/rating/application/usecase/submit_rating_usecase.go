package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wastehub/internal/model"
	"wastehub/internal/rating/application/ports/in"
	"wastehub/internal/rating/application/ports/out"
	"wastehub/internal/rating/domain"
	reqout "wastehub/internal/request/application/ports/out"
	reqdomain "wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/utils"
)

// SubmitRatingService реализует SubmitRatingUseCase.
// Оценка и пересчет рейтинга сборщика выполняются в одной транзакции.
type SubmitRatingService struct {
	ratingRepo  out.RatingRepository
	requestRepo out.RequestReader
	profileRepo reqout.ProfileRepository
	publisher   reqout.EventPublisher
	log         *logger.Logger
}

// NewSubmitRatingService создает новый сервис оценки
func NewSubmitRatingService(
	ratingRepo out.RatingRepository,
	requestRepo out.RequestReader,
	profileRepo reqout.ProfileRepository,
	publisher reqout.EventPublisher,
	log *logger.Logger,
) *SubmitRatingService {
	return &SubmitRatingService{
		ratingRepo:  ratingRepo,
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		publisher:   publisher,
		log:         log,
	}
}

// Execute создает оценку выполненной заявки
func (s *SubmitRatingService) Execute(ctx context.Context, input in.SubmitRatingInput) (*domain.Rating, error) {
	if err := domain.ValidateScore(input.Score); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindClientByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, reqdomain.ErrProfileNotFound) {
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
	if req.Status != model.RequestStatusCompleted || req.CollectorID == nil {
		return nil, domain.ErrRequestNotCompleted
	}

	now := time.Now().UTC()
	rating := &domain.Rating{
		ID:          utils.NewUUID(),
		RequestID:   req.ID,
		ClientID:    profile.ClientID,
		CollectorID: *req.CollectorID,
		Score:       input.Score,
		Comment:     input.Comment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ratingRepo.CreateAndRecompute(ctx, rating); err != nil {
		if errors.Is(err, domain.ErrDuplicateRating) {
			return nil, domain.ErrDuplicateRating
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:    "rating_submitted",
		Message:   fmt.Sprintf("score=%d", input.Score),
		RequestID: req.ID,
		Additional: map[string]any{
			"collector_id": rating.CollectorID,
		},
	})

	s.publishRatingChanged(ctx, rating)
	return rating, nil
}

func (s *SubmitRatingService) publishRatingChanged(ctx context.Context, rating *domain.Rating) {
	collectorID := rating.CollectorID
	data := reqout.RequestEventData{
		RequestID:   rating.RequestID,
		ClientID:    rating.ClientID,
		CollectorID: &collectorID,
		Status:      model.RequestStatusCompleted,
		AdditionalData: map[string]interface{}{
			"score": rating.Score,
		},
	}
	if err := s.publisher.PublishRequestEvent(ctx, model.EventRatingChanged, data); err != nil {
		s.log.Error(logger.Entry{
			Action:    "publish_rating_changed_failed",
			Message:   err.Error(),
			RequestID: rating.RequestID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
	}
}
