package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastehub/internal/model"
	"wastehub/internal/rating/application/ports/in"
	"wastehub/internal/rating/domain"
	reqout "wastehub/internal/request/application/ports/out"
	reqdomain "wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("rating-test")
}

type mockRatingRepo struct {
	createFn   func(ctx context.Context, rating *domain.Rating) error
	updateFn   func(ctx context.Context, ratingID string, score int, comment string) error
	deleteFn   func(ctx context.Context, ratingID string) error
	findByIDFn func(ctx context.Context, ratingID string) (*domain.Rating, error)
}

func (m *mockRatingRepo) CreateAndRecompute(ctx context.Context, rating *domain.Rating) error {
	return m.createFn(ctx, rating)
}

func (m *mockRatingRepo) UpdateAndRecompute(ctx context.Context, ratingID string, score int, comment string) error {
	return m.updateFn(ctx, ratingID, score, comment)
}

func (m *mockRatingRepo) DeleteAndRecompute(ctx context.Context, ratingID string) error {
	return m.deleteFn(ctx, ratingID)
}

func (m *mockRatingRepo) FindByID(ctx context.Context, ratingID string) (*domain.Rating, error) {
	return m.findByIDFn(ctx, ratingID)
}

func (m *mockRatingRepo) FindByRequest(context.Context, string) (*domain.Rating, error) {
	return nil, domain.ErrRatingNotFound
}

func (m *mockRatingRepo) ListByCollector(context.Context, string) ([]domain.Rating, error) {
	return nil, nil
}

func (m *mockRatingRepo) ListByClient(context.Context, string) ([]domain.Rating, error) {
	return nil, nil
}

func (m *mockRatingRepo) CollectorStats(context.Context, string) (*domain.CollectorStats, error) {
	return nil, nil
}

type mockRequestReader struct {
	request *reqdomain.CollectionRequest
	err     error
}

func (m *mockRequestReader) FindByID(context.Context, string) (*reqdomain.CollectionRequest, error) {
	return m.request, m.err
}

type mockProfileRepo struct {
	client *reqout.ClientProfile
	err    error
}

func (m *mockProfileRepo) FindClientByUserID(context.Context, string) (*reqout.ClientProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.client, nil
}

func (m *mockProfileRepo) FindCollectorByUserID(context.Context, string) (*reqout.CollectorProfile, error) {
	return nil, reqdomain.ErrProfileNotFound
}

func (m *mockProfileRepo) FindClientUserID(context.Context, string) (string, error) {
	return "", reqdomain.ErrProfileNotFound
}

func (m *mockProfileRepo) FindCollectorUserID(context.Context, string) (string, error) {
	return "", reqdomain.ErrProfileNotFound
}

type mockPublisher struct {
	events []string
}

func (m *mockPublisher) PublishRequestEvent(_ context.Context, eventType string, _ reqout.RequestEventData) error {
	m.events = append(m.events, eventType)
	return nil
}

func completedRequest() *reqdomain.CollectionRequest {
	collectorID := "collector-1"
	return &reqdomain.CollectionRequest{
		ID:             "req-1",
		ClientID:       "client-1",
		CollectorID:    &collectorID,
		WasteTypeID:    1,
		DistrictID:     7,
		CollectionType: model.CollectionTypeOneTime,
		Status:         model.RequestStatusCompleted,
	}
}

func ownerProfile() *reqout.ClientProfile {
	return &reqout.ClientProfile{ClientID: "client-1", UserID: "user-1", DistrictID: 7}
}

func TestSubmitRating_Completed(t *testing.T) {
	var saved *domain.Rating
	ratingRepo := &mockRatingRepo{
		createFn: func(_ context.Context, rating *domain.Rating) error {
			saved = rating
			return nil
		},
	}
	publisher := &mockPublisher{}

	svc := NewSubmitRatingService(
		ratingRepo,
		&mockRequestReader{request: completedRequest()},
		&mockProfileRepo{client: ownerProfile()},
		publisher,
		testLogger(),
	)

	rating, err := svc.Execute(context.Background(), in.SubmitRatingInput{
		UserID:    "user-1",
		RequestID: "req-1",
		Score:     5,
		Comment:   "все забрали вовремя",
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEmpty(t, rating.ID)
	assert.Equal(t, "client-1", rating.ClientID)
	assert.Equal(t, "collector-1", rating.CollectorID)
	assert.Equal(t, 5, rating.Score)
	assert.Equal(t, []string{model.EventRatingChanged}, publisher.events)
}

func TestSubmitRating_ScoreOutOfRange(t *testing.T) {
	svc := NewSubmitRatingService(&mockRatingRepo{}, &mockRequestReader{}, &mockProfileRepo{}, &mockPublisher{}, testLogger())

	for _, score := range []int{0, 6, -1} {
		_, err := svc.Execute(context.Background(), in.SubmitRatingInput{
			UserID:    "user-1",
			RequestID: "req-1",
			Score:     score,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidScore, "score %d", score)
	}
}

func TestSubmitRating_RequestNotCompleted(t *testing.T) {
	req := completedRequest()
	req.Status = model.RequestStatusInProgress

	svc := NewSubmitRatingService(
		&mockRatingRepo{},
		&mockRequestReader{request: req},
		&mockProfileRepo{client: ownerProfile()},
		&mockPublisher{},
		testLogger(),
	)

	_, err := svc.Execute(context.Background(), in.SubmitRatingInput{
		UserID:    "user-1",
		RequestID: "req-1",
		Score:     4,
	})

	assert.ErrorIs(t, err, domain.ErrRequestNotCompleted)
}

func TestSubmitRating_ForeignRequestForbidden(t *testing.T) {
	req := completedRequest()
	req.ClientID = "client-2"

	svc := NewSubmitRatingService(
		&mockRatingRepo{},
		&mockRequestReader{request: req},
		&mockProfileRepo{client: ownerProfile()},
		&mockPublisher{},
		testLogger(),
	)

	_, err := svc.Execute(context.Background(), in.SubmitRatingInput{
		UserID:    "user-1",
		RequestID: "req-1",
		Score:     4,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubmitRating_Duplicate(t *testing.T) {
	ratingRepo := &mockRatingRepo{
		createFn: func(context.Context, *domain.Rating) error {
			return domain.ErrDuplicateRating
		},
	}

	svc := NewSubmitRatingService(
		ratingRepo,
		&mockRequestReader{request: completedRequest()},
		&mockProfileRepo{client: ownerProfile()},
		&mockPublisher{},
		testLogger(),
	)

	_, err := svc.Execute(context.Background(), in.SubmitRatingInput{
		UserID:    "user-1",
		RequestID: "req-1",
		Score:     3,
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateRating)
}

func TestUpdateRating_ForeignRatingForbidden(t *testing.T) {
	ratingRepo := &mockRatingRepo{
		findByIDFn: func(context.Context, string) (*domain.Rating, error) {
			return &domain.Rating{ID: "rating-1", ClientID: "client-2", RequestID: "req-1", Score: 4}, nil
		},
	}

	svc := NewUpdateRatingService(ratingRepo, &mockProfileRepo{client: ownerProfile()}, testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateRatingInput{
		UserID:   "user-1",
		RatingID: "rating-1",
		Score:    2,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteRating_Own(t *testing.T) {
	deleted := false
	ratingRepo := &mockRatingRepo{
		findByIDFn: func(context.Context, string) (*domain.Rating, error) {
			return &domain.Rating{ID: "rating-1", ClientID: "client-1", RequestID: "req-1", Score: 4}, nil
		},
		deleteFn: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}

	svc := NewDeleteRatingService(ratingRepo, &mockProfileRepo{client: ownerProfile()}, testLogger())

	err := svc.Execute(context.Background(), in.DeleteRatingInput{
		UserID:   "user-1",
		RatingID: "rating-1",
	})

	require.NoError(t, err)
	assert.True(t, deleted)
}
