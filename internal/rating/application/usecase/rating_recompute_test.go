package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastehub/internal/rating/application/ports/in"
	"wastehub/internal/rating/domain"
	reqdomain "wastehub/internal/request/domain"
)

// memoryRatingRepo держит оценки в памяти и пересчитывает рейтинг сборщика
// как чистое среднее по текущим строкам — так же, как это делает SQL AVG
type memoryRatingRepo struct {
	ratings   []domain.Rating
	collector float64
}

func (m *memoryRatingRepo) recompute() {
	if len(m.ratings) == 0 {
		m.collector = 0
		return
	}
	sum := 0
	for _, r := range m.ratings {
		sum += r.Score
	}
	m.collector = float64(sum) / float64(len(m.ratings))
}

func (m *memoryRatingRepo) CreateAndRecompute(_ context.Context, rating *domain.Rating) error {
	for _, r := range m.ratings {
		if r.RequestID == rating.RequestID {
			return domain.ErrDuplicateRating
		}
	}
	m.ratings = append(m.ratings, *rating)
	m.recompute()
	return nil
}

func (m *memoryRatingRepo) UpdateAndRecompute(_ context.Context, ratingID string, score int, comment string) error {
	for i := range m.ratings {
		if m.ratings[i].ID == ratingID {
			m.ratings[i].Score = score
			m.ratings[i].Comment = comment
			m.recompute()
			return nil
		}
	}
	return domain.ErrRatingNotFound
}

func (m *memoryRatingRepo) DeleteAndRecompute(_ context.Context, ratingID string) error {
	for i := range m.ratings {
		if m.ratings[i].ID == ratingID {
			m.ratings = append(m.ratings[:i], m.ratings[i+1:]...)
			m.recompute()
			return nil
		}
	}
	return domain.ErrRatingNotFound
}

func (m *memoryRatingRepo) FindByID(_ context.Context, ratingID string) (*domain.Rating, error) {
	for _, r := range m.ratings {
		if r.ID == ratingID {
			found := r
			return &found, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

func (m *memoryRatingRepo) FindByRequest(_ context.Context, requestID string) (*domain.Rating, error) {
	for _, r := range m.ratings {
		if r.RequestID == requestID {
			found := r
			return &found, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

func (m *memoryRatingRepo) ListByCollector(context.Context, string) ([]domain.Rating, error) {
	return m.ratings, nil
}

func (m *memoryRatingRepo) ListByClient(context.Context, string) ([]domain.Rating, error) {
	return m.ratings, nil
}

func (m *memoryRatingRepo) CollectorStats(context.Context, string) (*domain.CollectorStats, error) {
	perScore := make(map[int]int)
	for _, r := range m.ratings {
		perScore[r.Score]++
	}
	return &domain.CollectorStats{
		Total:    len(m.ratings),
		Average:  m.collector,
		PerScore: perScore,
	}, nil
}

func submitScore(t *testing.T, svc *SubmitRatingService, requestID string, score int) *domain.Rating {
	t.Helper()
	rating, err := svc.Execute(context.Background(), in.SubmitRatingInput{
		UserID:    "user-1",
		RequestID: requestID,
		Score:     score,
	})
	require.NoError(t, err)
	return rating
}

func TestRatingRecompute_AverageIsPureAggregate(t *testing.T) {
	repo := &memoryRatingRepo{}
	requests := map[string]*reqdomain.CollectionRequest{}
	reader := &mockRequestReader{}

	svc := NewSubmitRatingService(repo, reader, &mockProfileRepo{client: ownerProfile()}, &mockPublisher{}, testLogger())

	for _, id := range []string{"req-1", "req-2"} {
		req := completedRequest()
		req.ID = id
		requests[id] = req
	}

	reader.request = requests["req-1"]
	first := submitScore(t, svc, "req-1", 4)

	reader.request = requests["req-2"]
	second := submitScore(t, svc, "req-2", 5)

	assert.Equal(t, 4.5, repo.collector)

	// изменение оценки пересчитывает среднее по текущим строкам
	updateSvc := NewUpdateRatingService(repo, &mockProfileRepo{client: ownerProfile()}, testLogger())
	_, err := updateSvc.Execute(context.Background(), in.UpdateRatingInput{
		UserID:   "user-1",
		RatingID: second.ID,
		Score:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, repo.collector)

	// удаление одной из оценок возвращает среднее к оставшимся
	deleteSvc := NewDeleteRatingService(repo, &mockProfileRepo{client: ownerProfile()}, testLogger())
	require.NoError(t, deleteSvc.Execute(context.Background(), in.DeleteRatingInput{
		UserID:   "user-1",
		RatingID: second.ID,
	}))
	assert.Equal(t, 4.0, repo.collector)

	// без оценок рейтинг обнуляется
	require.NoError(t, deleteSvc.Execute(context.Background(), in.DeleteRatingInput{
		UserID:   "user-1",
		RatingID: first.ID,
	}))
	assert.Equal(t, 0.0, repo.collector)

	stats, err := repo.CollectorStats(context.Background(), "collector-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}
