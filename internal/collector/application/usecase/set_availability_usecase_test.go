package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastehub/internal/collector/application/ports/in"
	"wastehub/internal/collector/application/ports/out"
	"wastehub/internal/collector/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/user"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("collector-test")
}

// mockCollectorRepo — ручной мок CollectorRepository
type mockCollectorRepo struct {
	createFn          func(ctx context.Context, u *user.User, districtID int64, photoURL string) (string, error)
	findByIDFn        func(ctx context.Context, collectorID string) (*domain.Collector, error)
	findByUserIDFn    func(ctx context.Context, userID string) (*domain.Collector, error)
	setAvailabilityFn func(ctx context.Context, collectorID string, available bool) ([]domain.CancelledRequest, error)
	districtExists    bool
}

func (m *mockCollectorRepo) Create(ctx context.Context, u *user.User, districtID int64, photoURL string) (string, error) {
	return m.createFn(ctx, u, districtID, photoURL)
}

func (m *mockCollectorRepo) FindByID(ctx context.Context, collectorID string) (*domain.Collector, error) {
	return m.findByIDFn(ctx, collectorID)
}

func (m *mockCollectorRepo) FindByUserID(ctx context.Context, userID string) (*domain.Collector, error) {
	return m.findByUserIDFn(ctx, userID)
}

func (m *mockCollectorRepo) List(context.Context, out.CollectorFilter) ([]domain.Collector, error) {
	return nil, nil
}

func (m *mockCollectorRepo) UpdateProfile(context.Context, string, out.ProfileUpdate) (int64, error) {
	return 0, nil
}

func (m *mockCollectorRepo) SetAvailability(ctx context.Context, collectorID string, available bool) ([]domain.CancelledRequest, error) {
	return m.setAvailabilityFn(ctx, collectorID, available)
}

func (m *mockCollectorRepo) ListAvailableByDistrict(context.Context, int64) ([]domain.Collector, error) {
	return nil, nil
}

func (m *mockCollectorRepo) ListAvailableUserIDs(context.Context, int64) ([]string, error) {
	return nil, nil
}

func (m *mockCollectorRepo) ListRequests(context.Context, string, string) ([]domain.RequestSummary, error) {
	return nil, nil
}

func (m *mockCollectorRepo) DistrictExists(context.Context, int64) (bool, error) {
	return m.districtExists, nil
}

// mockEventPublisher запоминает опубликованные события
type mockEventPublisher struct {
	availability []out.AvailabilityChangedEvent
	cancelled    []out.RequestCancelledEvent
}

func (m *mockEventPublisher) PublishAvailabilityChanged(_ context.Context, event out.AvailabilityChangedEvent) error {
	m.availability = append(m.availability, event)
	return nil
}

func (m *mockEventPublisher) PublishRequestCancelled(_ context.Context, event out.RequestCancelledEvent) error {
	m.cancelled = append(m.cancelled, event)
	return nil
}

func ownCollector() *domain.Collector {
	return &domain.Collector{
		CollectorID: "collector-1",
		UserID:      "user-1",
		DistrictID:  7,
		IsAvailable: true,
	}
}

func TestSetAvailability_OfflineCancelsPending(t *testing.T) {
	repo := &mockCollectorRepo{
		findByUserIDFn: func(context.Context, string) (*domain.Collector, error) {
			return ownCollector(), nil
		},
		setAvailabilityFn: func(_ context.Context, _ string, available bool) ([]domain.CancelledRequest, error) {
			require.False(t, available)
			return []domain.CancelledRequest{
				{RequestID: "req-1", ClientID: "client-1"},
				{RequestID: "req-2", ClientID: "client-2"},
			}, nil
		},
	}
	publisher := &mockEventPublisher{}

	svc := NewSetAvailabilityService(repo, publisher, testLogger())

	output, err := svc.Execute(context.Background(), in.SetAvailabilityInput{
		UserID:      "user-1",
		Role:        model.RoleCollector,
		CollectorID: "collector-1",
		Available:   false,
	})

	require.NoError(t, err)
	assert.False(t, output.IsAvailable)
	assert.Equal(t, []string{"req-1", "req-2"}, output.CancelledRequests)

	require.Len(t, publisher.availability, 1)
	assert.Equal(t, []string{"req-1", "req-2"}, publisher.availability[0].CancelledRequests)

	require.Len(t, publisher.cancelled, 2)
	assert.Equal(t, "client-1", publisher.cancelled[0].ClientID)
	assert.Equal(t, "collector-1", publisher.cancelled[0].CollectorID)
}

func TestSetAvailability_OnlineCancelsNothing(t *testing.T) {
	repo := &mockCollectorRepo{
		findByUserIDFn: func(context.Context, string) (*domain.Collector, error) {
			return ownCollector(), nil
		},
		setAvailabilityFn: func(context.Context, string, bool) ([]domain.CancelledRequest, error) {
			return nil, nil
		},
	}
	publisher := &mockEventPublisher{}

	svc := NewSetAvailabilityService(repo, publisher, testLogger())

	output, err := svc.Execute(context.Background(), in.SetAvailabilityInput{
		UserID:      "user-1",
		Role:        model.RoleCollector,
		CollectorID: "collector-1",
		Available:   true,
	})

	require.NoError(t, err)
	assert.True(t, output.IsAvailable)
	assert.Empty(t, output.CancelledRequests)
	assert.Empty(t, publisher.cancelled)
	require.Len(t, publisher.availability, 1)
}

func TestSetAvailability_ForeignCollectorForbidden(t *testing.T) {
	repo := &mockCollectorRepo{
		findByUserIDFn: func(context.Context, string) (*domain.Collector, error) {
			return ownCollector(), nil
		},
	}

	svc := NewSetAvailabilityService(repo, &mockEventPublisher{}, testLogger())

	_, err := svc.Execute(context.Background(), in.SetAvailabilityInput{
		UserID:      "user-1",
		Role:        model.RoleCollector,
		CollectorID: "collector-2",
		Available:   false,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetAvailability_AdminTogglesAnyCollector(t *testing.T) {
	repo := &mockCollectorRepo{
		setAvailabilityFn: func(context.Context, string, bool) ([]domain.CancelledRequest, error) {
			return nil, nil
		},
	}

	svc := NewSetAvailabilityService(repo, &mockEventPublisher{}, testLogger())

	output, err := svc.Execute(context.Background(), in.SetAvailabilityInput{
		UserID:      "admin-1",
		Role:        model.RoleAdmin,
		CollectorID: "collector-9",
		Available:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, "collector-9", output.CollectorID)
}
