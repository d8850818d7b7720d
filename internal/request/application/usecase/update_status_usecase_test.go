package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastehub/internal/model"
	"wastehub/internal/request/application/ports/in"
	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/request/domain"
)

func collectorProfile(available bool) *out.CollectorProfile {
	return &out.CollectorProfile{
		CollectorID: "collector-1",
		UserID:      "user-2",
		DistrictID:  7,
		IsAvailable: available,
	}
}

func pendingRequest() *domain.CollectionRequest {
	return &domain.CollectionRequest{
		ID:             "req-1",
		ClientID:       "client-1",
		WasteTypeID:    1,
		DistrictID:     7,
		CollectionType: model.CollectionTypeOneTime,
		Status:         model.RequestStatusPending,
	}
}

func assignedRequest(status string) *domain.CollectionRequest {
	collectorID := "collector-1"
	req := pendingRequest()
	req.Status = status
	req.CollectorID = &collectorID
	return req
}

func TestUpdateStatus_Accept(t *testing.T) {
	var applied out.StatusChange

	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return pendingRequest(), nil
		},
		updateStatusFn: func(_ context.Context, change out.StatusChange) (int64, error) {
			applied = change
			return 1, nil
		},
	}
	publisher := &mockPublisher{}
	notifier := newMockNotifier()
	profiles := &mockProfileRepo{collector: collectorProfile(true), clientUserID: "user-1"}

	svc := NewUpdateStatusService(repo, profiles, publisher, notifier, testLogger())

	output, err := svc.Execute(context.Background(), in.UpdateStatusInput{
		UserID:    "user-2",
		RequestID: "req-1",
		NewStatus: model.RequestStatusAccepted,
	})

	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusAccepted, output.Status)

	// переход защищен проверкой исходного статуса
	assert.Equal(t, model.RequestStatusPending, applied.FromStatus)
	require.NotNil(t, applied.CollectorID)
	assert.Equal(t, "collector-1", *applied.CollectorID)
	assert.Nil(t, applied.CompletedDate)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, model.EventRequestAccepted, publisher.events[0].eventType)
	assert.Len(t, notifier.userNotifications["user-1"], 1)
}

func TestUpdateStatus_AcceptUnavailableCollector(t *testing.T) {
	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return pendingRequest(), nil
		},
	}
	profiles := &mockProfileRepo{collector: collectorProfile(false)}

	svc := NewUpdateStatusService(repo, profiles, &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateStatusInput{
		UserID:    "user-2",
		RequestID: "req-1",
		NewStatus: model.RequestStatusAccepted,
	})

	assert.ErrorIs(t, err, domain.ErrCollectorUnavailable)
}

func TestUpdateStatus_CompleteByAssignedCollector(t *testing.T) {
	var applied out.StatusChange

	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return assignedRequest(model.RequestStatusInProgress), nil
		},
		updateStatusFn: func(_ context.Context, change out.StatusChange) (int64, error) {
			applied = change
			return 1, nil
		},
	}
	profiles := &mockProfileRepo{collector: collectorProfile(true), clientUserID: "user-1"}

	svc := NewUpdateStatusService(repo, profiles, &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateStatusInput{
		UserID:    "user-2",
		RequestID: "req-1",
		NewStatus: model.RequestStatusCompleted,
	})

	require.NoError(t, err)
	require.NotNil(t, applied.CompletedDate)
	assert.Equal(t, model.RequestStatusInProgress, applied.FromStatus)
}

func TestUpdateStatus_ForeignCollectorCannotProgress(t *testing.T) {
	otherCollector := "collector-2"
	req := pendingRequest()
	req.Status = model.RequestStatusAccepted
	req.CollectorID = &otherCollector

	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return req, nil
		},
	}
	profiles := &mockProfileRepo{collector: collectorProfile(true)}

	svc := NewUpdateStatusService(repo, profiles, &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateStatusInput{
		UserID:    "user-2",
		RequestID: "req-1",
		NewStatus: model.RequestStatusInProgress,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return pendingRequest(), nil
		},
	}
	profiles := &mockProfileRepo{collector: collectorProfile(true)}

	svc := NewUpdateStatusService(repo, profiles, &mockPublisher{}, newMockNotifier(), testLogger())

	// PENDING -> COMPLETED пропускает ACCEPTED
	_, err := svc.Execute(context.Background(), in.UpdateStatusInput{
		UserID:    "user-2",
		RequestID: "req-1",
		NewStatus: model.RequestStatusCompleted,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_ConcurrentChangeConflicts(t *testing.T) {
	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return pendingRequest(), nil
		},
		updateStatusFn: func(_ context.Context, _ out.StatusChange) (int64, error) {
			// статус изменился между чтением и UPDATE
			return 0, nil
		},
	}
	profiles := &mockProfileRepo{collector: collectorProfile(true)}

	svc := NewUpdateStatusService(repo, profiles, &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateStatusInput{
		UserID:    "user-2",
		RequestID: "req-1",
		NewStatus: model.RequestStatusAccepted,
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_NonCollectorForbidden(t *testing.T) {
	profiles := &mockProfileRepo{err: domain.ErrProfileNotFound}

	svc := NewUpdateStatusService(&mockRequestRepo{}, profiles, &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateStatusInput{
		UserID:    "user-1",
		RequestID: "req-1",
		NewStatus: model.RequestStatusAccepted,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
