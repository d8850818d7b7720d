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

func TestCancelRequest_Pending(t *testing.T) {
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

	svc := NewCancelRequestService(repo, &mockProfileRepo{client: clientProfile()}, publisher, testLogger())

	output, err := svc.Execute(context.Background(), in.CancelRequestInput{
		UserID:    "user-1",
		RequestID: "req-1",
	})

	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusCancelled, output.Status)
	assert.Equal(t, model.RequestStatusPending, applied.FromStatus)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, model.EventRequestCancelled, publisher.events[0].eventType)
}

func TestCancelRequest_AcceptedRejected(t *testing.T) {
	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return assignedRequest(model.RequestStatusAccepted), nil
		},
	}

	svc := NewCancelRequestService(repo, &mockProfileRepo{client: clientProfile()}, &mockPublisher{}, testLogger())

	_, err := svc.Execute(context.Background(), in.CancelRequestInput{
		UserID:    "user-1",
		RequestID: "req-1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelRequest_ForeignRequestForbidden(t *testing.T) {
	req := pendingRequest()
	req.ClientID = "client-2"

	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return req, nil
		},
	}

	svc := NewCancelRequestService(repo, &mockProfileRepo{client: clientProfile()}, &mockPublisher{}, testLogger())

	_, err := svc.Execute(context.Background(), in.CancelRequestInput{
		UserID:    "user-1",
		RequestID: "req-1",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteRequest_PendingByOwner(t *testing.T) {
	deleted := false
	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return pendingRequest(), nil
		},
		deleteFn: func(_ context.Context, _ string) (int64, error) {
			deleted = true
			return 1, nil
		},
	}

	svc := NewDeleteRequestService(repo, &mockProfileRepo{client: clientProfile()}, testLogger())

	err := svc.Execute(context.Background(), in.DeleteRequestInput{
		UserID:    "user-1",
		Role:      model.RoleClient,
		RequestID: "req-1",
	})

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteRequest_ActiveRejected(t *testing.T) {
	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return assignedRequest(model.RequestStatusInProgress), nil
		},
	}

	svc := NewDeleteRequestService(repo, &mockProfileRepo{client: clientProfile()}, testLogger())

	err := svc.Execute(context.Background(), in.DeleteRequestInput{
		UserID:    "user-1",
		Role:      model.RoleClient,
		RequestID: "req-1",
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteRequest_AdminBypassesOwnership(t *testing.T) {
	req := pendingRequest()
	req.ClientID = "client-2"

	deleted := false
	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			return req, nil
		},
		deleteFn: func(_ context.Context, _ string) (int64, error) {
			deleted = true
			return 1, nil
		},
	}

	svc := NewDeleteRequestService(repo, &mockProfileRepo{}, testLogger())

	err := svc.Execute(context.Background(), in.DeleteRequestInput{
		UserID:    "admin-1",
		Role:      model.RoleAdmin,
		RequestID: "req-1",
	})

	require.NoError(t, err)
	assert.True(t, deleted)
}
