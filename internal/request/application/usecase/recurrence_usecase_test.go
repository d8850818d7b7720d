package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastehub/internal/model"
	"wastehub/internal/request/application/ports/in"
	"wastehub/internal/request/domain"
)

func dailyRecurrence(active bool) *domain.RecurringCollection {
	return &domain.RecurringCollection{
		ID:         "rec-1",
		RequestID:  "req-1",
		Frequency:  model.FrequencyDaily,
		TimeSlotID: 2,
		StartDate:  time.Now().UTC().AddDate(0, 0, -10),
		IsActive:   active,
	}
}

func TestToggleRecurrence_ActivateMaterializesDays(t *testing.T) {
	var toggledActive bool
	var materialized []domain.CollectionDay

	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			req := pendingRequest()
			req.CollectionType = model.CollectionTypeRecurring
			return req, nil
		},
		findRecFn: func(_ context.Context, _ string) (*domain.RecurringCollection, error) {
			return dailyRecurrence(false), nil
		},
		setRecActiveFn: func(_ context.Context, _ string, active bool, futureDays []domain.CollectionDay) error {
			toggledActive = active
			materialized = futureDays
			return nil
		},
	}

	svc := NewToggleRecurrenceService(repo, &mockProfileRepo{client: clientProfile()}, testLogger())

	view, err := svc.Execute(context.Background(), in.ToggleRecurrenceInput{
		UserID:    "user-1",
		RequestID: "req-1",
		Active:    true,
	})

	require.NoError(t, err)
	assert.True(t, view.IsActive)
	assert.True(t, toggledActive)
	require.NotEmpty(t, materialized)
	for _, day := range materialized {
		assert.Equal(t, "req-1", day.RequestID)
		assert.Equal(t, int64(2), day.TimeSlotID)
		assert.NotEmpty(t, day.ID)
	}
}

func TestToggleRecurrence_DeactivateDropsFutureDays(t *testing.T) {
	var materialized []domain.CollectionDay

	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			req := pendingRequest()
			req.CollectionType = model.CollectionTypeRecurring
			return req, nil
		},
		findRecFn: func(_ context.Context, _ string) (*domain.RecurringCollection, error) {
			return dailyRecurrence(true), nil
		},
		setRecActiveFn: func(_ context.Context, _ string, _ bool, futureDays []domain.CollectionDay) error {
			materialized = futureDays
			return nil
		},
	}

	svc := NewToggleRecurrenceService(repo, &mockProfileRepo{client: clientProfile()}, testLogger())

	view, err := svc.Execute(context.Background(), in.ToggleRecurrenceInput{
		UserID:    "user-1",
		RequestID: "req-1",
		Active:    false,
	})

	require.NoError(t, err)
	assert.False(t, view.IsActive)
	assert.Empty(t, materialized)
}

func TestToggleRecurrence_ForeignRequestForbidden(t *testing.T) {
	repo := &mockRequestRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.CollectionRequest, error) {
			req := pendingRequest()
			req.ClientID = "client-2"
			return req, nil
		},
	}

	svc := NewToggleRecurrenceService(repo, &mockProfileRepo{client: clientProfile()}, testLogger())

	_, err := svc.Execute(context.Background(), in.ToggleRecurrenceInput{
		UserID:    "user-1",
		RequestID: "req-1",
		Active:    true,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
