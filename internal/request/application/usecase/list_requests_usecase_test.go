package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastehub/internal/model"
	"wastehub/internal/request/application/ports/in"
	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/request/domain"
)

func TestListRequests_AdminPassesAllFilters(t *testing.T) {
	var applied out.RequestFilter
	repo := &mockRequestRepo{
		listFn: func(_ context.Context, filter out.RequestFilter) ([]domain.RequestView, error) {
			applied = filter
			return []domain.RequestView{{ID: "req-1"}}, nil
		},
	}

	svc := NewListRequestsService(repo, &mockProfileRepo{}, testLogger())

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	output, err := svc.Execute(context.Background(), in.ListRequestsInput{
		UserID:     "admin-1",
		Role:       model.RoleAdmin,
		Status:     model.RequestStatusPending,
		Type:       model.CollectionTypeOneTime,
		DistrictID: 7,
		CityID:     2,
		Date:       date,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, model.RequestStatusPending, applied.Status)
	assert.Equal(t, model.CollectionTypeOneTime, applied.Type)
	assert.Equal(t, int64(7), applied.DistrictID)
	assert.Equal(t, int64(2), applied.CityID)
	assert.Equal(t, date, applied.Date)
	assert.Empty(t, applied.ClientID)
	assert.Empty(t, applied.CollectorID)
}

func TestListRequests_ClientScopedToOwnRequests(t *testing.T) {
	var applied out.RequestFilter
	repo := &mockRequestRepo{
		listFn: func(_ context.Context, filter out.RequestFilter) ([]domain.RequestView, error) {
			applied = filter
			return nil, nil
		},
	}

	svc := NewListRequestsService(repo, &mockProfileRepo{client: clientProfile()}, testLogger())

	_, err := svc.Execute(context.Background(), in.ListRequestsInput{
		UserID: "user-1",
		Role:   model.RoleClient,
	})

	require.NoError(t, err)
	assert.Equal(t, "client-1", applied.ClientID)
	assert.Equal(t, defaultListLimit, applied.Limit)
}

func TestListRequests_UnknownStatusRejected(t *testing.T) {
	svc := NewListRequestsService(&mockRequestRepo{}, &mockProfileRepo{}, testLogger())

	_, err := svc.Execute(context.Background(), in.ListRequestsInput{
		UserID: "admin-1",
		Role:   model.RoleAdmin,
		Status: "DONE",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}
