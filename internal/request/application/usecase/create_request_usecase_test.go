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

func futureDate(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days).Truncate(24 * time.Hour)
}

func clientProfile() *out.ClientProfile {
	return &out.ClientProfile{ClientID: "client-1", UserID: "user-1", DistrictID: 7}
}

func TestCreateRequest_OneTime(t *testing.T) {
	var savedReq *domain.CollectionRequest
	var savedDays []domain.CollectionDay
	var savedRec *domain.RecurringCollection

	repo := &mockRequestRepo{
		createFn: func(_ context.Context, req *domain.CollectionRequest, days []domain.CollectionDay, rec *domain.RecurringCollection) error {
			savedReq, savedDays, savedRec = req, days, rec
			return nil
		},
	}
	publisher := &mockPublisher{}

	svc := NewCreateRequestService(repo, &mockProfileRepo{client: clientProfile()}, validCatalog(), publisher, newMockNotifier(), testLogger())

	output, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeOneTime,
		Dates:          []time.Time{futureDate(3)},
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, model.RequestStatusPending, output.Status)
	assert.Len(t, output.Dates, 1)

	require.NotNil(t, savedReq)
	// район не указан — берется из профиля клиента
	assert.Equal(t, int64(7), savedReq.DistrictID)
	assert.Equal(t, "client-1", savedReq.ClientID)
	assert.Len(t, savedDays, 1)
	assert.Nil(t, savedRec)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, model.EventRequestCreated, publisher.events[0].eventType)
}

func TestCreateRequest_OneTimeRejectsMultipleDates(t *testing.T) {
	svc := NewCreateRequestService(&mockRequestRepo{}, &mockProfileRepo{client: clientProfile()}, validCatalog(), &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeOneTime,
		Dates:          []time.Time{futureDate(1), futureDate(2)},
	})

	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "dates")
}

func TestCreateRequest_RejectsPastDate(t *testing.T) {
	svc := NewCreateRequestService(&mockRequestRepo{}, &mockProfileRepo{client: clientProfile()}, validCatalog(), &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeOneTime,
		Dates:          []time.Time{futureDate(-1)},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateRequest_RejectsTodayDate(t *testing.T) {
	svc := NewCreateRequestService(&mockRequestRepo{}, &mockProfileRepo{client: clientProfile()}, validCatalog(), &mockPublisher{}, newMockNotifier(), testLogger())

	// дата вывоза должна быть строго в будущем, сегодня — уже нельзя
	_, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeOneTime,
		Dates:          []time.Time{futureDate(0)},
	})

	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "dates")
}

func TestCreateRequest_RejectsTodayRecurrenceStart(t *testing.T) {
	svc := NewCreateRequestService(&mockRequestRepo{}, &mockProfileRepo{client: clientProfile()}, validCatalog(), &mockPublisher{}, newMockNotifier(), testLogger())

	dow := 3
	_, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeRecurring,
		Recurrence: &in.RecurrenceInput{
			Frequency: model.FrequencyWeekly,
			DayOfWeek: &dow,
			StartDate: futureDate(0),
		},
	})

	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "start_date")
}

func TestCreateRequest_RecurringExplicitDatesRejectsDuplicates(t *testing.T) {
	day := futureDate(5)
	svc := NewCreateRequestService(&mockRequestRepo{}, &mockProfileRepo{client: clientProfile()}, validCatalog(), &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeRecurring,
		Dates:          []time.Time{day, futureDate(7), day},
	})

	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "dates")
}

func TestCreateRequest_RecurringRequiresScheduleSource(t *testing.T) {
	svc := NewCreateRequestService(&mockRequestRepo{}, &mockProfileRepo{client: clientProfile()}, validCatalog(), &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeRecurring,
	})

	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "recurrence")
}

func TestCreateRequest_RecurringRuleMaterializesDays(t *testing.T) {
	var savedDays []domain.CollectionDay
	var savedRec *domain.RecurringCollection

	repo := &mockRequestRepo{
		createFn: func(_ context.Context, _ *domain.CollectionRequest, days []domain.CollectionDay, rec *domain.RecurringCollection) error {
			savedDays, savedRec = days, rec
			return nil
		},
	}

	svc := NewCreateRequestService(repo, &mockProfileRepo{client: clientProfile()}, validCatalog(), &mockPublisher{}, newMockNotifier(), testLogger())

	start := futureDate(1)
	end := futureDate(22)
	dow := 3

	output, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeRecurring,
		Recurrence: &in.RecurrenceInput{
			Frequency: model.FrequencyWeekly,
			DayOfWeek: &dow,
			StartDate: start,
			EndDate:   &end,
		},
	})

	require.NoError(t, err)
	require.NotNil(t, savedRec)
	assert.True(t, savedRec.IsActive)
	assert.Equal(t, int64(2), savedRec.TimeSlotID)

	require.NotEmpty(t, savedDays)
	assert.Equal(t, len(savedDays), len(output.Dates))
	for _, d := range savedDays {
		assert.Equal(t, time.Wednesday, d.CollectionDate.Weekday())
	}
}

func TestCreateRequest_NoClientProfile(t *testing.T) {
	svc := NewCreateRequestService(&mockRequestRepo{}, &mockProfileRepo{err: domain.ErrProfileNotFound}, validCatalog(), &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    1,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeOneTime,
		Dates:          []time.Time{futureDate(1)},
	})

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestCreateRequest_UnknownCatalogReference(t *testing.T) {
	catalog := validCatalog()
	catalog.wasteTypeOK = false

	svc := NewCreateRequestService(&mockRequestRepo{}, &mockProfileRepo{client: clientProfile()}, catalog, &mockPublisher{}, newMockNotifier(), testLogger())

	_, err := svc.Execute(context.Background(), in.CreateRequestInput{
		UserID:         "user-1",
		WasteTypeID:    99,
		TimeSlotID:     2,
		CollectionType: model.CollectionTypeOneTime,
		Dates:          []time.Time{futureDate(1)},
	})

	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "waste_type_id")
}
