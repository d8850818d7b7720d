package usecase

import (
	"context"
	"time"

	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("test")
}

// mockRequestRepo — ручной мок RequestRepository с перехватываемыми методами
type mockRequestRepo struct {
	createFn        func(ctx context.Context, req *domain.CollectionRequest, days []domain.CollectionDay, rec *domain.RecurringCollection) error
	findByIDFn      func(ctx context.Context, requestID string) (*domain.CollectionRequest, error)
	findViewFn      func(ctx context.Context, requestID string) (*domain.RequestView, error)
	listFn          func(ctx context.Context, filter out.RequestFilter) ([]domain.RequestView, error)
	updateDetailsFn func(ctx context.Context, requestID string, wasteTypeID, districtID int64, notes string) (int64, error)
	updateStatusFn  func(ctx context.Context, change out.StatusChange) (int64, error)
	deleteFn        func(ctx context.Context, requestID string) (int64, error)
	findRecFn       func(ctx context.Context, requestID string) (*domain.RecurringCollection, error)
	listRecFn       func(ctx context.Context, clientID string) ([]domain.RecurringCollection, error)
	setRecActiveFn  func(ctx context.Context, requestID string, active bool, futureDays []domain.CollectionDay) error
	listUpcomingFn  func(ctx context.Context, clientID string, from, to time.Time) ([]domain.UpcomingCollection, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, req *domain.CollectionRequest, days []domain.CollectionDay, rec *domain.RecurringCollection) error {
	return m.createFn(ctx, req, days, rec)
}

func (m *mockRequestRepo) FindByID(ctx context.Context, requestID string) (*domain.CollectionRequest, error) {
	return m.findByIDFn(ctx, requestID)
}

func (m *mockRequestRepo) FindView(ctx context.Context, requestID string) (*domain.RequestView, error) {
	return m.findViewFn(ctx, requestID)
}

func (m *mockRequestRepo) List(ctx context.Context, filter out.RequestFilter) ([]domain.RequestView, error) {
	return m.listFn(ctx, filter)
}

func (m *mockRequestRepo) UpdateDetails(ctx context.Context, requestID string, wasteTypeID, districtID int64, notes string) (int64, error) {
	return m.updateDetailsFn(ctx, requestID, wasteTypeID, districtID, notes)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, change out.StatusChange) (int64, error) {
	return m.updateStatusFn(ctx, change)
}

func (m *mockRequestRepo) Delete(ctx context.Context, requestID string) (int64, error) {
	return m.deleteFn(ctx, requestID)
}

func (m *mockRequestRepo) FindRecurrence(ctx context.Context, requestID string) (*domain.RecurringCollection, error) {
	return m.findRecFn(ctx, requestID)
}

func (m *mockRequestRepo) ListRecurrences(ctx context.Context, clientID string) ([]domain.RecurringCollection, error) {
	return m.listRecFn(ctx, clientID)
}

func (m *mockRequestRepo) SetRecurrenceActive(ctx context.Context, requestID string, active bool, futureDays []domain.CollectionDay) error {
	return m.setRecActiveFn(ctx, requestID, active, futureDays)
}

func (m *mockRequestRepo) ListUpcomingDays(ctx context.Context, clientID string, from, to time.Time) ([]domain.UpcomingCollection, error) {
	return m.listUpcomingFn(ctx, clientID, from, to)
}

// mockProfileRepo — ручной мок ProfileRepository
type mockProfileRepo struct {
	client          *out.ClientProfile
	collector       *out.CollectorProfile
	clientUserID    string
	collectorUserID string
	err             error
}

func (m *mockProfileRepo) FindClientByUserID(ctx context.Context, userID string) (*out.ClientProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.client, nil
}

func (m *mockProfileRepo) FindCollectorByUserID(ctx context.Context, userID string) (*out.CollectorProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.collector, nil
}

func (m *mockProfileRepo) FindClientUserID(ctx context.Context, clientID string) (string, error) {
	return m.clientUserID, nil
}

func (m *mockProfileRepo) FindCollectorUserID(ctx context.Context, collectorID string) (string, error) {
	return m.collectorUserID, nil
}

// mockCatalogRepo — мок справочников; по умолчанию все ссылки валидны
type mockCatalogRepo struct {
	wasteTypeOK bool
	districtOK  bool
	timeSlotOK  bool
}

func validCatalog() *mockCatalogRepo {
	return &mockCatalogRepo{wasteTypeOK: true, districtOK: true, timeSlotOK: true}
}

func (m *mockCatalogRepo) WasteTypeExists(ctx context.Context, id int64) (bool, error) {
	return m.wasteTypeOK, nil
}

func (m *mockCatalogRepo) DistrictExists(ctx context.Context, id int64) (bool, error) {
	return m.districtOK, nil
}

func (m *mockCatalogRepo) TimeSlotExists(ctx context.Context, id int64) (bool, error) {
	return m.timeSlotOK, nil
}

// mockPublisher запоминает опубликованные события
type mockPublisher struct {
	events []publishedEvent
	err    error
}

type publishedEvent struct {
	eventType string
	data      out.RequestEventData
}

func (m *mockPublisher) PublishRequestEvent(ctx context.Context, eventType string, data out.RequestEventData) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{eventType: eventType, data: data})
	return nil
}

// mockNotifier запоминает отправленные уведомления
type mockNotifier struct {
	userNotifications map[string][]out.RequestNotification
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{userNotifications: map[string][]out.RequestNotification{}}
}

func (m *mockNotifier) NotifyUser(ctx context.Context, userID string, n out.RequestNotification) error {
	m.userNotifications[userID] = append(m.userNotifications[userID], n)
	return nil
}

func (m *mockNotifier) NotifyCollectors(ctx context.Context, n out.RequestNotification) error {
	return nil
}
