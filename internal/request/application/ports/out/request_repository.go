package out

import (
	"context"
	"time"

	"wastehub/internal/request/domain"
)

// RequestFilter — параметры фильтрации списка заявок
type RequestFilter struct {
	ClientID    string
	CollectorID string
	DistrictID  int64
	CityID      int64
	Date        time.Time // нулевое значение — без фильтра по дате вывоза
	Status      string
	Type        string
	Limit       int
	Offset      int
}

// StatusChange — параметры защищенного перехода статуса.
// Переход применяется одним UPDATE с проверкой текущего статуса,
// что исключает гонки между параллельными операциями.
type StatusChange struct {
	RequestID     string
	FromStatus    string
	ToStatus      string
	CollectorID   *string    // заполняется при ACCEPTED
	CompletedDate *time.Time // заполняется при COMPLETED
}

// RequestRepository — доступ к заявкам и их расписаниям
type RequestRepository interface {
	// Create сохраняет заявку, ее даты вывоза и правило повторения
	// (если есть) в одной транзакции
	Create(ctx context.Context, req *domain.CollectionRequest, days []domain.CollectionDay, rec *domain.RecurringCollection) error

	// FindByID находит заявку по ID
	// Возвращает domain.ErrRequestNotFound если не найдена
	FindByID(ctx context.Context, requestID string) (*domain.CollectionRequest, error)

	// FindView собирает заявку со справочными данными, датами и правилом
	FindView(ctx context.Context, requestID string) (*domain.RequestView, error)

	// List возвращает заявки по фильтру, новые первыми
	List(ctx context.Context, filter RequestFilter) ([]domain.RequestView, error)

	// UpdateDetails меняет редактируемые поля заявки, пока она PENDING.
	// Возвращает количество затронутых строк: 0 означает, что заявка
	// не найдена или уже не PENDING.
	UpdateDetails(ctx context.Context, requestID string, wasteTypeID, districtID int64, notes string) (int64, error)

	// UpdateStatus применяет защищенный переход статуса.
	// Возвращает количество затронутых строк: 0 означает, что статус
	// уже изменился параллельно.
	UpdateStatus(ctx context.Context, change StatusChange) (int64, error)

	// Delete удаляет заявку вместе с датами и правилом (каскадом),
	// только если она PENDING или CANCELLED.
	// Возвращает количество затронутых строк.
	Delete(ctx context.Context, requestID string) (int64, error)

	// FindRecurrence находит правило повторения заявки
	FindRecurrence(ctx context.Context, requestID string) (*domain.RecurringCollection, error)

	// ListRecurrences возвращает правила повторения всех заявок клиента
	ListRecurrences(ctx context.Context, clientID string) ([]domain.RecurringCollection, error)

	// SetRecurrenceActive включает или выключает правило повторения.
	// При выключении удаляет еще не наступившие материализованные даты,
	// при включении досоздает их — все в одной транзакции.
	SetRecurrenceActive(ctx context.Context, requestID string, active bool, futureDays []domain.CollectionDay) error

	// ListUpcomingDays возвращает будущие даты вывоза клиента
	ListUpcomingDays(ctx context.Context, clientID string, from, to time.Time) ([]domain.UpcomingCollection, error)
}
