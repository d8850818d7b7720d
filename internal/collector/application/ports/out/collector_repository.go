// Package out — исходящие порты collector service.
package out

import (
	"context"

	"wastehub/internal/collector/domain"
	"wastehub/internal/shared/user"
)

// CollectorFilter — параметры выборки списка сборщиков
type CollectorFilter struct {
	DistrictID    int64
	AvailableOnly bool
	Limit         int
	Offset        int
}

// ProfileUpdate — частичное обновление профиля (nil = поле не трогаем)
type ProfileUpdate struct {
	DistrictID *int64
	PhotoURL   *string
}

// CollectorRepository — порт хранилища профилей сборщиков
type CollectorRepository interface {
	// Create создает пользователя с ролью COLLECTOR и его профиль в одной
	// транзакции. Возвращает id созданного профиля.
	Create(ctx context.Context, u *user.User, districtID int64, photoURL string) (string, error)

	FindByID(ctx context.Context, collectorID string) (*domain.Collector, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Collector, error)
	List(ctx context.Context, filter CollectorFilter) ([]domain.Collector, error)

	// UpdateProfile возвращает число обновленных строк
	UpdateProfile(ctx context.Context, collectorID string, upd ProfileUpdate) (int64, error)

	// SetAvailability переключает доступность и, при уходе в офлайн,
	// каскадно отменяет все PENDING заявки этого сборщика. Обе операции
	// выполняются в одной транзакции; возвращаются отмененные заявки.
	SetAvailability(ctx context.Context, collectorID string, available bool) ([]domain.CancelledRequest, error)

	ListAvailableByDistrict(ctx context.Context, districtID int64) ([]domain.Collector, error)

	// ListAvailableUserIDs возвращает user id доступных сборщиков района
	// (для адресных WebSocket уведомлений о новых заявках)
	ListAvailableUserIDs(ctx context.Context, districtID int64) ([]string, error)

	// ListRequests — заявки сборщика, опционально отфильтрованные по статусу
	ListRequests(ctx context.Context, collectorID, status string) ([]domain.RequestSummary, error)

	DistrictExists(ctx context.Context, districtID int64) (bool, error)
}
