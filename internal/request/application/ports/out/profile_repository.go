package out

import "context"

// ClientProfile — профиль клиента, достаточный для обработки заявок
type ClientProfile struct {
	ClientID   string
	UserID     string
	DistrictID int64
}

// CollectorProfile — профиль сборщика, достаточный для обработки заявок
type CollectorProfile struct {
	CollectorID string
	UserID      string
	DistrictID  int64
	IsAvailable bool
}

// ProfileRepository — доступ к профилям клиентов и сборщиков
type ProfileRepository interface {
	// FindClientByUserID находит профиль клиента по ID пользователя
	// Возвращает domain.ErrProfileNotFound если профиля нет
	FindClientByUserID(ctx context.Context, userID string) (*ClientProfile, error)

	// FindCollectorByUserID находит профиль сборщика по ID пользователя
	// Возвращает domain.ErrProfileNotFound если профиля нет
	FindCollectorByUserID(ctx context.Context, userID string) (*CollectorProfile, error)

	// FindClientUserID возвращает ID пользователя по ID профиля клиента
	FindClientUserID(ctx context.Context, clientID string) (string, error)

	// FindCollectorUserID возвращает ID пользователя по ID профиля сборщика
	FindCollectorUserID(ctx context.Context, collectorID string) (string, error)
}
