package in

import (
	"context"

	"wastehub/internal/collector/domain"
)

// GetCollectorInput — запрос профиля сборщика по id
type GetCollectorInput struct {
	CollectorID string
}

// GetCollectorUseCase — просмотр одного профиля
type GetCollectorUseCase interface {
	Execute(ctx context.Context, input GetCollectorInput) (*domain.Collector, error)
}

// ListCollectorsInput — параметры списка сборщиков
type ListCollectorsInput struct {
	DistrictID    int64
	AvailableOnly bool
	Limit         int
	Offset        int
}

// ListCollectorsOutput — страница списка сборщиков
type ListCollectorsOutput struct {
	Collectors []domain.Collector `json:"collectors"`
	Count      int                `json:"count"`
}

// ListCollectorsUseCase — список сборщиков с фильтрами
type ListCollectorsUseCase interface {
	Execute(ctx context.Context, input ListCollectorsInput) (*ListCollectorsOutput, error)
}

// AvailableByDistrictInput — доступные сборщики района
type AvailableByDistrictInput struct {
	DistrictID int64
}

// AvailableByDistrictUseCase — подбор доступных сборщиков района
type AvailableByDistrictUseCase interface {
	Execute(ctx context.Context, input AvailableByDistrictInput) (*ListCollectorsOutput, error)
}

// CollectorRequestsInput — заявки сборщика; Status опционален
type CollectorRequestsInput struct {
	UserID      string
	Role        string
	CollectorID string
	Status      string
}

// CollectorRequestsOutput — список заявок сборщика
type CollectorRequestsOutput struct {
	Requests []domain.RequestSummary `json:"requests"`
	Count    int                     `json:"count"`
}

// CollectorRequestsUseCase — история и текущие заявки сборщика
type CollectorRequestsUseCase interface {
	Execute(ctx context.Context, input CollectorRequestsInput) (*CollectorRequestsOutput, error)
}
