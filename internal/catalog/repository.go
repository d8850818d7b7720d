package catalog

import (
	"context"
	"errors"
)

// ErrCityNotFound город не найден
var ErrCityNotFound = errors.New("city not found")

// Repository — чтение справочных данных
type Repository interface {
	ListCities(ctx context.Context) ([]City, error)
	ListDistricts(ctx context.Context, cityID int64) ([]District, error)
	ListWasteTypes(ctx context.Context) ([]WasteType, error)
	ListTimeSlots(ctx context.Context) ([]TimeSlot, error)
}
