package out

import "context"

// CatalogRepository — проверки существования справочных данных
type CatalogRepository interface {
	WasteTypeExists(ctx context.Context, wasteTypeID int64) (bool, error)
	DistrictExists(ctx context.Context, districtID int64) (bool, error)
	TimeSlotExists(ctx context.Context, timeSlotID int64) (bool, error)
}
