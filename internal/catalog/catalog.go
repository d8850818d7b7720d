package catalog

// City — город присутствия сервиса
type City struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// District — район города
type District struct {
	ID     int64  `json:"id"`
	CityID int64  `json:"city_id"`
	Name   string `json:"name"`
}

// WasteType — тип вывозимых отходов
type WasteType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TimeSlot — слот времени вывоза
type TimeSlot struct {
	ID       int64  `json:"id"`
	Time     string `json:"time"` // HH:MM
	IsActive bool   `json:"is_active"`
}
