package check_availability

import "time"

// Request параметры проверки доступности товара
type Request struct {
	ItemID    string
	StartDate time.Time
	EndDate   time.Time
}

// BusyRange занятый интервал дат (границы включительно)
type BusyRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Response результат проверки доступности
type Response struct {
	ItemID     string      `json:"itemId"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	Available  bool        `json:"available"`
	BusyRanges []BusyRange `json:"busyRanges"`
}
