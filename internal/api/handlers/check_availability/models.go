package check_availability

import (
	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/RentEasy-BookingService/internal/usecase/check_availability"
)

// BusyRange занятый интервал дат
type BusyRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ItemID     string      `json:"itemId"`
	StartDate  string      `json:"startDate"`
	EndDate    string      `json:"endDate"`
	Available  bool        `json:"available"`
	BusyRanges []BusyRange `json:"busyRanges"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		ItemID:     resp.ItemID,
		StartDate:  resp.StartDate.Format(domain.DateFormat),
		EndDate:    resp.EndDate.Format(domain.DateFormat),
		Available:  resp.Available,
		BusyRanges: make([]BusyRange, 0, len(resp.BusyRanges)),
	}

	for _, br := range resp.BusyRanges {
		out.BusyRanges = append(out.BusyRanges, BusyRange{
			StartDate: br.StartDate.Format(domain.DateFormat),
			EndDate:   br.EndDate.Format(domain.DateFormat),
		})
	}

	return out
}
