package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/RentEasy-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/RentEasy-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgItemNotFound     = "товар не найден"
	msgInvalidDateRange = "дата окончания раньше даты начала"
	msgMissingDates     = "параметры startDate и endDate обязательны"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/availability?startDate=...&endDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]

	q := r.URL.Query()
	startStr := q.Get("startDate")
	endStr := q.Get("endDate")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /items/{id}/availability - Missing date params: item_id=%s", itemID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		h.logger.Warn("GET /items/{id}/availability - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		h.logger.Warn("GET /items/{id}/availability - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		ItemID:    itemID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/availability - Item not found: item_id=%s", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidDateRange):
			h.logger.Warn("GET /items/{id}/availability - Invalid date range: item_id=%s", itemID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /items/{id}/availability - Invalid input: item_id=%s, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /items/{id}/availability - Failed to check availability: item_id=%s, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/availability - Availability checked: item_id=%s, available=%t",
		itemID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
