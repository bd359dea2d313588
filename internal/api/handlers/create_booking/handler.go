package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/RentEasy-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEasy-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/RentEasy-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgItemNotFound       = "товар не найден"
	msgItemNotAvailable   = "товар недоступен для бронирования"
	msgDatesConflict      = "выбранные даты уже заняты"
	msgInvalidDateRange   = "дата окончания раньше даты начала"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrItemNotFound):
			h.logger.Warn("POST /bookings - Item not found: item_id=%s", req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createBooking.ErrItemNotAvailable):
			h.logger.Warn("POST /bookings - Item not available: item_id=%s", req.ItemID)
			handlers.RespondError(w, http.StatusConflict, msgItemNotAvailable)

		case errors.Is(err, createBooking.ErrDatesConflict):
			h.logger.Warn("POST /bookings - Dates conflict: item_id=%s, period=%s..%s",
				req.ItemID, req.StartDate, req.EndDate)
			handlers.RespondError(w, http.StatusConflict, msgDatesConflict)

		case errors.Is(err, createBooking.ErrInvalidDateRange):
			h.logger.Warn("POST /bookings - Invalid date range: item_id=%s, period=%s..%s",
				req.ItemID, req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, item_id=%s, error=%v",
				userID, req.ItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, item_id=%s",
		result.ID, userID, req.ItemID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
