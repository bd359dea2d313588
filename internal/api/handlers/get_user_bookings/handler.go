package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RentEasy-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEasy-BookingService/internal/api/middleware"
	"github.com/m04kA/RentEasy-BookingService/internal/service/bookings"
	"github.com/m04kA/RentEasy-BookingService/internal/service/bookings/models"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgInvalidPageParam = "некорректные параметры пагинации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings
// Поддерживает опциональную пагинацию через query параметры page и size
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pathUserID := mux.Vars(r)["userId"]

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetUserBookingsRequest{
		UserID:   pathUserID,
		CallerID: callerID,
	}

	page, size, paginated, err := parsePagination(r)
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings - Invalid pagination params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPageParam)
		return
	}

	var result interface{}
	if paginated {
		req.Page = page
		req.Size = size
		result, err = h.service.GetUserBookingsPaginated(r.Context(), req)
	} else {
		result, err = h.service.GetUserBookings(r.Context(), req)
	}
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/bookings - Access denied: user_id=%s, caller=%s", pathUserID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/bookings - Invalid input: user_id=%s, error=%v", pathUserID, err)
			handlers.RespondBadRequest(w, msgInvalidPageParam)

		default:
			h.logger.Error("GET /users/{id}/bookings - Failed to get bookings: user_id=%s, error=%v", pathUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/bookings - Bookings retrieved successfully: user_id=%s", pathUserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parsePagination читает page и size из query параметров.
// Возвращает paginated=false, если оба параметра отсутствуют.
func parsePagination(r *http.Request) (page, size *uint64, paginated bool, err error) {
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		p, parseErr := strconv.ParseUint(v, 10, 64)
		if parseErr != nil {
			return nil, nil, false, parseErr
		}
		page = &p
		paginated = true
	}

	if v := q.Get("size"); v != "" {
		s, parseErr := strconv.ParseUint(v, 10, 64)
		if parseErr != nil {
			return nil, nil, false, parseErr
		}
		size = &s
		paginated = true
	}

	return page, size, paginated, nil
}
