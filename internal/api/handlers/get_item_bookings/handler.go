package get_item_bookings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/RentEasy-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/items/{itemId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]

	result, err := h.service.GetItemBookings(r.Context(), itemID)
	if err != nil {
		h.logger.Error("GET /items/{id}/bookings - Failed to get bookings: item_id=%s, error=%v", itemID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /items/{id}/bookings - Bookings retrieved successfully: item_id=%s, count=%d",
		itemID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
