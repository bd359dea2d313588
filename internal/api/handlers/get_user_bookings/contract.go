package get_user_bookings

import (
	"context"

	"github.com/m04kA/RentEasy-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error)
	GetUserBookingsPaginated(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingPageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
