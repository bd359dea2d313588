package bookings

import (
	"context"
	"time"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.Booking, error)
	GetByUserIDPaginated(ctx context.Context, userID string, limit, offset uint64) ([]*domain.Booking, int64, error)
	GetByItemID(ctx context.Context, itemID string) ([]*domain.Booking, error)
	GetByItemOwnerID(ctx context.Context, ownerID string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (time.Time, error)
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	Notify(ctx context.Context, userID, title, message, notificationType string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
