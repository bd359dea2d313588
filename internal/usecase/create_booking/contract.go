package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	"github.com/m04kA/RentEasy-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/RentEasy-BookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindConflictingForUpdate(ctx context.Context, itemID string, start, end time.Time) ([]*domain.Booking, error)
}

// UserServiceClient интерфейс клиента справочника пользователей
type UserServiceClient interface {
	GetUser(ctx context.Context, userID string) (*userservice.User, error)
}

// CatalogServiceClient интерфейс клиента каталога товаров
type CatalogServiceClient interface {
	GetItem(ctx context.Context, itemID string) (*catalogservice.Item, error)
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	Notify(ctx context.Context, userID, title, message, notificationType string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
