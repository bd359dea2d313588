package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	"github.com/m04kA/RentEasy-BookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindConflicting(ctx context.Context, itemID string, start, end time.Time) ([]*domain.Booking, error)
}

// CatalogServiceClient интерфейс клиента сервиса каталога
type CatalogServiceClient interface {
	GetItem(ctx context.Context, itemID string) (*catalogservice.Item, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
