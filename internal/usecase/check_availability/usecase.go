package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	catalogClient "github.com/m04kA/RentEasy-BookingService/internal/integrations/catalogservice"
)

// UseCase use case для проверки доступности товара на период
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет проверку доступности. Ответ носит справочный
// характер: окончательная проверка конфликтов выполняется при создании
// бронирования внутри транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что товар существует в каталоге
	if _, err := uc.catalogClient.GetItem(ctx, req.ItemID); err != nil {
		if errors.Is(err, catalogClient.ErrItemNotFound) {
			uc.logger.Warn("CheckAvailability: item id=%s not found", req.ItemID)
			return nil, fmt.Errorf("%w: id=%s", ErrItemNotFound, req.ItemID)
		}
		uc.logger.Error("CheckAvailability: failed to fetch item id=%s: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: fetch item: %v", ErrInternal, err)
	}

	// 3. Ищем активные бронирования, пересекающие запрошенный период
	var conflicts []*domain.Booking
	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var txErr error
		conflicts, txErr = uc.bookingRepo.FindConflicting(ctx, req.ItemID, req.StartDate, req.EndDate)
		return txErr
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to find conflicting bookings for item id=%s: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: find conflicting bookings: %v", ErrInternal, err)
	}

	resp := &Response{
		ItemID:     req.ItemID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Available:  len(conflicts) == 0,
		BusyRanges: make([]BusyRange, 0, len(conflicts)),
	}
	for _, b := range conflicts {
		resp.BusyRanges = append(resp.BusyRanges, BusyRange{
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
		})
	}

	return resp, nil
}

func validateRequest(req *Request) error {
	if req.ItemID == "" {
		return fmt.Errorf("%w: item id is required", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: start=%s, end=%s",
			ErrInvalidDateRange,
			req.StartDate.Format(domain.DateFormat),
			req.EndDate.Format(domain.DateFormat))
	}
	return nil
}
