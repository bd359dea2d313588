package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RentEasy-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/RentEasy-BookingService/internal/integrations/catalogservice"
	userClient "github.com/m04kA/RentEasy-BookingService/internal/integrations/userservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	userClient    UserServiceClient
	catalogClient CatalogServiceClient
	notifyClient  NotifyServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	catalogClient CatalogServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		userClient:    userClient,
		catalogClient: catalogClient,
		notifyClient:  notifyClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в одной сериализуемой
// транзакции: два конкурентных запроса на пересекающиеся даты не могут
// оба пройти проверку и вставиться.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, item=%s, period=%s..%s",
		req.UserID, req.ItemID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что заказчик существует
	if _, err := uc.userClient.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%s not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 3. Получаем товар и проверяем его доступность
	item, err := uc.catalogClient.GetItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrItemNotFound) {
			uc.logger.Warn("CreateBooking: item id=%s not found", req.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("CreateBooking: failed to get item id=%s: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	if !item.Available {
		uc.logger.Warn("CreateBooking: item id=%s is not available", req.ItemID)
		return nil, ErrItemNotAvailable
	}

	// 4. Считаем длительность и итоговую цену аренды
	days, total, err := computeRental(item.Price, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Проверяем конфликт дат и вставляем в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := uc.bookingRepo.FindConflictingForUpdate(txCtx, req.ItemID, req.StartDate, req.EndDate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find conflicting bookings: %v", err)
			// Второй %w сохраняет исходную ошибку в цепочке: сбой
			// сериализации (40001) остается видимым для retry-логики
			// менеджера транзакций
			return fmt.Errorf("%w: failed to find conflicting bookings: %w", ErrInternal, err)
		}

		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: item id=%s already booked, %d conflicting booking(s)",
				req.ItemID, len(conflicts))
			return ErrDatesConflict
		}

		booking := &domain.Booking{
			ItemID:              req.ItemID,
			UserID:              req.UserID,
			StartDate:           req.StartDate,
			EndDate:             req.EndDate,
			RentalDays:          days,
			TotalPrice:          total,
			Status:              domain.StatusPending,
			PaymentStatus:       domain.DefaultPaymentStatus,
			DeliveryAddress:     req.DeliveryAddress,
			SpecialInstructions: req.SpecialInstructions,
			// Денормализация данных товара
			ItemName:    item.Name,
			ItemOwnerID: item.OwnerID,
			ItemPrice:   item.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint БД — вторая линия защиты от гонки
			if errors.Is(err, bookingRepo.ErrDatesConflict) {
				uc.logger.Warn("CreateBooking: insert rejected by exclusion constraint, item id=%s", req.ItemID)
				return ErrDatesConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%s for %d day(s)",
		result.ID, result.TotalPrice.String(), result.RentalDays)

	// 6. Уведомляем владельца товара после фиксации транзакции.
	// Ошибка доставки не откатывает бронирование.
	if err := uc.notifyClient.Notify(
		ctx,
		item.OwnerID,
		"New Booking Request",
		fmt.Sprintf("You have a new booking request for %s", item.Name),
		domain.NotificationBookingConfirmed,
	); err != nil {
		uc.logger.Error("CreateBooking: failed to notify owner id=%s about booking id=%s: %v",
			item.OwnerID, result.ID, err)
	}

	return toResponse(result), nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                  b.ID,
		ItemID:              b.ItemID,
		UserID:              b.UserID,
		StartDate:           b.StartDate,
		EndDate:             b.EndDate,
		RentalDays:          b.RentalDays,
		TotalPrice:          b.TotalPrice,
		Status:              string(b.Status),
		PaymentStatus:       b.PaymentStatus,
		DeliveryAddress:     b.DeliveryAddress,
		SpecialInstructions: b.SpecialInstructions,
		ItemName:            b.ItemName,
		ItemOwnerID:         b.ItemOwnerID,
		ItemPrice:           b.ItemPrice,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}
