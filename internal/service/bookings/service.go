package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RentEasy-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RentEasy-BookingService/internal/service/bookings/models"
)

const (
	defaultPageSize uint64 = 20
	maxPageSize     uint64 = 100
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	notifyClient NotifyServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifyClient NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно только заказчику и владельцу товара
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := checkBookingAccess(booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Пользователь видит только собственный список. С параметрами page/size
// возвращается страница, отсортированная по created_at DESC, с общим
// количеством записей.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", req.UserID)

	if req.CallerID != req.UserID {
		s.logger.Warn("GetUserBookings: access denied for caller=%s to user=%s bookings", req.CallerID, req.UserID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetUserBookingsPaginated получает страницу бронирований пользователя
func (s *Service) GetUserBookingsPaginated(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingPageResponse, error) {
	if req.CallerID != req.UserID {
		s.logger.Warn("GetUserBookingsPaginated: access denied for caller=%s to user=%s bookings", req.CallerID, req.UserID)
		return nil, ErrAccessDenied
	}

	page := uint64(1)
	if req.Page != nil {
		if *req.Page == 0 {
			return nil, fmt.Errorf("%w: page must be positive", ErrInvalidInput)
		}
		page = *req.Page
	}

	size := defaultPageSize
	if req.Size != nil {
		if *req.Size == 0 || *req.Size > maxPageSize {
			return nil, fmt.Errorf("%w: size must be between 1 and %d", ErrInvalidInput, maxPageSize)
		}
		size = *req.Size
	}

	s.logger.Info("GetUserBookingsPaginated: fetching bookings for user=%s, page=%d, size=%d", req.UserID, page, size)

	bookings, total, err := s.bookingRepo.GetByUserIDPaginated(ctx, req.UserID, size, (page-1)*size)
	if err != nil {
		s.logger.Error("GetUserBookingsPaginated: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookingsPaginated - repository error: %v", ErrInternal, err)
	}

	list := models.FromDomainBookingList(bookings)
	return &models.BookingPageResponse{
		Bookings: list.Bookings,
		Page:     page,
		Size:     size,
		Total:    total,
	}, nil
}

// GetItemBookings получает все бронирования товара
func (s *Service) GetItemBookings(ctx context.Context, itemID string) (*models.BookingListResponse, error) {
	s.logger.Info("GetItemBookings: fetching bookings for item=%s", itemID)

	bookings, err := s.bookingRepo.GetByItemID(ctx, itemID)
	if err != nil {
		s.logger.Error("GetItemBookings: repository error for item=%s: %v", itemID, err)
		return nil, fmt.Errorf("%w: GetItemBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetItemBookings: fetched %d bookings for item=%s", len(bookings), itemID)
	return models.FromDomainBookingList(bookings), nil
}

// GetOwnerBookings получает бронирования всех товаров владельца
// Доступно только самому владельцу
func (s *Service) GetOwnerBookings(ctx context.Context, ownerID string, userID string) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for owner=%s", ownerID)

	if userID != ownerID {
		s.logger.Warn("GetOwnerBookings: access denied for user=%s to owner=%s bookings", userID, ownerID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByItemOwnerID(ctx, ownerID)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: fetched %d bookings for owner=%s", len(bookings), ownerID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования.
// Доступно заказчику и владельцу товара. Переход проверяется по графу
// жизненного цикла, недопустимый переход отклоняется без изменения статуса.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s",
		bookingID, req.Status, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := checkBookingAccess(booking, req.UserID); err != nil {
		s.logger.Warn("UpdateStatus: access denied for user=%s to booking id=%s", req.UserID, bookingID)
		return nil, err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Проверяем переход по графу жизненного цикла
	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for booking id=%s",
			booking.Status, newStatus, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	// Обновляем статус. БД выставляет updated_at, возвращаем его в ответе
	updatedAt, err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus
	booking.UpdatedAt = updatedAt

	// Уведомляем заказчика о подтверждении или отмене
	s.notifyBooker(ctx, booking, newStatus)

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// notifyBooker отправляет заказчику уведомление о смене статуса.
// Ошибка отправки логируется и не влияет на результат операции.
func (s *Service) notifyBooker(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) {
	var title, message, notificationType string

	switch status {
	case domain.StatusConfirmed:
		title = "Booking Confirmed"
		message = fmt.Sprintf("Your booking for %s has been confirmed", booking.ItemName)
		notificationType = domain.NotificationBookingConfirmed
	case domain.StatusCancelled:
		title = "Booking Cancelled"
		message = fmt.Sprintf("Your booking for %s has been cancelled", booking.ItemName)
		notificationType = domain.NotificationBookingCancelled
	default:
		return
	}

	if err := s.notifyClient.Notify(ctx, booking.UserID, title, message, notificationType); err != nil {
		s.logger.Warn("notifyBooker: failed to notify user=%s about booking id=%s: %v",
			booking.UserID, booking.ID, err)
	}
}

// checkBookingAccess проверяет, что пользователь является заказчиком
// или владельцем товара
func checkBookingAccess(booking *domain.Booking, userID string) error {
	if booking.UserID == userID || booking.ItemOwnerID == userID {
		return nil
	}
	return ErrAccessDenied
}
