package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID   string  `json:"userId"`
	CallerID string  `json:"-"`
	Page     *uint64 `json:"page,omitempty"`
	Size     *uint64 `json:"size,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         string `json:"id"`
	ItemID     string `json:"itemId"`
	UserID     string `json:"userId"`
	StartDate  string `json:"startDate"` // "2025-10-15"
	EndDate    string `json:"endDate"`
	RentalDays int    `json:"rentalDays"`
	Status     string `json:"status"`

	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentStatus string          `json:"paymentStatus"`

	DeliveryAddress     *string `json:"deliveryAddress,omitempty"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`

	// Денормализованные данные товара
	ItemName    string          `json:"itemName"`
	ItemOwnerID string          `json:"itemOwnerId"`
	ItemPrice   decimal.Decimal `json:"itemPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BookingPageResponse страница списка бронирований
type BookingPageResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Page     uint64            `json:"page"`
	Size     uint64            `json:"size"`
	Total    int64             `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		ItemID:              b.ItemID,
		UserID:              b.UserID,
		StartDate:           b.StartDate.Format(domain.DateFormat),
		EndDate:             b.EndDate.Format(domain.DateFormat),
		RentalDays:          b.RentalDays,
		Status:              string(b.Status),
		TotalPrice:          b.TotalPrice,
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

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
