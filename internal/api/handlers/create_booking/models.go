package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	createBooking "github.com/m04kA/RentEasy-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ItemID              string  `json:"itemId"`
	StartDate           string  `json:"startDate"` // "2025-10-15"
	EndDate             string  `json:"endDate"`
	DeliveryAddress     *string `json:"deliveryAddress,omitempty"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                  string          `json:"id"`
	ItemID              string          `json:"itemId"`
	UserID              string          `json:"userId"`
	StartDate           string          `json:"startDate"`
	EndDate             string          `json:"endDate"`
	RentalDays          int             `json:"rentalDays"`
	TotalPrice          decimal.Decimal `json:"totalPrice"`
	Status              string          `json:"status"`
	PaymentStatus       string          `json:"paymentStatus"`
	DeliveryAddress     *string         `json:"deliveryAddress,omitempty"`
	SpecialInstructions *string         `json:"specialInstructions,omitempty"`
	ItemName            string          `json:"itemName"`
	ItemOwnerID         string          `json:"itemOwnerId"`
	ItemPrice           decimal.Decimal `json:"itemPrice"`
	CreatedAt           string          `json:"createdAt"`
	UpdatedAt           string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ItemID:              r.ItemID,
		UserID:              userID,
		StartDate:           startDate,
		EndDate:             endDate,
		DeliveryAddress:     r.DeliveryAddress,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                  resp.ID,
		ItemID:              resp.ItemID,
		UserID:              resp.UserID,
		StartDate:           resp.StartDate.Format(domain.DateFormat),
		EndDate:             resp.EndDate.Format(domain.DateFormat),
		RentalDays:          resp.RentalDays,
		TotalPrice:          resp.TotalPrice,
		Status:              resp.Status,
		PaymentStatus:       resp.PaymentStatus,
		DeliveryAddress:     resp.DeliveryAddress,
		SpecialInstructions: resp.SpecialInstructions,
		ItemName:            resp.ItemName,
		ItemOwnerID:         resp.ItemOwnerID,
		ItemPrice:           resp.ItemPrice,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
