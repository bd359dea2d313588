package create_booking

import (
	"fmt"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ItemID == "" {
		return fmt.Errorf("%w: itemID is required", ErrInvalidInput)
	}

	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidDateRange
	}

	if req.DeliveryAddress != nil && len(*req.DeliveryAddress) > domain.MaxDeliveryAddressLength {
		return fmt.Errorf("%w: deliveryAddress is too long", ErrInvalidInput)
	}

	if req.SpecialInstructions != nil && len(*req.SpecialInstructions) > domain.MaxSpecialInstructionsLength {
		return fmt.Errorf("%w: specialInstructions is too long", ErrInvalidInput)
	}

	return nil
}
