package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	ItemID              string    // ID товара
	UserID              string    // ID заказчика (из заголовка аутентификации)
	StartDate           time.Time // Первый день аренды (включительно)
	EndDate             time.Time // Последний день аренды (включительно)
	DeliveryAddress     *string   // Адрес доставки (опционально)
	SpecialInstructions *string   // Особые пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         string
	ItemID     string
	UserID     string
	StartDate  time.Time
	EndDate    time.Time
	RentalDays int
	TotalPrice decimal.Decimal
	Status     string

	PaymentStatus       string
	DeliveryAddress     *string
	SpecialInstructions *string

	// Денормализованные данные товара
	ItemName    string
	ItemOwnerID string
	ItemPrice   decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
