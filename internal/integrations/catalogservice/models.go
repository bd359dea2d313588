package catalogservice

import "github.com/shopspring/decimal"

// Item модель товара из CatalogService
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	OwnerID   string          `json:"ownerId"`
	Price     decimal.Decimal `json:"price"` // цена за сутки аренды
	Available bool            `json:"available"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
