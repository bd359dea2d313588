package domain

// Date format used across the API (calendar dates, no time component)
const DateFormat = "2006-01-02"

// Business validation constants
const (
	DefaultPaymentStatus = "pending"

	MaxDeliveryAddressLength     = 500
	MaxSpecialInstructionsLength = 1000
)

// InactiveStatuses список статусов, не блокирующих даты товара.
// Используется в запросе поиска пересекающихся бронирований.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRefunded,
}

// Notification types delivered to the notification service
const (
	NotificationBookingConfirmed = "BOOKING_CONFIRMED"
	NotificationBookingCancelled = "BOOKING_CANCELLED"
)
