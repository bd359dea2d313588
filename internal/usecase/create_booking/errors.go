package create_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrItemNotFound возвращается, когда товар не найден в каталоге
	ErrItemNotFound = errors.New("create_booking: item not found")

	// ErrItemNotAvailable возвращается, когда товар снят с бронирования владельцем
	ErrItemNotAvailable = errors.New("create_booking: item is not available for booking")

	// ErrDatesConflict возвращается, когда даты пересекаются с активным бронированием
	ErrDatesConflict = errors.New("create_booking: item is already booked for the selected dates")

	// ErrInvalidDateRange возвращается, когда дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("create_booking: end date is before start date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
