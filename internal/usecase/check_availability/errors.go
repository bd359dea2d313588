package check_availability

import "errors"

var (
	// ErrItemNotFound товар не найден в каталоге
	ErrItemNotFound = errors.New("check_availability: item not found")
	// ErrInvalidDateRange некорректный диапазон дат
	ErrInvalidDateRange = errors.New("check_availability: end date is before start date")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("check_availability: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("check_availability: internal error")
)
