package catalogservice

import "errors"

var (
	// ErrItemNotFound возвращается, когда товар не найден в каталоге
	ErrItemNotFound = errors.New("item not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
