package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// rentalDays считает число суток аренды по inclusive-диапазону дат:
// день начала и день окончания оба оплачиваются, минимум 1.
// Даты нормализуются до полуночи, чтобы компонент времени и переходы
// на летнее время не влияли на результат.
func rentalDays(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	days := int(endDay.Sub(startDay).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// computeRental вычисляет число суток и итоговую цену аренды.
// Деньги считаются в точной десятичной арифметике: итог равен
// price * days без потерь округления.
func computeRental(price decimal.Decimal, start, end time.Time) (int, decimal.Decimal, error) {
	if end.Before(start) {
		return 0, decimal.Decimal{}, ErrInvalidDateRange
	}

	days := rentalDays(start, end)
	total := price.Mul(decimal.NewFromInt(int64(days)))
	return days, total, nil
}
