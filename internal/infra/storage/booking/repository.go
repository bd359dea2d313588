package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	"github.com/m04kA/RentEasy-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RentEasy-BookingService/pkg/psqlbuilder"
)

// Код ошибки Postgres для нарушений exclusion constraint
// (bookings_no_date_overlap в миграции)
const pqExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"item_id",
	"user_id",
	"start_date",
	"end_date",
	"rental_days",
	"total_price",
	"status",
	"payment_status",
	"delivery_address",
	"special_instructions",
	"item_name",
	"item_owner_id",
	"item_price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// ID генерируется на стороне приложения (UUID), created_at/updated_at
// выставляет БД. Если в контексте есть активная транзакция, вставка
// выполняется в ней — usecase создания бронирования совмещает проверку
// конфликтов и вставку в одной сериализуемой транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.ID = uuid.NewString()

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"item_id",
			"user_id",
			"start_date",
			"end_date",
			"rental_days",
			"total_price",
			"status",
			"payment_status",
			"delivery_address",
			"special_instructions",
			"item_name",
			"item_owner_id",
			"item_price",
		).
		Values(
			booking.ID,
			booking.ItemID,
			booking.UserID,
			booking.StartDate,
			booking.EndDate,
			booking.RentalDays,
			booking.TotalPrice,
			booking.Status,
			booking.PaymentStatus,
			booking.DeliveryAddress,
			booking.SpecialInstructions,
			booking.ItemName,
			booking.ItemOwnerID,
			booking.ItemPrice,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqExclusionViolation {
			return nil, ErrDatesConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает все бронирования пользователя (как заказчика),
// отсортированные по времени создания — сначала новые
func (r *Repository) GetByUserID(ctx context.Context, userID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByUserIDPaginated получает страницу бронирований пользователя
// (created_at DESC) и общее количество его бронирований
func (r *Repository) GetByUserIDPaginated(ctx context.Context, userID string, limit, offset uint64) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserIDPaginated - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserIDPaginated - scan count: %w", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserIDPaginated - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserIDPaginated - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// GetByItemID получает все бронирования товара
func (r *Repository) GetByItemID(ctx context.Context, itemID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByItemID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByItemID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByItemOwnerID получает все бронирования товаров, принадлежащих
// владельцу (по денормализованному item_owner_id)
func (r *Repository) GetByItemOwnerID(ctx context.Context, ownerID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"item_owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByItemOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByItemOwnerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// FindConflicting возвращает активные бронирования товара, чей
// inclusive-диапазон дат пересекается с [start, end]:
// start_date <= end AND end_date >= start, статус не CANCELLED/REFUNDED.
// Строки не блокируются, метод безопасен в read-only транзакциях.
func (r *Repository) FindConflicting(ctx context.Context, itemID string, start, end time.Time) ([]*domain.Booking, error) {
	return r.findConflicting(ctx, itemID, start, end, false)
}

// FindConflictingForUpdate то же, что FindConflicting, но блокирует
// найденные строки FOR UPDATE. Используется usecase'ом создания
// бронирования, который проверяет конфликты и вставляет в одной
// сериализуемой транзакции. В read-only транзакции Postgres отклонит
// запрос (25006), поэтому блокировка запрашивается явно, а не выводится
// из наличия транзакции в контексте.
func (r *Repository) FindConflictingForUpdate(ctx context.Context, itemID string, start, end time.Time) ([]*domain.Booking, error) {
	return r.findConflicting(ctx, itemID, start, end, true)
}

func (r *Repository) findConflicting(ctx context.Context, itemID string, start, end time.Time, forUpdate bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStatuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.NotEq{"status": inactiveStatuses}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.GtOrEq{"end_date": start}).
		OrderBy("start_date ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicting - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования и возвращает выставленный
// базой updated_at, чтобы ответ нес актуальную отметку времени
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrBookingNotFound
		}
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return updatedAt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ItemID,
		&booking.UserID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.RentalDays,
		&booking.TotalPrice,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.DeliveryAddress,
		&booking.SpecialInstructions,
		&booking.ItemName,
		&booking.ItemOwnerID,
		&booking.ItemPrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
