package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RentEasy-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RentEasy-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/RentEasy-BookingService/internal/integrations/userservice"
	"github.com/m04kA/RentEasy-BookingService/pkg/ptr"
	"github.com/m04kA/RentEasy-BookingService/pkg/txmanager"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindConflictingForUpdate(ctx context.Context, itemID string, start, end time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, itemID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockUserClient struct {
	mock.Mock
}

func (m *mockUserClient) GetUser(ctx context.Context, userID string) (*userservice.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userservice.User), args.Error(1)
}

type mockCatalogClient struct {
	mock.Mock
}

func (m *mockCatalogClient) GetItem(ctx context.Context, itemID string) (*catalogservice.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogservice.Item), args.Error(1)
}

type mockNotifyClient struct {
	mock.Mock
}

func (m *mockNotifyClient) Notify(ctx context.Context, userID, title, message, notificationType string) error {
	return m.Called(ctx, userID, title, message, notificationType).Error(0)
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// retryingTxManager повторяет fn при retryable ошибках по той же
// схеме, что и настоящие менеджеры транзакций
type retryingTxManager struct {
	attempts int
}

func (m *retryingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < 3; i++ {
		m.attempts++
		err = fn(ctx)
		if err == nil || !txmanager.IsRetryable(err) {
			return err
		}
	}
	return err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	repo    *mockBookingRepo
	users   *mockUserClient
	catalog *mockCatalogClient
	notify  *mockNotifyClient
	uc      *UseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:    &mockBookingRepo{},
		users:   &mockUserClient{},
		catalog: &mockCatalogClient{},
		notify:  &mockNotifyClient{},
	}
	env.uc = NewUseCase(env.repo, env.users, env.catalog, env.notify, fakeTxManager{}, nopLogger{})
	return env
}

func validRequest() *Request {
	return &Request{
		ItemID:          "item-1",
		UserID:          "user-1",
		StartDate:       date(2024, 7, 1),
		EndDate:         date(2024, 7, 5),
		DeliveryAddress: ptr.Ptr("12 Main St"),
	}
}

func testUser() *userservice.User {
	return &userservice.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}
}

func testItem() *catalogservice.Item {
	return &catalogservice.Item{
		ID:        "item-1",
		Name:      "Mountain Bike",
		OwnerID:   "owner-1",
		Price:     decimal.NewFromInt(10),
		Available: true,
	}
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.users.On("GetUser", mock.Anything, "user-1").Return(testUser(), nil)
	env.catalog.On("GetItem", mock.Anything, "item-1").Return(testItem(), nil)
	env.repo.On("FindConflictingForUpdate", mock.Anything, "item-1", date(2024, 7, 1), date(2024, 7, 5)).
		Return([]*domain.Booking{}, nil)
	env.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusPending &&
			b.RentalDays == 5 &&
			b.TotalPrice.Equal(decimal.NewFromInt(50)) &&
			b.ItemOwnerID == "owner-1" &&
			b.ItemName == "Mountain Bike" &&
			b.PaymentStatus == domain.DefaultPaymentStatus
	})).Return(&domain.Booking{
		ID:          "booking-1",
		ItemID:      "item-1",
		UserID:      "user-1",
		StartDate:   date(2024, 7, 1),
		EndDate:     date(2024, 7, 5),
		RentalDays:  5,
		TotalPrice:  decimal.NewFromInt(50),
		Status:      domain.StatusPending,
		ItemName:    "Mountain Bike",
		ItemOwnerID: "owner-1",
	}, nil)
	env.notify.On("Notify", mock.Anything, "owner-1", "New Booking Request",
		"You have a new booking request for Mountain Bike", domain.NotificationBookingConfirmed).Return(nil)

	resp, err := env.uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 5, resp.RentalDays)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(50)))

	env.notify.AssertNumberOfCalls(t, "Notify", 1)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.StartDate = date(2024, 7, 5)
	req.EndDate = date(2024, 7, 1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Валидация отсекает запрос до обращения к коллабораторам
	env.users.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	env.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_UserNotFound(t *testing.T) {
	env := newTestEnv()

	env.users.On("GetUser", mock.Anything, "user-1").Return(nil, userservice.ErrUserNotFound)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_ItemNotFound(t *testing.T) {
	env := newTestEnv()

	env.users.On("GetUser", mock.Anything, "user-1").Return(testUser(), nil)
	env.catalog.On("GetItem", mock.Anything, "item-1").Return(nil, catalogservice.ErrItemNotFound)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestExecute_ItemNotAvailable(t *testing.T) {
	env := newTestEnv()

	item := testItem()
	item.Available = false

	env.users.On("GetUser", mock.Anything, "user-1").Return(testUser(), nil)
	env.catalog.On("GetItem", mock.Anything, "item-1").Return(item, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrItemNotAvailable)

	// Недоступный товар не бронируется и не сохраняется
	env.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	env.notify.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_DatesConflict(t *testing.T) {
	env := newTestEnv()

	env.users.On("GetUser", mock.Anything, "user-1").Return(testUser(), nil)
	env.catalog.On("GetItem", mock.Anything, "item-1").Return(testItem(), nil)
	env.repo.On("FindConflictingForUpdate", mock.Anything, "item-1", date(2024, 7, 1), date(2024, 7, 5)).
		Return([]*domain.Booking{{ID: "existing", Status: domain.StatusConfirmed}}, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDatesConflict)

	env.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	env.notify.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ExclusionConstraintConflict(t *testing.T) {
	// Гонка: проверка прошла, но вставку отклонил exclusion constraint БД
	env := newTestEnv()

	env.users.On("GetUser", mock.Anything, "user-1").Return(testUser(), nil)
	env.catalog.On("GetItem", mock.Anything, "item-1").Return(testItem(), nil)
	env.repo.On("FindConflictingForUpdate", mock.Anything, "item-1", date(2024, 7, 1), date(2024, 7, 5)).
		Return([]*domain.Booking{}, nil)
	env.repo.On("Create", mock.Anything, mock.Anything).Return(nil, bookingRepo.ErrDatesConflict)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDatesConflict)
}

func TestExecute_SerializationFailureStaysRetryable(t *testing.T) {
	// Ошибка сериализации внутри замыкания должна оставаться видимой
	// для retry-логики менеджера транзакций сквозь обертку ErrInternal
	env := newTestEnv()
	txm := &retryingTxManager{}
	env.uc = NewUseCase(env.repo, env.users, env.catalog, env.notify, txm, nopLogger{})

	env.users.On("GetUser", mock.Anything, "user-1").Return(testUser(), nil)
	env.catalog.On("GetItem", mock.Anything, "item-1").Return(testItem(), nil)
	env.repo.On("FindConflictingForUpdate", mock.Anything, "item-1", date(2024, 7, 1), date(2024, 7, 5)).
		Return(nil, &pq.Error{Code: "40001"})

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 3, txm.attempts)
}

func TestExecute_NotifyFailureDoesNotFailBooking(t *testing.T) {
	env := newTestEnv()

	env.users.On("GetUser", mock.Anything, "user-1").Return(testUser(), nil)
	env.catalog.On("GetItem", mock.Anything, "item-1").Return(testItem(), nil)
	env.repo.On("FindConflictingForUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Booking{}, nil)
	env.repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
		ID:          "booking-1",
		Status:      domain.StatusPending,
		TotalPrice:  decimal.NewFromInt(50),
		ItemOwnerID: "owner-1",
	}, nil)
	env.notify.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("notify service is down"))

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
}
