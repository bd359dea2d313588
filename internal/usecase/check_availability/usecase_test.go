package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEasy-BookingService/internal/domain"
	"github.com/m04kA/RentEasy-BookingService/internal/integrations/catalogservice"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) FindConflicting(ctx context.Context, itemID string, start, end time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, itemID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
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

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
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

func TestExecute_Available(t *testing.T) {
	repo := &mockBookingRepo{}
	catalog := &mockCatalogClient{}
	uc := NewUseCase(repo, catalog, fakeTxManager{}, nopLogger{})

	catalog.On("GetItem", mock.Anything, "item-1").Return(testItem(), nil)
	repo.On("FindConflicting", mock.Anything, "item-1", date(2024, 7, 1), date(2024, 7, 5)).
		Return([]*domain.Booking{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    "item-1",
		StartDate: date(2024, 7, 1),
		EndDate:   date(2024, 7, 5),
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.BusyRanges)
}

func TestExecute_BusyRanges(t *testing.T) {
	repo := &mockBookingRepo{}
	catalog := &mockCatalogClient{}
	uc := NewUseCase(repo, catalog, fakeTxManager{}, nopLogger{})

	catalog.On("GetItem", mock.Anything, "item-1").Return(testItem(), nil)
	repo.On("FindConflicting", mock.Anything, "item-1", date(2024, 7, 1), date(2024, 7, 10)).
		Return([]*domain.Booking{
			{ID: "b1", StartDate: date(2024, 7, 2), EndDate: date(2024, 7, 4), Status: domain.StatusConfirmed},
			{ID: "b2", StartDate: date(2024, 7, 8), EndDate: date(2024, 7, 12), Status: domain.StatusPending},
		}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ItemID:    "item-1",
		StartDate: date(2024, 7, 1),
		EndDate:   date(2024, 7, 10),
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.Len(t, resp.BusyRanges, 2)
	assert.Equal(t, date(2024, 7, 2), resp.BusyRanges[0].StartDate)
	assert.Equal(t, date(2024, 7, 12), resp.BusyRanges[1].EndDate)
}

func TestExecute_ItemNotFound(t *testing.T) {
	repo := &mockBookingRepo{}
	catalog := &mockCatalogClient{}
	uc := NewUseCase(repo, catalog, fakeTxManager{}, nopLogger{})

	catalog.On("GetItem", mock.Anything, "missing").Return(nil, catalogservice.ErrItemNotFound)

	_, err := uc.Execute(context.Background(), &Request{
		ItemID:    "missing",
		StartDate: date(2024, 7, 1),
		EndDate:   date(2024, 7, 5),
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
	repo.AssertNotCalled(t, "FindConflicting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	uc := NewUseCase(&mockBookingRepo{}, &mockCatalogClient{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ItemID:    "item-1",
		StartDate: date(2024, 7, 5),
		EndDate:   date(2024, 7, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
