package update_booking_status

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEasy-BookingService/internal/api/middleware"
	"github.com/m04kA/RentEasy-BookingService/internal/service/bookings"
	"github.com/m04kA/RentEasy-BookingService/internal/service/bookings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc *mockService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId}/status", h.Handle).Methods(http.MethodPatch)
	return r
}

func doRequest(t *testing.T, r *mux.Router, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/booking-1/status", bytes.NewBufferString(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, "booking-1", &models.UpdateStatusRequest{
		UserID: "owner-1",
		Status: "CONFIRMED",
	}).Return(&models.BookingResponse{ID: "booking-1", Status: "CONFIRMED"}, nil)

	rec := doRequest(t, newRouter(svc), "owner-1", `{"status":"CONFIRMED"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestHandle_MissingUserHeader(t *testing.T) {
	svc := &mockService{}

	rec := doRequest(t, newRouter(svc), "", `{"status":"CONFIRMED"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_InvalidTransition(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, "booking-1", mock.Anything).
		Return(nil, bookings.ErrInvalidTransition)

	rec := doRequest(t, newRouter(svc), "owner-1", `{"status":"COMPLETED"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_Forbidden(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, "booking-1", mock.Anything).
		Return(nil, bookings.ErrAccessDenied)

	rec := doRequest(t, newRouter(svc), "stranger", `{"status":"CONFIRMED"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_NotFound(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, "booking-1", mock.Anything).
		Return(nil, bookings.ErrBookingNotFound)

	rec := doRequest(t, newRouter(svc), "owner-1", `{"status":"CONFIRMED"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	svc := &mockService{}

	rec := doRequest(t, newRouter(svc), "owner-1", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
