package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gatepass/internal/api/api"
	"gatepass/internal/dto"
	"gatepass/internal/gateway"
	"gatepass/internal/model"
	"gatepass/internal/repo"
	"gatepass/internal/service"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) UpdateEvent(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockRepo) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *mockRepo) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *mockRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockRepo) UpdateUserContact(ctx context.Context, id int64, fullName, email, phone string) error {
	return m.Called(ctx, id, fullName, email, phone).Error(0)
}

func (m *mockRepo) TicketsSold(ctx context.Context, eventID int64) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) CreateBookingTx(ctx context.Context, b *model.Booking) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) GetBookingByID(ctx context.Context, id int64) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *mockRepo) ConfirmBooking(ctx context.Context, bookingID int64, gatewayOrderID, paymentID string) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, gatewayOrderID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *mockRepo) FailBooking(ctx context.Context, bookingID int64, reason string) (bool, error) {
	args := m.Called(ctx, bookingID, reason)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ScanBooking(ctx context.Context, bookingID, eventID, scannerID int64, scannedAt time.Time) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, eventID, scannerID, scannedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *mockRepo) EventStats(ctx context.Context, event *model.Event) (*model.EventStats, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventStats), args.Error(1)
}

func (m *mockRepo) RecentConfirmedBookings(ctx context.Context, eventID int64, limit int) ([]model.Booking, error) {
	args := m.Called(ctx, eventID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockRepo) MigrateUp(dir string) error   { return m.Called(dir).Error(0) }
func (m *mockRepo) MigrateDown(dir string) error { return m.Called(dir).Error(0) }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(message []byte, delaySeconds int) error {
	return m.Called(message, delaySeconds).Error(0)
}

// fakeGateway verifies signatures with the real HMAC scheme and returns a
// canned order, so tests can sign payloads exactly like the provider would.
type fakeGateway struct {
	secret string
	order  *gateway.Order
	err    error
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string, _ map[string]string) (*gateway.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.order != nil {
		return g.order, nil
	}
	return &gateway.Order{ID: "order_test", Amount: amount, Currency: currency}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return gateway.Sign(g.secret, orderID, paymentID) == signature
}

func newTestRouter(r repo.Repository, gw gateway.Client, pub *mockPublisher) http.Handler {
	logger := zerolog.Nop()
	svc := service.NewService(r, gw, pub, nil, service.Config{Currency: "INR"}, &logger)
	return api.NewRouters(&api.Routers{Service: svc})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testEvent() *model.Event {
	return &model.Event{
		ID:                    5,
		Name:                  "Go Conference",
		StartTime:             time.Now().Add(48 * time.Hour),
		EndTime:               time.Now().Add(56 * time.Hour),
		Location:              "Hall B",
		Capacity:              10,
		PriceCents:            50000,
		PaymentTimeoutMinutes: 15,
	}
}

func TestCreateOrder_Success(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	event := testEvent()
	repoMock.On("GetEventByID", mock.Anything, int64(5)).Return(event, nil)
	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, Role: model.RoleAttendee}, nil)
	repoMock.On("TicketsSold", mock.Anything, int64(5)).Return(0, nil)
	repoMock.On("CreateBookingTx", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(int64(41), nil)
	pub.On("Publish", mock.Anything, 15*60).Return(nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/payment/create-order", dto.CreateOrderRequest{
		UserID:      7,
		EventID:     5,
		Tickets:     10,
		TotalAmount: 5000,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Data dto.CreateOrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order_test", resp.Data.OrderID)
	assert.Equal(t, int64(41), resp.Data.BookingID)
	assert.Equal(t, int64(500000), resp.Data.Amount)
	assert.Equal(t, 0, resp.Data.Event.AvailableTickets)
	pub.AssertExpectations(t)
}

func TestCreateOrder_CapacityExhausted(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	event := testEvent()
	repoMock.On("GetEventByID", mock.Anything, int64(5)).Return(event, nil)
	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)
	repoMock.On("TicketsSold", mock.Anything, int64(5)).Return(10, nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/payment/create-order", dto.CreateOrderRequest{
		UserID:      7,
		EventID:     5,
		Tickets:     1,
		TotalAmount: 500,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.CapacityExceeded)
	repoMock.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrder_CapacityRace(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	event := testEvent()
	repoMock.On("GetEventByID", mock.Anything, int64(5)).Return(event, nil)
	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)
	repoMock.On("TicketsSold", mock.Anything, int64(5)).Return(9, nil)
	// the transactional re-check sees another booking that won the row lock
	repoMock.On("CreateBookingTx", mock.Anything, mock.Anything).Return(int64(0), repo.ErrCapacityExceeded)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/payment/create-order", dto.CreateOrderRequest{
		UserID:      7,
		EventID:     5,
		Tickets:     1,
		TotalAmount: 500,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.CapacityExceeded)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrder_AmountMismatch(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	repoMock.On("GetEventByID", mock.Anything, int64(5)).Return(testEvent(), nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/payment/create-order", dto.CreateOrderRequest{
		UserID:      7,
		EventID:     5,
		Tickets:     2,
		TotalAmount: 999.99,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.AmountMismatch)
	repoMock.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret", err: fmt.Errorf("gateway returned status 503")}

	event := testEvent()
	repoMock.On("GetEventByID", mock.Anything, int64(5)).Return(event, nil)
	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)
	repoMock.On("TicketsSold", mock.Anything, int64(5)).Return(0, nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/payment/create-order", dto.CreateOrderRequest{
		UserID:      7,
		EventID:     5,
		Tickets:     1,
		TotalAmount: 500,
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	// no partial booking may remain after a provider failure
	repoMock.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
}

func TestVerifyPayment_Success(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	confirmed := &model.Booking{
		ID:             41,
		EventID:        5,
		UserID:         7,
		Tickets:        2,
		TotalCents:     100000,
		Status:         model.BookingConfirmed,
		GatewayOrderID: "order_1",
		PaymentID:      "pay_1",
	}
	repoMock.On("ConfirmBooking", mock.Anything, int64(41), "order_1", "pay_1").Return(confirmed, nil)
	repoMock.On("GetEventByID", mock.Anything, int64(5)).Return(testEvent(), nil)
	repoMock.On("TicketsSold", mock.Anything, int64(5)).Return(2, nil)
	pub.On("Publish", mock.Anything, 0).Return(nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/payment/verify", dto.VerifyPaymentRequest{
		GatewayOrderID:   "order_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: gateway.Sign("test-secret", "order_1", "pay_1"),
		BookingID:        41,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data dto.VerifyPaymentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CONFIRMED", resp.Data.Booking.Status)
	assert.Equal(t, "pay_1", resp.Data.Booking.PaymentID)
	pub.AssertExpectations(t)
}

func TestVerifyPayment_BadSignature(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	repoMock.On("FailBooking", mock.Anything, int64(41), "signature verification failed").Return(true, nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/payment/verify", dto.VerifyPaymentRequest{
		GatewayOrderID:   "order_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: gateway.Sign("other-secret", "order_1", "pay_1"),
		BookingID:        41,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.SignatureInvalid)
	repoMock.AssertCalled(t, "FailBooking", mock.Anything, int64(41), "signature verification failed")
	repoMock.AssertNotCalled(t, "ConfirmBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestVerifyPayment_Replay(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	repoMock.On("ConfirmBooking", mock.Anything, int64(41), "order_1", "pay_1").Return(nil, repo.ErrAlreadyProcessed)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/payment/verify", dto.VerifyPaymentRequest{
		GatewayOrderID:   "order_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: gateway.Sign("test-secret", "order_1", "pay_1"),
		BookingID:        41,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), dto.AlreadyProcessed)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func scannerUser(role model.Role) *model.User {
	return &model.User{ID: 99, FullName: "Gate Staff", Role: role}
}

func TestScanTicket_Success(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	scannedAt := time.Now().UTC()
	scanned := &model.Booking{
		ID:         41,
		EventID:    5,
		UserID:     7,
		Tickets:    2,
		TotalCents: 100000,
		Status:     model.BookingConfirmed,
		ScannedAt:  &scannedAt,
	}
	repoMock.On("GetUserByID", mock.Anything, int64(99)).Return(scannerUser(model.RoleEventAdmin), nil)
	repoMock.On("ScanBooking", mock.Anything, int64(41), int64(5), int64(99), mock.AnythingOfType("time.Time")).Return(scanned, nil)
	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, FullName: "Ada Attendee", Email: "ada@example.com"}, nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/admin/scan-ticket", dto.ScanTicketRequest{
		BookingID: 41,
		ScannedBy: 99,
		EventID:   5,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data dto.ScanTicketResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.IsValid)
	require.NotNil(t, resp.Data.Booking)
	assert.Equal(t, "Ada Attendee", resp.Data.Booking.AttendeeName)
	assert.Equal(t, 2, resp.Data.Booking.Tickets)
	require.NotNil(t, resp.Data.Booking.ScannedAt)
}

func TestScanTicket_AlreadyScanned(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	firstScan := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	used := &model.Booking{
		ID:        41,
		EventID:   5,
		UserID:    7,
		Tickets:   2,
		Status:    model.BookingConfirmed,
		ScannedAt: &firstScan,
	}
	repoMock.On("GetUserByID", mock.Anything, int64(99)).Return(scannerUser(model.RoleSuperAdmin), nil)
	repoMock.On("ScanBooking", mock.Anything, int64(41), int64(5), int64(99), mock.AnythingOfType("time.Time")).Return(nil, repo.ErrNotScannable)
	repoMock.On("GetBookingByID", mock.Anything, int64(41)).Return(used, nil)
	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/admin/scan-ticket", dto.ScanTicketRequest{
		BookingID: 41,
		ScannedBy: 99,
		EventID:   5,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// the rejection reports the original scan time
	assert.Contains(t, w.Body.String(), firstScan.Format(time.RFC3339))
	assert.Contains(t, w.Body.String(), `"is_valid":false`)
}

func TestScanTicket_WrongEvent(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	other := &model.Booking{ID: 41, EventID: 6, UserID: 7, Status: model.BookingConfirmed}
	repoMock.On("GetUserByID", mock.Anything, int64(99)).Return(scannerUser(model.RoleEventAdmin), nil)
	repoMock.On("ScanBooking", mock.Anything, int64(41), int64(5), int64(99), mock.AnythingOfType("time.Time")).Return(nil, repo.ErrNotScannable)
	repoMock.On("GetBookingByID", mock.Anything, int64(41)).Return(other, nil)
	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/admin/scan-ticket", dto.ScanTicketRequest{
		BookingID: 41,
		ScannedBy: 99,
		EventID:   5,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "different event")
}

func TestScanTicket_NotConfirmed(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	pending := &model.Booking{ID: 41, EventID: 5, UserID: 7, Status: model.BookingPending}
	repoMock.On("GetUserByID", mock.Anything, int64(99)).Return(scannerUser(model.RoleEventAdmin), nil)
	repoMock.On("ScanBooking", mock.Anything, int64(41), int64(5), int64(99), mock.AnythingOfType("time.Time")).Return(nil, repo.ErrNotScannable)
	repoMock.On("GetBookingByID", mock.Anything, int64(41)).Return(pending, nil)
	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7}, nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/admin/scan-ticket", dto.ScanTicketRequest{
		BookingID: 41,
		ScannedBy: 99,
		EventID:   5,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PENDING")
}

func TestScanTicket_NotFound(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	repoMock.On("GetUserByID", mock.Anything, int64(99)).Return(scannerUser(model.RoleEventAdmin), nil)
	repoMock.On("ScanBooking", mock.Anything, int64(404), int64(5), int64(99), mock.AnythingOfType("time.Time")).Return(nil, repo.ErrNotScannable)
	repoMock.On("GetBookingByID", mock.Anything, int64(404)).Return(nil, repo.ErrBookingNotFound)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/admin/scan-ticket", dto.ScanTicketRequest{
		BookingID: 404,
		ScannedBy: 99,
		EventID:   5,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Ticket not found")
}

func TestScanTicket_Unauthorized(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	repoMock.On("GetUserByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, Role: model.RoleAttendee}, nil)

	router := newTestRouter(repoMock, gw, pub)
	w := doJSON(t, router, http.MethodPost, "/v1/admin/scan-ticket", dto.ScanTicketRequest{
		BookingID: 41,
		ScannedBy: 7,
		EventID:   5,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	repoMock.AssertNotCalled(t, "ScanBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScanStats(t *testing.T) {
	repoMock := new(mockRepo)
	pub := new(mockPublisher)
	gw := &fakeGateway{secret: "test-secret"}

	event := testEvent()
	repoMock.On("GetUserByID", mock.Anything, int64(99)).Return(scannerUser(model.RoleEventAdmin), nil)
	repoMock.On("GetEventByID", mock.Anything, int64(5)).Return(event, nil)
	repoMock.On("EventStats", mock.Anything, event).Return(&model.EventStats{
		TotalBookings:     4,
		TotalTickets:      7,
		ConfirmedBookings: 3,
		AvailableTickets:  3,
	}, nil)
	repoMock.On("RecentConfirmedBookings", mock.Anything, int64(5), 10).Return([]model.Booking{
		{ID: 41, EventID: 5, UserID: 7, Tickets: 2, Status: model.BookingConfirmed},
	}, nil)

	router := newTestRouter(repoMock, gw, pub)
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/scan-ticket?event_id=5&scanner_id=99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data dto.ScanStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Data.Statistics.TotalTickets)
	assert.Equal(t, 3, resp.Data.Statistics.AvailableTickets)
	assert.Len(t, resp.Data.RecentBookings, 1)
}
