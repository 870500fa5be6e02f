package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	EventNotFound    = "EVENT_NOT_FOUND"
	UserNotFound     = "USER_NOT_FOUND"
	BookingNotFound  = "BOOKING_NOT_FOUND"
	CapacityExceeded = "CAPACITY_EXCEEDED"
	AmountMismatch   = "AMOUNT_MISMATCH"
	SignatureInvalid = "SIGNATURE_INVALID"
	PaymentProvider  = "PAYMENT_PROVIDER_ERROR"
	NotAuthorized    = "NOT_AUTHORIZED"
	TicketInvalid    = "TICKET_INVALID"
	AlreadyProcessed = "ALREADY_PROCESSED"
)

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func errorResponse(c *ginext.Context, httpStatus int, code, desc string, data any) {
	c.JSON(httpStatus, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
		Data: data,
	})
}

func BadResponseError(c *ginext.Context, code, desc string) {
	errorResponse(c, 400, code, desc, nil)
}

func NotFoundError(c *ginext.Context, code, desc string) {
	errorResponse(c, 404, code, desc, nil)
}

func ForbiddenError(c *ginext.Context, desc string) {
	errorResponse(c, 403, NotAuthorized, desc, nil)
}

func ProviderError(c *ginext.Context, desc string) {
	errorResponse(c, 502, PaymentProvider, desc, nil)
}

func InternalServerError(c *ginext.Context) {
	errorResponse(c, 500, ServiceUnavailable, InternalError, nil)
}

func EventNotFoundError(c *ginext.Context) {
	NotFoundError(c, EventNotFound, "Event not found")
}

func UserNotFoundError(c *ginext.Context) {
	NotFoundError(c, UserNotFound, "User not found")
}

// ScanRejectedError carries the scan verdict payload alongside the error
// envelope so operator consoles can show what was actually scanned.
func ScanRejectedError(c *ginext.Context, httpStatus int, code, desc string, result *ScanTicketResponse) {
	errorResponse(c, httpStatus, code, desc, result)
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}

type CreateEventRequest struct {
	Name                  string    `json:"name" validate:"required"`
	Description           string    `json:"description"`
	StartTime             time.Time `json:"start_time" validate:"required"`
	EndTime               time.Time `json:"end_time"`
	Location              string    `json:"location"`
	Capacity              int       `json:"capacity" validate:"gt=0"`
	Price                 float64   `json:"price" validate:"gte=0"`
	PaymentTimeoutMinutes int       `json:"payment_timeout_minutes" validate:"gte=1"`
}

type UpdateEventRequest struct {
	Name                  string    `json:"name" validate:"required"`
	Description           string    `json:"description"`
	StartTime             time.Time `json:"start_time" validate:"required"`
	EndTime               time.Time `json:"end_time"`
	Location              string    `json:"location"`
	Capacity              int       `json:"capacity" validate:"gt=0"`
	Price                 float64   `json:"price" validate:"gte=0"`
	PaymentTimeoutMinutes int       `json:"payment_timeout_minutes" validate:"gte=1"`
}

type EventResponse struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description,omitempty"`
	StartTime             time.Time `json:"start_time"`
	EndTime               time.Time `json:"end_time,omitempty"`
	Location              string    `json:"location,omitempty"`
	Capacity              int       `json:"capacity"`
	Price                 float64   `json:"price"`
	Status                string    `json:"status"`
	PaymentTimeoutMinutes int       `json:"payment_timeout_minutes"`
	TicketsSold           int       `json:"tickets_sold"`
	AvailableTickets      int       `json:"available_tickets"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type UserDetails struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
}

type CreateOrderRequest struct {
	UserID      int64        `json:"user_id" validate:"required,gt=0"`
	EventID     int64        `json:"event_id" validate:"required,gt=0"`
	Tickets     int          `json:"tickets" validate:"required,positive"`
	TotalAmount float64      `json:"total_amount" validate:"gte=0"`
	UserDetails *UserDetails `json:"user_details,omitempty"`
}

type CreateOrderResponse struct {
	OrderID   string        `json:"order_id"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	BookingID int64         `json:"booking_id"`
	Event     EventResponse `json:"event"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	GatewaySignature string `json:"gateway_signature" validate:"required"`
	BookingID        int64  `json:"booking_id" validate:"required,gt=0"`
}

type BookingResponse struct {
	ID          int64      `json:"id"`
	EventID     int64      `json:"event_id"`
	UserID      int64      `json:"user_id"`
	Tickets     int        `json:"tickets"`
	TotalAmount float64    `json:"total_amount"`
	Status      string     `json:"status"`
	PaymentID   string     `json:"payment_id,omitempty"`
	ScannedAt   *time.Time `json:"scanned_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type VerifyPaymentResponse struct {
	Booking BookingResponse `json:"booking"`
	Event   *EventResponse  `json:"event,omitempty"`
}

type ScanTicketRequest struct {
	BookingID int64 `json:"booking_id" validate:"required,gt=0"`
	ScannedBy int64 `json:"scanned_by" validate:"required,gt=0"`
	EventID   int64 `json:"event_id" validate:"required,gt=0"`
}

type ScannedTicket struct {
	BookingID     int64      `json:"booking_id"`
	EventID       int64      `json:"event_id"`
	AttendeeName  string     `json:"attendee_name,omitempty"`
	AttendeeEmail string     `json:"attendee_email,omitempty"`
	Tickets       int        `json:"tickets"`
	TotalAmount   float64    `json:"total_amount"`
	Status        string     `json:"status"`
	ScannedAt     *time.Time `json:"scanned_at,omitempty"`
}

type ScanTicketResponse struct {
	IsValid bool           `json:"is_valid"`
	Message string         `json:"message,omitempty"`
	Booking *ScannedTicket `json:"booking,omitempty"`
}

type ScanStatsResponse struct {
	Event          EventResponse     `json:"event"`
	Statistics     StatisticsPayload `json:"statistics"`
	RecentBookings []BookingResponse `json:"recent_bookings"`
}

type StatisticsPayload struct {
	TotalBookings     int `json:"total_bookings"`
	TotalTickets      int `json:"total_tickets"`
	ConfirmedBookings int `json:"confirmed_bookings"`
	AvailableTickets  int `json:"available_tickets"`
}

const (
	JobBookingExpire = "booking.expire"
	JobTicketEmail   = "ticket.email"
)

// QueueMessage is the single envelope published to the delayed exchange.
// Kind selects the consumer branch; unused fields stay zero.
type QueueMessage struct {
	Kind      string    `json:"kind"`
	BookingID int64     `json:"booking_id"`
	EventID   int64     `json:"event_id"`
	ExpireAt  time.Time `json:"expire_at,omitempty"`
}
