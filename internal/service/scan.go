package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/wb-go/wbf/ginext"

	"gatepass/internal/cache"
	"gatepass/internal/dto"
	"gatepass/internal/model"
	"gatepass/internal/repo"
	"gatepass/pkg/validator"
)

// ScanTicket consumes a confirmed ticket at the venue. The happy path is one
// conditional update keyed on scanned_at IS NULL; whatever that update does
// not match is classified afterwards with a plain read, so retried or
// concurrent scans of the same ticket get ALREADY_SCANNED, never a second
// success.
func (s *service) ScanTicket(ctx *ginext.Context) {
	var req dto.ScanTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if !s.authorizeScanner(ctx, req.ScannedBy) {
		return
	}

	booking, err := s.repo.ScanBooking(ctx, req.BookingID, req.EventID, req.ScannedBy, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotScannable) {
			s.rejectScan(ctx, &req)
			return
		}
		s.log.Error().Err(err).Int64("booking_id", req.BookingID).Msg("failed to scan booking")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Int64("booking_id", booking.ID).
		Int64("scanned_by", req.ScannedBy).
		Msg("ticket scanned")

	s.cache.Invalidate(ctx, cache.StatsKey(booking.EventID))

	attendee, err := s.repo.GetUserByID(ctx, booking.UserID)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", booking.UserID).Msg("failed to load attendee for scan response")
		attendee = &model.User{}
	}

	dto.SuccessResponse(ctx, dto.ScanTicketResponse{
		IsValid: true,
		Booking: scannedTicket(booking, attendee),
	})
}

func (s *service) authorizeScanner(ctx *ginext.Context, scannerID int64) bool {
	scanner, err := s.repo.GetUserByID(ctx, scannerID)
	if err != nil || !scanner.Role.CanScan() {
		s.log.Warn().Int64("scanner_id", scannerID).Msg("unauthorized scan attempt")
		dto.ForbiddenError(ctx, "Scanner is not authorized to verify tickets")
		return false
	}
	return true
}

// rejectScan explains a zero-row scan update. Checks follow the severity
// order: missing, wrong event, not paid, already used.
func (s *service) rejectScan(ctx *ginext.Context, req *dto.ScanTicketRequest) {
	booking, err := s.repo.GetBookingByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repo.ErrBookingNotFound) {
			dto.ScanRejectedError(ctx, 404, dto.TicketInvalid, "Ticket not found", &dto.ScanTicketResponse{
				IsValid: false,
				Message: "Ticket not found",
			})
			return
		}
		s.log.Error().Err(err).Int64("booking_id", req.BookingID).Msg("failed to load booking for scan diagnostics")
		dto.InternalServerError(ctx)
		return
	}

	attendee, err := s.repo.GetUserByID(ctx, booking.UserID)
	if err != nil {
		attendee = &model.User{}
	}

	var message string
	switch {
	case booking.EventID != req.EventID:
		message = "Ticket belongs to a different event"
	case booking.Status != model.BookingConfirmed:
		message = fmt.Sprintf("Ticket is not confirmed (status: %s)", booking.Status)
	case booking.Scanned():
		message = fmt.Sprintf("Ticket already scanned at %s", booking.ScannedAt.Format(time.RFC3339))
	default:
		// The booking changed between the update and this read; the scan
		// that beat us owns the ticket.
		message = "Ticket already scanned"
	}

	dto.ScanRejectedError(ctx, 400, dto.TicketInvalid, message, &dto.ScanTicketResponse{
		IsValid: false,
		Message: message,
		Booking: scannedTicket(booking, attendee),
	})
}

// ScanStats serves the operator dashboard aggregate, cached briefly in redis.
func (s *service) ScanStats(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Query("event_id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid event ID")
		return
	}
	scannerID, err := strconv.ParseInt(ctx.Query("scanner_id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid scanner ID")
		return
	}

	if !s.authorizeScanner(ctx, scannerID) {
		return
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		dto.EventNotFoundError(ctx)
		return
	}

	key := cache.StatsKey(eventID)
	var resp dto.ScanStatsResponse
	if s.cache.GetJSON(ctx, key, &resp) {
		dto.SuccessResponse(ctx, resp)
		return
	}

	stats, err := s.repo.EventStats(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to compute event stats")
		dto.InternalServerError(ctx)
		return
	}

	recent, err := s.repo.RecentConfirmedBookings(ctx, eventID, 10)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to load recent bookings")
		dto.InternalServerError(ctx)
		return
	}

	resp = dto.ScanStatsResponse{
		Event: eventResponse(event, stats.TotalTickets),
		Statistics: dto.StatisticsPayload{
			TotalBookings:     stats.TotalBookings,
			TotalTickets:      stats.TotalTickets,
			ConfirmedBookings: stats.ConfirmedBookings,
			AvailableTickets:  stats.AvailableTickets,
		},
		RecentBookings: make([]dto.BookingResponse, 0, len(recent)),
	}
	for i := range recent {
		resp.RecentBookings = append(resp.RecentBookings, bookingResponse(&recent[i]))
	}

	s.cache.SetJSON(ctx, key, resp)
	dto.SuccessResponse(ctx, resp)
}

func scannedTicket(b *model.Booking, attendee *model.User) *dto.ScannedTicket {
	return &dto.ScannedTicket{
		BookingID:     b.ID,
		EventID:       b.EventID,
		AttendeeName:  attendee.FullName,
		AttendeeEmail: attendee.Email,
		Tickets:       b.Tickets,
		TotalAmount:   model.FromCents(b.TotalCents),
		Status:        string(b.Status),
		ScannedAt:     b.ScannedAt,
	}
}
