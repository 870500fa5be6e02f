package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/wb-go/wbf/ginext"

	"gatepass/internal/cache"
	"gatepass/internal/dto"
	"gatepass/internal/gateway"
	"gatepass/internal/model"
	"gatepass/internal/repo"
	"gatepass/pkg/validator"
)

// CreateOrder opens a gateway order and a PENDING booking in that order: a
// gateway failure leaves no booking behind, and the insert re-checks capacity
// under a row lock so a concurrent order cannot oversell the event.
func (s *service) CreateOrder(ctx *ginext.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event, err := s.repo.GetEventByID(ctx, req.EventID)
	if err != nil {
		dto.EventNotFoundError(ctx)
		return
	}

	totalCents := event.PriceCents * int64(req.Tickets)
	if model.ToCents(req.TotalAmount) != totalCents {
		dto.BadResponseError(ctx, dto.AmountMismatch,
			fmt.Sprintf("Total amount does not match %d tickets at the event price", req.Tickets))
		return
	}

	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		dto.UserNotFoundError(ctx)
		return
	}

	if d := req.UserDetails; d != nil {
		if err := s.repo.UpdateUserContact(ctx, user.ID, d.FullName, d.Email, d.Phone); err != nil {
			s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to update user contact details")
		}
	}

	sold, err := s.repo.TicketsSold(ctx, event.ID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to count sold tickets")
		dto.InternalServerError(ctx)
		return
	}
	if sold+req.Tickets > event.Capacity {
		dto.BadResponseError(ctx, dto.CapacityExceeded, "Not enough tickets left for this event")
		return
	}

	receipt := gateway.Receipt(event.ID, user.ID, time.Now())
	order, err := s.gw.CreateOrder(ctx.Request.Context(), totalCents, s.cfg.Currency, receipt, map[string]string{
		"event_id": strconv.FormatInt(event.ID, 10),
		"user_id":  strconv.FormatInt(user.ID, 10),
		"tickets":  strconv.Itoa(req.Tickets),
	})
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", event.ID).Msg("gateway order creation failed")
		dto.ProviderError(ctx, "Payment provider is unavailable")
		return
	}

	booking := &model.Booking{
		EventID:        event.ID,
		UserID:         user.ID,
		Tickets:        req.Tickets,
		TotalCents:     totalCents,
		GatewayOrderID: order.ID,
	}

	bookingID, err := s.repo.CreateBookingTx(ctx.Request.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEventNotFound):
			dto.EventNotFoundError(ctx)
		case errors.Is(err, repo.ErrCapacityExceeded):
			dto.BadResponseError(ctx, dto.CapacityExceeded, "Not enough tickets left for this event")
		default:
			s.log.Error().Err(err).Msg("failed to create booking")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().
		Int64("booking_id", bookingID).
		Str("gateway_order_id", order.ID).
		Int("tickets", req.Tickets).
		Msg("booking created, awaiting payment")

	s.publishJob(dto.QueueMessage{
		Kind:      dto.JobBookingExpire,
		BookingID: bookingID,
		EventID:   event.ID,
		ExpireAt:  time.Now().Add(time.Duration(event.PaymentTimeoutMinutes) * time.Minute),
	}, event.PaymentTimeoutMinutes*60)

	dto.SuccessCreatedResponse(ctx, dto.CreateOrderResponse{
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		BookingID: bookingID,
		Event:     eventResponse(event, sold+req.Tickets),
	})
}

// VerifyPayment reconciles the gateway confirmation into the booking. The
// signature check gates everything; the confirm itself is a single conditional
// update, so a replayed or concurrent verification cannot double-confirm.
func (s *service) VerifyPayment(ctx *ginext.Context) {
	var req dto.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if !s.gw.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		// The one failure that mutates state: a PENDING booking must not
		// linger as ambiguously payable after a forged confirmation.
		if _, err := s.repo.FailBooking(ctx, req.BookingID, "signature verification failed"); err != nil {
			s.log.Error().Err(err).Int64("booking_id", req.BookingID).Msg("failed to mark booking FAILED")
		}
		s.log.Warn().
			Int64("booking_id", req.BookingID).
			Str("gateway_order_id", req.GatewayOrderID).
			Msg("payment signature verification failed")
		dto.BadResponseError(ctx, dto.SignatureInvalid, "Signature verification failed")
		return
	}

	booking, err := s.repo.ConfirmBooking(ctx, req.BookingID, req.GatewayOrderID, req.GatewayPaymentID)
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyProcessed) {
			dto.NotFoundError(ctx, dto.AlreadyProcessed, "Booking not found or already processed")
			return
		}
		s.log.Error().Err(err).Int64("booking_id", req.BookingID).Msg("failed to confirm booking")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Int64("booking_id", booking.ID).
		Str("payment_id", booking.PaymentID).
		Msg("booking confirmed")

	s.cache.Invalidate(ctx, cache.StatsKey(booking.EventID))
	s.publishJob(dto.QueueMessage{Kind: dto.JobTicketEmail, BookingID: booking.ID, EventID: booking.EventID}, 0)

	resp := dto.VerifyPaymentResponse{Booking: bookingResponse(booking)}
	if event, err := s.repo.GetEventByID(ctx, booking.EventID); err == nil {
		sold, serr := s.repo.TicketsSold(ctx, event.ID)
		if serr != nil {
			s.log.Warn().Err(serr).Msg("failed to count sold tickets for confirmation response")
		}
		er := eventResponse(event, sold)
		resp.Event = &er
	} else {
		s.log.Warn().Err(err).Int64("event_id", booking.EventID).Msg("failed to load event snapshot")
	}

	dto.SuccessResponse(ctx, resp)
}

// publishJob hands a message to the delayed exchange; delivery is best-effort
// and never affects the caller's response.
func (s *service) publishJob(msg dto.QueueMessage, delaySeconds int) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Str("kind", msg.Kind).Msg("failed to marshal queue message")
		return
	}
	if err := s.pub.Publish(payload, delaySeconds); err != nil {
		s.log.Error().Err(err).Str("kind", msg.Kind).Msg("failed to publish queue message")
	}
}
