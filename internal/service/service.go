package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"gatepass/internal/cache"
	"gatepass/internal/dto"
	"gatepass/internal/gateway"
	"gatepass/internal/model"
	"gatepass/internal/rabbit"
	"gatepass/internal/repo"
	"gatepass/pkg/validator"
)

type Service interface {
	CreateEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)
	GetEvent(ctx *ginext.Context)
	ListEvents(ctx *ginext.Context)
	CreateOrder(ctx *ginext.Context)
	VerifyPayment(ctx *ginext.Context)
	ScanTicket(ctx *ginext.Context)
	ScanStats(ctx *ginext.Context)
}

type Config struct {
	Currency string
}

type service struct {
	repo  repo.Repository
	gw    gateway.Client
	pub   rabbit.Publisher
	cache *cache.Client
	cfg   Config
	log   *zerolog.Logger
}

func NewService(repo repo.Repository, gw gateway.Client, pub rabbit.Publisher, statsCache *cache.Client, cfg Config, logger *zerolog.Logger) Service {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &service{
		repo:  repo,
		gw:    gw,
		pub:   pub,
		cache: statsCache,
		cfg:   cfg,
		log:   logger,
	}
}

func (s *service) CreateEvent(ctx *ginext.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse create event request")
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		s.log.Error().Msgf("validation failed: %v", verr)
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event := &model.Event{
		Name:                  req.Name,
		Description:           req.Description,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		Location:              req.Location,
		Capacity:              req.Capacity,
		PriceCents:            model.ToCents(req.Price),
		PaymentTimeoutMinutes: req.PaymentTimeoutMinutes,
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event in DB")
		dto.InternalServerError(ctx)
		return
	}

	event.ID = id
	s.log.Info().Int64("event_id", id).Msg("event created successfully")

	dto.SuccessCreatedResponse(ctx, eventResponse(event, 0))
}

func (s *service) UpdateEvent(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid event ID")
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event := &model.Event{
		ID:                    eventID,
		Name:                  req.Name,
		Description:           req.Description,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		Location:              req.Location,
		Capacity:              req.Capacity,
		PriceCents:            model.ToCents(req.Price),
		PaymentTimeoutMinutes: req.PaymentTimeoutMinutes,
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		if err == repo.ErrEventNotFound {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to update event")
		dto.InternalServerError(ctx)
		return
	}

	sold, err := s.repo.TicketsSold(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to count sold tickets")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, eventResponse(event, sold))
}

func (s *service) GetEvent(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid event ID")
		return
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		dto.EventNotFoundError(ctx)
		return
	}

	sold, err := s.repo.TicketsSold(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to count sold tickets")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, eventResponse(event, sold))
}

func (s *service) ListEvents(ctx *ginext.Context) {
	events, err := s.repo.GetAllEvents(ctx)
	if err != nil {
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		sold, err := s.repo.TicketsSold(ctx, events[i].ID)
		if err != nil {
			s.log.Error().Err(err).Int64("event_id", events[i].ID).Msg("failed to count sold tickets")
			continue
		}
		resp = append(resp, eventResponse(&events[i], sold))
	}

	dto.SuccessResponse(ctx, resp)
}

func eventResponse(e *model.Event, sold int) dto.EventResponse {
	return dto.EventResponse{
		ID:                    e.ID,
		Name:                  e.Name,
		Description:           e.Description,
		StartTime:             e.StartTime,
		EndTime:               e.EndTime,
		Location:              e.Location,
		Capacity:              e.Capacity,
		Price:                 model.FromCents(e.PriceCents),
		Status:                string(e.Status(time.Now())),
		PaymentTimeoutMinutes: e.PaymentTimeoutMinutes,
		TicketsSold:           sold,
		AvailableTickets:      e.Capacity - sold,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func bookingResponse(b *model.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:          b.ID,
		EventID:     b.EventID,
		UserID:      b.UserID,
		Tickets:     b.Tickets,
		TotalAmount: model.FromCents(b.TotalCents),
		Status:      string(b.Status),
		PaymentID:   b.PaymentID,
		ScannedAt:   b.ScannedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
