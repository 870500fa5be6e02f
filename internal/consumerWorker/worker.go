package consumerWorker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/zlog"

	"gatepass/internal/cache"
	"gatepass/internal/dto"
	"gatepass/internal/mailer"
	"gatepass/internal/model"
	"gatepass/internal/rabbit"
	"gatepass/internal/repo"
	"gatepass/internal/ticket"
)

// Reader drains the booking job queue: delayed expiry of unpaid bookings and
// ticket-email delivery after confirmation. Both run outside any request, so
// their failures can never affect a payment response.
type Reader struct {
	RMQ      *rabbit.Client
	repo     repo.Repository
	mail     *mailer.Mailer
	renderer ticket.Renderer
	cache    *cache.Client
	done     chan struct{}
	cancel   context.CancelFunc
}

func NewReader(rmq *rabbit.Client, repo repo.Repository, mail *mailer.Mailer, renderer ticket.Renderer, statsCache *cache.Client) *Reader {
	return &Reader{
		RMQ:      rmq,
		repo:     repo,
		mail:     mail,
		renderer: renderer,
		cache:    statsCache,
		done:     make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("booking job consumer started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.QueueMessage
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().Err(err).Msgf("failed to unmarshal message: %s", string(body))
				return err
			}

			switch msg.Kind {
			case dto.JobBookingExpire:
				return r.expireBooking(cctx, &msg)
			case dto.JobTicketEmail:
				return r.sendTicketEmail(cctx, &msg)
			default:
				zlog.Logger.Warn().Str("kind", msg.Kind).Msg("unknown job kind, dropping")
				return nil
			}
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("booking job consumer stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}

// expireBooking fails a booking whose payment window ran out. The update is
// conditional on PENDING, so a booking confirmed in the meantime is untouched.
func (r *Reader) expireBooking(ctx context.Context, msg *dto.QueueMessage) error {
	expired, err := r.repo.FailBooking(ctx, msg.BookingID, "payment window expired")
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("booking_id", msg.BookingID).Msg("failed to expire booking")
		return err
	}

	if !expired {
		zlog.Logger.Info().
			Int64("booking_id", msg.BookingID).
			Msg("booking already confirmed or failed, skipping expiry")
		return nil
	}

	r.cache.Invalidate(ctx, cache.StatsKey(msg.EventID))
	zlog.Logger.Info().Int64("booking_id", msg.BookingID).Msg("booking expired, tickets released")

	_, event, user, err := r.loadBookingContext(ctx, msg.BookingID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("booking_id", msg.BookingID).Msg("failed to load booking context")
		return nil
	}

	subject := fmt.Sprintf("Your booking for %s has expired", event.Name)
	html := fmt.Sprintf("<p>Hi %s,</p><p>your booking for <strong>%s</strong> was cancelled because the payment window expired. No charge was made.</p>",
		user.FullName, event.Name)
	if err := r.mail.SendTicketEmail(user.Email, subject, html); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to send expiry email")
	}
	return nil
}

// sendTicketEmail renders the ticket and mails it. Delivery is best-effort:
// any failure is logged and the message acked, never retried into a storm.
func (r *Reader) sendTicketEmail(ctx context.Context, msg *dto.QueueMessage) error {
	booking, event, user, err := r.loadBookingContext(ctx, msg.BookingID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("booking_id", msg.BookingID).Msg("failed to load booking context")
		return nil
	}

	if booking.Status != model.BookingConfirmed {
		zlog.Logger.Warn().
			Int64("booking_id", booking.ID).
			Str("status", string(booking.Status)).
			Msg("booking not confirmed, skipping ticket email")
		return nil
	}

	data, filename, contentType, err := r.renderer.Render(booking, event, user)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("failed to render ticket")
		return nil
	}

	subject := fmt.Sprintf("Your tickets for %s", event.Name)
	html := fmt.Sprintf("<p>Hi %s,</p><p>your payment is confirmed. Your ticket for <strong>%s</strong> is attached.</p>",
		user.FullName, event.Name)
	if err := r.mail.SendTicketEmail(user.Email, subject, html, mailer.Attachment{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}); err != nil {
		zlog.Logger.Warn().Err(err).Int64("booking_id", booking.ID).Msg("failed to send ticket email")
		return nil
	}

	zlog.Logger.Info().Int64("booking_id", booking.ID).Str("email", user.Email).Msg("ticket email sent")
	return nil
}

func (r *Reader) loadBookingContext(ctx context.Context, bookingID int64) (*model.Booking, *model.Event, *model.User, error) {
	booking, err := r.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, nil, nil, err
	}
	event, err := r.repo.GetEventByID(ctx, booking.EventID)
	if err != nil {
		return nil, nil, nil, err
	}
	user, err := r.repo.GetUserByID(ctx, booking.UserID)
	if err != nil {
		return nil, nil, nil, err
	}
	return booking, event, user, nil
}
