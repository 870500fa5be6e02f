package ticket

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gatepass/internal/model"
)

// Renderer produces the ticket document attached to confirmation emails. The
// interface keeps image/PDF generators pluggable without touching the worker.
type Renderer interface {
	Render(booking *model.Booking, event *model.Event, user *model.User) ([]byte, string, string, error)
}

// HTMLRenderer renders a self-contained HTML ticket. The booking id doubles as
// the identifier the venue scanner consumes.
type HTMLRenderer struct {
	currency string
}

func NewHTMLRenderer(currency string) *HTMLRenderer {
	return &HTMLRenderer{currency: currency}
}

var ticketTmpl = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; max-width: 480px; margin: auto;">
  <h2>{{.EventName}}</h2>
  <p>{{.Location}} &middot; {{.StartTime}}</p>
  <hr>
  <p><strong>Attendee:</strong> {{.Attendee}}</p>
  <p><strong>Tickets:</strong> {{.Tickets}}</p>
  <p><strong>Amount paid:</strong> {{.Amount}} {{.Currency}}</p>
  <p style="font-size: 28px; letter-spacing: 4px;"><strong>{{.Code}}</strong></p>
  <p>Present this code at the entrance. Each ticket admits once.</p>
</body>
</html>`))

type ticketData struct {
	EventName string
	Location  string
	StartTime string
	Attendee  string
	Tickets   int
	Amount    string
	Currency  string
	Code      string
}

func (r *HTMLRenderer) Render(booking *model.Booking, event *model.Event, user *model.User) ([]byte, string, string, error) {
	var buf bytes.Buffer
	err := ticketTmpl.Execute(&buf, ticketData{
		EventName: event.Name,
		Location:  event.Location,
		StartTime: event.StartTime.Format(time.RFC1123),
		Attendee:  user.FullName,
		Tickets:   booking.Tickets,
		Amount:    fmt.Sprintf("%.2f", model.FromCents(booking.TotalCents)),
		Currency:  r.currency,
		Code:      fmt.Sprintf("GP-%06d", booking.ID),
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("render ticket: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("ticket-%d.html", booking.ID), "text/html", nil
}
