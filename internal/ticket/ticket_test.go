package ticket_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/model"
	"gatepass/internal/ticket"
)

func TestHTMLRendererRender(t *testing.T) {
	renderer := ticket.NewHTMLRenderer("INR")

	booking := &model.Booking{ID: 41, Tickets: 2, TotalCents: 100000, Status: model.BookingConfirmed}
	event := &model.Event{Name: "Go Conference", Location: "Hall B", StartTime: time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)}
	user := &model.User{FullName: "Ada Attendee"}

	data, filename, contentType, err := renderer.Render(booking, event, user)
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "Go Conference")
	assert.Contains(t, html, "Ada Attendee")
	assert.Contains(t, html, "GP-000041")
	assert.Contains(t, html, "1000.00 INR")
	assert.Equal(t, "ticket-41.html", filename)
	assert.Equal(t, "text/html", contentType)
}
