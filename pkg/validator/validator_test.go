package validator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gatepass/pkg/validator"
)

type bookingForm struct {
	Tickets int       `validate:"required,positive"`
	Email   string    `validate:"required,email"`
	Starts  time.Time `validate:"future"`
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	assert.NoError(t, validator.Validate(ctx, bookingForm{Tickets: 2, Email: "a@b.c", Starts: future}))

	err := validator.Validate(ctx, bookingForm{Tickets: 0, Email: "a@b.c", Starts: future})
	assert.Error(t, err)

	err = validator.Validate(ctx, bookingForm{Tickets: -3, Email: "a@b.c", Starts: future})
	assert.Error(t, err)

	err = validator.Validate(ctx, bookingForm{Tickets: 1, Email: "not-an-email", Starts: future})
	assert.Error(t, err)

	err = validator.Validate(ctx, bookingForm{Tickets: 1, Email: "a@b.c", Starts: time.Now().Add(-time.Hour)})
	assert.Error(t, err)
}
