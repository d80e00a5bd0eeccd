package service

import (
	"context"
	"strings"
	"testing"

	"tribewave/internal/models"
	"tribewave/internal/payments"
	"tribewave/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingService(t *testing.T, capturer payments.Capturer) *BookingService {
	t.Helper()
	db := setupTestDB(t)
	return NewBookingService(repository.NewBookingRepository(db), capturer, noopNotifier(), 5000)
}

func validBookingInput() CreateBookingInput {
	return CreateBookingInput{
		RequesterName:  "Morgan Vale",
		RequesterEmail: "morgan@example.com",
		EventType:      "private show",
		EventDate:      "2026-10-01",
		OfferAmount:    250000,
		OfferDetails:   "two hour acoustic set",
		PaymentRef:     "pay_abc123",
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newBookingService(t, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{"missing name", func(in *CreateBookingInput) { in.RequesterName = "" }},
		{"bad email", func(in *CreateBookingInput) { in.RequesterEmail = "nope" }},
		{"missing event type", func(in *CreateBookingInput) { in.EventType = "  " }},
		{"zero offer", func(in *CreateBookingInput) { in.OfferAmount = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validBookingInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, in)
			require.Error(t, err)
			assert.True(t, models.HasCode(err, models.CodeValidation))
		})
	}
}

func TestCreateBookingRequiresFeeWithoutCapturer(t *testing.T) {
	svc := newBookingService(t, nil)

	in := validBookingInput()
	in.PaymentRef = ""
	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeValidation))
}

func TestCreateBookingCapturesFee(t *testing.T) {
	svc := newBookingService(t, payments.DevCapturer{})

	in := validBookingInput()
	in.PaymentRef = ""
	request, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, request.Status)
	assert.True(t, strings.HasPrefix(request.PaymentRef, "dev-"))
}

func TestBookingNegotiationPath(t *testing.T) {
	svc := newBookingService(t, nil)
	ctx := context.Background()

	request, err := svc.Create(ctx, validBookingInput())
	require.NoError(t, err)

	request, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusNegotiating, Notes: "countered at 300k"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusNegotiating, request.Status)
	assert.Contains(t, request.AdminNotes, "countered at 300k")

	request, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, request.Status)
}

func TestBookingSameStatusIsIdempotent(t *testing.T) {
	svc := newBookingService(t, nil)
	ctx := context.Background()

	request, err := svc.Create(ctx, validBookingInput())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusNegotiating})
	require.NoError(t, err)
	again, err := svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusNegotiating})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusNegotiating, again.Status)
}

func TestBookingTerminalStatesAreClosed(t *testing.T) {
	svc := newBookingService(t, nil)
	ctx := context.Background()

	request, err := svc.Create(ctx, validBookingInput())
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusApproved})
	require.NoError(t, err)

	for _, target := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusNegotiating,
		models.BookingStatusRejected,
	} {
		_, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: target})
		require.Error(t, err, "approved -> %s", target)
		assert.True(t, models.HasCode(err, models.CodeInvalidTransition))
	}

	// The failed moves left the record untouched.
	current, err := svc.Get(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, current.Status)
}

func TestBookingPaymentGate(t *testing.T) {
	svc := newBookingService(t, nil)
	ctx := context.Background()

	request, err := svc.Create(ctx, validBookingInput())
	require.NoError(t, err)

	// Simulate a record that predates fee enforcement.
	stored, err := svc.Get(ctx, request.ID)
	require.NoError(t, err)
	stored.PaymentRef = ""
	require.NoError(t, svc.bookings.Save(ctx, stored))

	_, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusNegotiating})
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeValidation))

	// Rejection is the one exit pending still allows.
	rejected, err := svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusRejected})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, rejected.Status)
}

func TestBookingNotesAccumulate(t *testing.T) {
	svc := newBookingService(t, nil)
	ctx := context.Background()

	request, err := svc.Create(ctx, validBookingInput())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusNegotiating, Notes: "first pass"})
	require.NoError(t, err)
	updated, err := svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusNegotiating, Notes: "second pass"})
	require.NoError(t, err)

	assert.Contains(t, updated.AdminNotes, "first pass")
	assert.Contains(t, updated.AdminNotes, "second pass")
	assert.Len(t, strings.Split(updated.AdminNotes, "\n"), 2)
}

func TestBookingDeleteAnyState(t *testing.T) {
	svc := newBookingService(t, nil)
	ctx := context.Background()

	request, err := svc.Create(ctx, validBookingInput())
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: request.ID, Status: models.BookingStatusApproved})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, request.ID))
	_, err = svc.Get(ctx, request.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	// Deleting an absent record stays quiet.
	require.NoError(t, svc.Delete(ctx, request.ID))
}

func TestBookingListFilter(t *testing.T) {
	svc := newBookingService(t, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, validBookingInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, validBookingInput())
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, SetBookingStatusInput{ID: second.ID, Status: models.BookingStatusRejected})
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending := models.BookingStatusPending
	filtered, err := svc.List(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)
}
