package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tribewave/internal/models"
	"tribewave/internal/notifications"
	"tribewave/internal/payments"
	"tribewave/internal/repository"
	"tribewave/internal/validation"

	"gorm.io/gorm"
)

// CreateBookingInput carries a new event-booking offer. PaymentRef may be
// empty when a Capturer is configured; the fee is then captured here.
type CreateBookingInput struct {
	RequesterName  string
	RequesterEmail string
	RequesterPhone string
	EventType      string
	EventDate      string
	OfferAmount    int64
	OfferDetails   string
	DocumentRefs   []string
	PaymentRef     string
}

// SetBookingStatusInput drives one negotiation transition.
type SetBookingStatusInput struct {
	ID     uint
	Status models.BookingStatus
	// Notes, when set, is appended to the admin notes log.
	Notes string
}

// BookingService governs the booking negotiation workflow. A consultation fee
// must be captured before a request exists, and the stored confirmation
// reference gates every move out of pending except rejection.
type BookingService struct {
	bookings repository.BookingRepository
	capturer payments.Capturer
	notifier *notifications.Notifier
	feeCents int64
}

// NewBookingService returns a new BookingService. capturer may be nil when
// callers always supply an already-captured PaymentRef.
func NewBookingService(
	bookings repository.BookingRepository,
	capturer payments.Capturer,
	notifier *notifications.Notifier,
	feeCents int64,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		capturer: capturer,
		notifier: notifier,
		feeCents: feeCents,
	}
}

// Create validates the offer, ensures the consultation fee is captured, and
// stores the request in pending.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.BookingRequest, error) {
	if err := validation.ValidateDisplayName(in.RequesterName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.RequesterEmail); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.EventType) == "" {
		return nil, models.NewValidationError("event type is required")
	}
	if in.OfferAmount <= 0 {
		return nil, models.NewValidationError("offer amount must be positive")
	}

	paymentRef := strings.TrimSpace(in.PaymentRef)
	if paymentRef == "" {
		if s.capturer == nil {
			return nil, models.NewValidationError("payment confirmation reference is required")
		}
		ref, err := s.capturer.Capture(ctx, s.feeCents,
			fmt.Sprintf("consultation fee for %s", strings.TrimSpace(in.EventType)))
		if err != nil {
			return nil, models.NewValidationError("consultation fee capture failed: " + err.Error())
		}
		paymentRef = ref
	}

	request := &models.BookingRequest{
		RequesterName:  strings.TrimSpace(in.RequesterName),
		RequesterEmail: strings.TrimSpace(in.RequesterEmail),
		RequesterPhone: strings.TrimSpace(in.RequesterPhone),
		EventType:      strings.TrimSpace(in.EventType),
		EventDate:      strings.TrimSpace(in.EventDate),
		OfferAmount:    in.OfferAmount,
		OfferDetails:   strings.TrimSpace(in.OfferDetails),
		DocumentRefs:   strings.Join(in.DocumentRefs, "\n"),
		PaymentRef:     paymentRef,
		Status:         models.BookingStatusPending,
	}
	if err := s.bookings.Create(ctx, request); err != nil {
		return nil, models.NewPersistenceError("booking create", err)
	}
	return request, nil
}

// SetStatus moves the request along the negotiation machine:
// pending -> negotiating|approved|rejected, negotiating -> approved|rejected.
// Re-setting the current status is idempotent; any other move out of a
// terminal state is invalid, and the record is left unchanged on failure.
func (s *BookingService) SetStatus(ctx context.Context, in SetBookingStatusInput) (*models.BookingRequest, error) {
	if !in.Status.Valid() {
		return nil, models.NewValidationError("unknown booking status")
	}

	request, err := s.bookings.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("BookingRequest", in.ID)
		}
		return nil, models.NewPersistenceError("booking lookup", err)
	}

	if !request.Status.CanTransition(in.Status) {
		return nil, models.NewInvalidTransitionError("BookingRequest", request.Status, in.Status)
	}

	// Strict payment gate: without a captured fee the only way out of
	// pending is rejection.
	if request.PaymentRef == "" &&
		request.Status == models.BookingStatusPending &&
		in.Status != models.BookingStatusPending &&
		in.Status != models.BookingStatusRejected {
		return nil, models.NewValidationError("payment confirmation required before negotiation or approval")
	}

	if request.Status == in.Status && in.Notes == "" {
		return request, nil
	}

	previous := request.Status
	request.Status = in.Status
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		stamp := time.Now().Format("2006-01-02 15:04")
		if request.AdminNotes != "" {
			request.AdminNotes += "\n"
		}
		request.AdminNotes += fmt.Sprintf("[%s] %s", stamp, notes)
	}
	if err := s.bookings.Save(ctx, request); err != nil {
		return nil, models.NewPersistenceError("booking update", err)
	}

	if previous != in.Status {
		s.notifier.PublishEvent(ctx, notifications.Event{
			Type:    notifications.EventBookingStatusChanged,
			Subject: request.ID,
			Fields: map[string]interface{}{
				"from": string(previous),
				"to":   string(in.Status),
			},
		})
	}

	return request, nil
}

// Delete removes the request; allowed from any state, no-op when absent.
func (s *BookingService) Delete(ctx context.Context, id uint) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return models.NewPersistenceError("booking delete", err)
	}
	return nil
}

// Get returns a single request by id.
func (s *BookingService) Get(ctx context.Context, id uint) (*models.BookingRequest, error) {
	request, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("BookingRequest", id)
		}
		return nil, models.NewPersistenceError("booking lookup", err)
	}
	return request, nil
}

// List returns requests, optionally filtered by status.
func (s *BookingService) List(ctx context.Context, status *models.BookingStatus) ([]*models.BookingRequest, error) {
	if status != nil && !status.Valid() {
		return nil, models.NewValidationError("unknown booking status")
	}
	requests, err := s.bookings.List(ctx, status)
	if err != nil {
		return nil, models.NewPersistenceError("booking list", err)
	}
	return requests, nil
}
