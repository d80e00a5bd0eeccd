package server

import (
	"tribewave/internal/models"
	"tribewave/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createBookingRequest struct {
	RequesterName  string   `json:"requester_name"`
	RequesterEmail string   `json:"requester_email"`
	RequesterPhone string   `json:"requester_phone"`
	EventType      string   `json:"event_type"`
	EventDate      string   `json:"event_date"`
	OfferAmount    int64    `json:"offer_amount"`
	OfferDetails   string   `json:"offer_details"`
	DocumentRefs   []string `json:"document_refs"`
	PaymentRef     string   `json:"payment_ref"`
}

type setBookingStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// CreateBooking handles POST /api/bookings. The consultation fee is captured
// before the request is stored.
func (s *Server) CreateBooking(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("invalid request body"))
	}

	request, err := s.bookings.Create(ctx, service.CreateBookingInput{
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		RequesterPhone: req.RequesterPhone,
		EventType:      req.EventType,
		EventDate:      req.EventDate,
		OfferAmount:    req.OfferAmount,
		OfferDetails:   req.OfferDetails,
		DocumentRefs:   req.DocumentRefs,
		PaymentRef:     req.PaymentRef,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// ListBookings handles GET /api/bookings?status= (admin).
func (s *Server) ListBookings(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var status *models.BookingStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.BookingStatus(raw)
		status = &parsed
	}

	requests, err := s.bookings.List(ctx, status)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(requests)
}

// GetBooking handles GET /api/bookings/:id (admin).
func (s *Server) GetBooking(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	request, err := s.bookings.Get(c.UserContext(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(request)
}

// SetBookingStatus handles POST /api/bookings/:id/status (admin).
func (s *Server) SetBookingStatus(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	var req setBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("invalid request body"))
	}

	request, err := s.bookings.SetStatus(c.UserContext(), service.SetBookingStatusInput{
		ID:     id,
		Status: models.BookingStatus(req.Status),
		Notes:  req.Notes,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(request)
}

// DeleteBooking handles DELETE /api/bookings/:id (admin).
func (s *Server) DeleteBooking(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	if err := s.bookings.Delete(c.UserContext(), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Booking deleted"})
}
