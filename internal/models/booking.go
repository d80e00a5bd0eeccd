package models

import "time"

// BookingStatus defines lifecycle states for booking requests.
type BookingStatus string

const (
	// BookingStatusPending indicates the offer is awaiting review.
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusNegotiating indicates the offer is under negotiation.
	BookingStatusNegotiating BookingStatus = "negotiating"
	// BookingStatusApproved indicates the booking was accepted (terminal).
	BookingStatusApproved BookingStatus = "approved"
	// BookingStatusRejected indicates the booking was declined (terminal).
	BookingStatusRejected BookingStatus = "rejected"
)

// Valid reports whether s names a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusNegotiating,
		BookingStatusApproved, BookingStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusApproved || s == BookingStatusRejected
}

// CanTransition reports whether moving from s to next is permitted.
// Re-setting the current status is idempotent and always allowed; nothing
// ever returns to pending.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case BookingStatusPending:
		return next == BookingStatusNegotiating ||
			next == BookingStatusApproved ||
			next == BookingStatusRejected
	case BookingStatusNegotiating:
		return next == BookingStatusApproved || next == BookingStatusRejected
	}
	// approved and rejected are terminal
	return false
}

// BookingRequest is an offer to book the collective for an event. Creation is
// gated on a captured consultation fee, recorded in PaymentRef.
type BookingRequest struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	RequesterName  string `gorm:"size:120;not null" json:"requester_name"`
	RequesterEmail string `gorm:"size:255;not null" json:"requester_email"`
	RequesterPhone string `gorm:"size:40" json:"requester_phone,omitempty"`
	EventType      string `gorm:"size:120;not null" json:"event_type"`
	EventDate      string `gorm:"size:40" json:"event_date"`
	OfferAmount    int64  `gorm:"not null" json:"offer_amount"`
	OfferDetails   string `gorm:"type:text" json:"offer_details"`
	// DocumentRefs holds newline-separated supporting document URLs.
	DocumentRefs string `gorm:"type:text" json:"document_refs,omitempty"`
	// PaymentRef is the consultation-fee confirmation reference. A request
	// cannot leave pending (except to rejected) without one.
	PaymentRef  string        `gorm:"size:120;not null" json:"payment_ref"`
	AdminNotes  string        `gorm:"type:text" json:"admin_notes,omitempty"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SubmittedAt time.Time     `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
