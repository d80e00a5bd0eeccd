// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tribewave/internal/models"
	"tribewave/internal/notifications"
	"tribewave/internal/repository"
	"tribewave/internal/validation"

	"gorm.io/gorm"
)

// JoinInput carries a visitor's tribe enrollment profile.
type JoinInput struct {
	VisitorID string
	Tribe     models.Tribe
	Name      string
	Email     string
	Phone     string
	Location  string
	Reason    string
}

// MembershipService tracks which tribe a visitor belongs to and which tribe
// is currently active for content scoping.
type MembershipService struct {
	members  repository.MemberRepository
	notifier *notifications.Notifier
}

// NewMembershipService returns a new MembershipService.
func NewMembershipService(members repository.MemberRepository, notifier *notifications.Notifier) *MembershipService {
	return &MembershipService{members: members, notifier: notifier}
}

// Join upserts the visitor's membership in the given tribe and makes it the
// active tribe. Validation happens before any write.
func (s *MembershipService) Join(ctx context.Context, in JoinInput) (*models.TribeMember, error) {
	if strings.TrimSpace(in.VisitorID) == "" {
		return nil, models.NewValidationError("visitor id is required")
	}
	if !in.Tribe.Valid() {
		return nil, models.NewValidationError("unknown tribe")
	}
	if err := validation.ValidateDisplayName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	member := &models.TribeMember{
		VisitorID: in.VisitorID,
		Tribe:     in.Tribe,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Location:  strings.TrimSpace(in.Location),
		Reason:    strings.TrimSpace(in.Reason),
		JoinedAt:  time.Now(),
	}
	if err := s.members.Upsert(ctx, member); err != nil {
		return nil, models.NewPersistenceError("member upsert", err)
	}

	s.notifier.PublishEvent(ctx, notifications.Event{
		Type:    notifications.EventTribeJoined,
		Subject: member.ID,
		Fields:  map[string]interface{}{"tribe": string(in.Tribe)},
	})

	return member, nil
}

// SwitchActive sets the visitor's currently-active tribe without altering
// membership records. Returns NotAMemberError when the visitor holds no
// membership in the tribe; callers gating read-only views may ignore it.
func (s *MembershipService) SwitchActive(ctx context.Context, visitorID string, tribe models.Tribe) error {
	if !tribe.Valid() {
		return models.NewValidationError("unknown tribe")
	}

	_, err := s.members.GetByVisitorAndTribe(ctx, visitorID, tribe)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotAMemberError(tribe)
		}
		return models.NewPersistenceError("member lookup", err)
	}

	if err := s.members.SetActive(ctx, visitorID, tribe); err != nil {
		return models.NewPersistenceError("member switch", err)
	}
	return nil
}

// IsMember reports whether the visitor holds a membership record for the tribe.
func (s *MembershipService) IsMember(ctx context.Context, visitorID string, tribe models.Tribe) (bool, error) {
	_, err := s.members.GetByVisitorAndTribe(ctx, visitorID, tribe)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewPersistenceError("member lookup", err)
	}
	return true, nil
}

// CurrentTribe returns the visitor's active tribe, or TribeNone if the
// visitor has never joined.
func (s *MembershipService) CurrentTribe(ctx context.Context, visitorID string) (models.Tribe, error) {
	member, err := s.members.ActiveTribe(ctx, visitorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TribeNone, nil
		}
		return models.TribeNone, models.NewPersistenceError("active tribe lookup", err)
	}
	return member.Tribe, nil
}

// Memberships lists every tribe the visitor has ever joined.
func (s *MembershipService) Memberships(ctx context.Context, visitorID string) ([]*models.TribeMember, error) {
	members, err := s.members.ListByVisitor(ctx, visitorID)
	if err != nil {
		return nil, models.NewPersistenceError("member list", err)
	}
	return members, nil
}
