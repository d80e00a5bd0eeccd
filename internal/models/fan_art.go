package models

import "time"

// FanArtState defines lifecycle states for fan art submissions.
type FanArtState string

const (
	// FanArtStatePending indicates the submission is awaiting review.
	FanArtStatePending FanArtState = "pending"
	// FanArtStateApproved indicates the submission is publicly listable.
	FanArtStateApproved FanArtState = "approved"
)

// FanArtSubmission is a community-submitted artwork. Rejection hard-deletes
// the record, so no rejected state is ever persisted.
type FanArtSubmission struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"size:200;not null" json:"title"`
	ArtistName   string `gorm:"size:120;not null" json:"artist_name"`
	ContactEmail string `gorm:"size:255;not null" json:"contact_email"`
	SocialHandle string `gorm:"size:120" json:"social_handle,omitempty"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	// ImageRef is the durable asset-store reference URL.
	ImageRef string      `gorm:"size:500;not null" json:"image_ref"`
	State    FanArtState `gorm:"type:varchar(20);not null;default:'pending';index" json:"state"`
	// Featured only affects listings while State is approved.
	Featured    bool       `gorm:"not null;default:false" json:"featured"`
	SubmittedAt time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}
