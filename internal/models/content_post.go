package models

import "time"

// ContentKind classifies what a ContentPost's body holds.
type ContentKind string

const (
	ContentKindAnnouncement ContentKind = "announcement"
	ContentKindQuote        ContentKind = "quote"
	ContentKindImage        ContentKind = "image"
	ContentKindMusic        ContentKind = "music"
	ContentKindVideo        ContentKind = "video"
	ContentKindBehindScenes ContentKind = "behind-the-scenes"
)

// Valid reports whether k is a known content kind.
func (k ContentKind) Valid() bool {
	switch k {
	case ContentKindAnnouncement, ContentKindQuote, ContentKindImage,
		ContentKindMusic, ContentKindVideo, ContentKindBehindScenes:
		return true
	}
	return false
}

// BodyIsURL reports whether posts of this kind carry a reference URL in the
// body rather than text.
func (k ContentKind) BodyIsURL() bool {
	switch k {
	case ContentKindImage, ContentKindMusic, ContentKindVideo:
		return true
	}
	return false
}

// ContentPost is one unit of published or pending content, targeted by the
// section x tribe visibility key.
type ContentPost struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:300" json:"title"`
	// Body holds text, or a reference URL for image/music/video kinds.
	Body          string      `gorm:"type:text" json:"body"`
	Kind          ContentKind `gorm:"type:varchar(30);not null" json:"kind"`
	TargetSection Section     `gorm:"type:varchar(30);not null;index:idx_content_target,priority:1" json:"target_section"`
	// TargetTribe is TribeAll unless explicitly scoped to one tribe.
	TargetTribe Tribe `gorm:"type:varchar(10);not null;default:'all';index:idx_content_target,priority:2" json:"target_tribe"`
	Active      bool  `gorm:"not null;default:false;index" json:"active"`
	Pinned      bool  `gorm:"not null;default:false" json:"pinned"`
	// DisplayOrder is an admin-set hint; pinned and recency dominate it.
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	Author       string    `gorm:"size:120" json:"author"`
	Tags         string    `gorm:"type:text" json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
