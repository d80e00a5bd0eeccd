package models

import "time"

// TribeMember records one visitor's enrollment in a tribe. A visitor may hold
// a row per tribe over time; exactly one row per visitor has IsActive set.
type TribeMember struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	VisitorID string `gorm:"size:64;not null;index;uniqueIndex:idx_visitor_tribe,priority:1" json:"visitor_id"`
	Tribe     Tribe  `gorm:"type:varchar(10);not null;uniqueIndex:idx_visitor_tribe,priority:2" json:"tribe"`
	Name      string `gorm:"size:120;not null" json:"name"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Phone     string `gorm:"size:40" json:"phone,omitempty"`
	Location  string `gorm:"size:120" json:"location,omitempty"`
	// Reason is the free-form "why I joined" profile field.
	Reason string `gorm:"type:text" json:"reason,omitempty"`
	// IsActive marks the visitor's currently active tribe (last joined or
	// last switched to).
	IsActive  bool      `gorm:"not null;default:false;index" json:"is_active"`
	JoinedAt  time.Time `json:"joined_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
