package models

import "time"

// TribeMain is the tribe-neutral forum scope.
const TribeMain Tribe = "main"

// ForumCategories maps each forum scope to its fixed category list.
var ForumCategories = map[Tribe][]string{
	TribeMain:   {"general", "music", "events", "introductions"},
	TribeRed:    {"general", "fan-theories", "meetups"},
	TribeYellow: {"general", "art-share", "meetups"},
	TribeBlue:   {"general", "deep-cuts", "meetups"},
}

// ValidForumScope reports whether t is a legal forum target.
func ValidForumScope(t Tribe) bool {
	return t == TribeMain || t.Valid()
}

// ValidForumCategory reports whether category belongs to the scope's list.
func ValidForumCategory(scope Tribe, category string) bool {
	for _, c := range ForumCategories[scope] {
		if c == category {
			return true
		}
	}
	return false
}

// ForumPost is a community discussion post. Community-authored posts start
// inactive pending review; admin-authored posts start active.
type ForumPost struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Body        string `gorm:"type:text;not null" json:"body"`
	AuthorName  string `gorm:"size:120;not null" json:"author_name"`
	AuthorEmail string `gorm:"size:255;not null" json:"author_email"`
	// TargetTribe is TribeMain for the tribe-neutral board or one tribe.
	TargetTribe Tribe  `gorm:"type:varchar(10);not null;default:'main';index" json:"target_tribe"`
	Category    string `gorm:"size:60;not null" json:"category"`
	Active      bool   `gorm:"not null;default:false;index" json:"active"`
	// Official marks admin-authored posts; always created active.
	Official   bool      `gorm:"not null;default:false" json:"official"`
	ReplyCount int       `gorm:"not null;default:0" json:"reply_count"`
	LikeCount  int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt  time.Time `json:"created_at"`
}
