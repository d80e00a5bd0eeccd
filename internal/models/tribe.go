// Package models contains data structures for the application's domain models.
package models

// Tribe is one of the three fixed audience segments, named by color.
type Tribe string

const (
	// TribeRed is the red audience segment.
	TribeRed Tribe = "red"
	// TribeYellow is the yellow audience segment.
	TribeYellow Tribe = "yellow"
	// TribeBlue is the blue audience segment.
	TribeBlue Tribe = "blue"
	// TribeAll targets content at every tribe.
	TribeAll Tribe = "all"
	// TribeNone is the zero value for a visitor who never joined.
	TribeNone Tribe = ""
)

// Tribes lists the joinable tribes. TribeAll is a targeting value only,
// never a membership value.
var Tribes = []Tribe{TribeRed, TribeYellow, TribeBlue}

// Valid reports whether t names one of the three joinable tribes.
func (t Tribe) Valid() bool {
	switch t {
	case TribeRed, TribeYellow, TribeBlue:
		return true
	}
	return false
}

// ValidTarget reports whether t is usable as a content targeting value.
func (t Tribe) ValidTarget() bool {
	return t == TribeAll || t.Valid()
}

// Section is a named area of the site, the second axis of content targeting.
type Section string

const (
	SectionHome      Section = "home"
	SectionMusic     Section = "music"
	SectionTribe     Section = "tribe"
	SectionGallery   Section = "gallery"
	SectionCommunity Section = "community"
	SectionEvents    Section = "events"
)

// Sections lists every page section content can target.
var Sections = []Section{
	SectionHome, SectionMusic, SectionTribe,
	SectionGallery, SectionCommunity, SectionEvents,
}

// Valid reports whether s names a known page section.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}
