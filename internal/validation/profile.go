package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// local@domain.tld with a single @ and a dotted domain.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const maxDisplayNameLen = 120

// ValidateEmail validates contact email syntax.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email must look like local@domain.tld")
	}
	return nil
}

// ValidateDisplayName validates a member or author display name.
func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("display name is required")
	}
	if len(name) > maxDisplayNameLen {
		return fmt.Errorf("display name too long (max %d characters)", maxDisplayNameLen)
	}
	return nil
}
