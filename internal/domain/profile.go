package domain

import (
	"fmt"
	"regexp"
)

// MaxProfileLength bounds profile names so they stay usable as file names
const MaxProfileLength = 64

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateProfile checks that a profile name is safe to use as a storage key
func ValidateProfile(profile string) error {
	if profile == "" || len(profile) > MaxProfileLength || !profilePattern.MatchString(profile) {
		return fmt.Errorf("%w: %q", ErrInvalidProfile, profile)
	}
	return nil
}
